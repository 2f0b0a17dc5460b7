// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rivo/uniseg"
	"github.com/spezifisch/lmsview/layout"
)

func makeModal(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewGrid().
		SetColumns(0, width, 0).
		SetRows(0, height, 0).
		AddItem(p, 1, 1, 1, 1, 0, 0, true)
}

// drawText puts text on one row starting at x, clipped to maxWidth cells, and
// returns the number of cells used. Each grapheme cluster takes the cells
// layout.DisplayWidth counts for it; its trailing runes go in as combining
// runes.
func drawText(screen tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) int {
	used := 0
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		w := layout.DisplayWidth(graphemes.Str())
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		runes := graphemes.Runes()
		screen.SetContent(x+used, y, runes[0], runes[1:], style)
		used += w
	}
	return used
}

// drawAligned draws text inside [x, x+width) using a tview alignment.
func drawAligned(screen tcell.Screen, x, y, width int, text string, style tcell.Style, align int) {
	tw := layout.DisplayWidth(text)
	if tw > width {
		text = layout.Fit(text, width)
		tw = width
	}
	switch align {
	case tview.AlignCenter:
		x += (width - tw) / 2
	case tview.AlignRight:
		x += width - tw
	}
	drawText(screen, x, y, tw, text, style)
}

// span is a piece of a line with its own style.
type span struct {
	text  string
	style tcell.Style
}

func spansWidth(spans []span) (w int) {
	for _, s := range spans {
		w += layout.DisplayWidth(s.text)
	}
	return
}

// drawSpans draws spans one after another, aligned as a whole.
func drawSpans(screen tcell.Screen, x, y, width int, spans []span, align int) {
	tw := spansWidth(spans)
	cursor := x
	if tw < width {
		switch align {
		case tview.AlignCenter:
			cursor += (width - tw) / 2
		case tview.AlignRight:
			cursor += width - tw
		}
	}
	for _, s := range spans {
		cursor += drawText(screen, cursor, y, x+width-cursor, s.text, s.style)
	}
}

// fillRow paints a row with the style's background, for highlighted lines.
func fillRow(screen tcell.Screen, x, y, width int, style tcell.Style) {
	for i := 0; i < width; i++ {
		screen.SetContent(x+i, y, ' ', nil, style)
	}
}

// scrollOffset keeps selected inside a window of rows lines over n items,
// moving the window as little as possible.
func scrollOffset(offset, selected, rows, n int) int {
	if rows <= 0 || n <= rows {
		return 0
	}
	if selected >= 0 {
		if selected < offset {
			offset = selected
		} else if selected >= offset+rows {
			offset = selected - rows + 1
		}
	}
	if offset > n-rows {
		offset = n - rows
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// centeredRect returns a rect of percent of width, horizontally centered.
func centeredRect(x, width, percent int) (int, int) {
	w := width * percent / 100
	return x + (width-w)/2, w
}
