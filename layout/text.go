// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package layout turns terminal widths and songs into fixed-width text. Every
// function is pure: the same width and input always give the same output.
package layout

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// longest time FormatTime renders, 99999:59:59
const maxSeconds = 99999*3600 + 59*60 + 59

// Widths are counted without East Asian ambiguous widening so the layout
// doesn't change with the user's locale.
var cond = &runewidth.Condition{
	EastAsianWidth:     false,
	StrictEmojiNeutral: true,
}

// DisplayWidth is the number of terminal cells text occupies.
func DisplayWidth(text string) int {
	return cond.StringWidth(text)
}

// Fit pads or truncates text to exactly width cells, aligned left. Text that
// doesn't fit ends in an ellipsis.
func Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if cond.StringWidth(text) > width {
		text = cond.Truncate(text, width, ellipsis)
	}
	// a wide glyph cut at the edge leaves one cell short
	return cond.FillRight(text, width)
}

// FitLeft is Fit aligned right.
func FitLeft(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if cond.StringWidth(text) > width {
		text = cond.Truncate(text, width, ellipsis)
	}
	return cond.FillLeft(text, width)
}

// FormatTime renders seconds as M:SS or H:MM:SS. Padded output right-aligns
// the leading field to two cells so columns line up.
func FormatTime(seconds float64, padded bool) string {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	if seconds > maxSeconds {
		seconds = maxSeconds
	}
	total := uint64(seconds)
	sec := total % 60
	min := total / 60

	if min >= 60 {
		hours := min / 60
		min %= 60
		if padded {
			return fmt.Sprintf("%2d:%02d:%02d", hours, min, sec)
		}
		return fmt.Sprintf("%d:%02d:%02d", hours, min, sec)
	}
	if padded {
		return fmt.Sprintf("%2d:%02d", min, sec)
	}
	return fmt.Sprintf("%d:%02d", min, sec)
}

// Rule is a horizontal line closed by tees on both ends.
func Rule(width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return "─"
	}
	return "├" + strings.Repeat("─", width-2) + "┤"
}

// Title is a rule with text set in its middle.
func Title(width int, title string) string {
	tw := DisplayWidth(title)
	if tw+4 > width {
		return Rule(width)
	}
	left := (width - tw) / 2
	right := width - tw - left
	return "├" + strings.Repeat("─", left-2) + "┤" + title + "├" + strings.Repeat("─", right-2) + "┤"
}

// Wrap breaks text at spaces into lines of at most width cells. Words longer
// than a line are cut.
func Wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for DisplayWidth(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			cut := cond.Truncate(word, width, "")
			if cut == "" {
				_, size := utf8.DecodeRuneInString(word)
				cut = word[:size]
			}
			lines = append(lines, cut)
			word = word[len(cut):]
		}
		switch {
		case word == "":
		case line == "":
			line = word
		case DisplayWidth(line)+1+DisplayWidth(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
