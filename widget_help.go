// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"strings"

	"github.com/rivo/tview"
)

type HelpWidget struct {
	Root *tview.Flex

	helpBook                *tview.Flex
	leftColumn, rightColumn *tview.TextView

	// visible reflects whether the modal is shown
	visible bool

	// external references
	ui *Ui
}

func (ui *Ui) createHelpWidget() (m *HelpWidget) {
	m = &HelpWidget{
		ui: ui,
	}

	m.leftColumn = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true)
	m.rightColumn = tview.NewTextView().
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true)
	m.helpBook = tview.NewFlex().
		SetDirection(tview.FlexColumn)

	m.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.helpBook, 0, 1, false)

	m.Root.Box.SetBorder(true).SetTitle(" Help ")

	return
}

// helpSection returns the title and key list for a page.
func helpSection(page string) (string, string) {
	switch page {
	case PagePlayers:
		return "Player selection", helpPagePlayers
	case PagePlaylist:
		return "Playlist", helpPagePlaylist
	case PageLog:
		return "Log", helpPageLog
	}
	return "", ""
}

func (h *HelpWidget) RenderHelp(page string) {
	leftText := "[::b]Global[::-]\n" + tview.Escape(strings.TrimSpace(helpGlobal))
	h.leftColumn.SetText(leftText)

	rightText := ""
	if title, text := helpSection(page); title != "" {
		rightText = "[::b]" + title + "[::-]\n" + tview.Escape(strings.TrimSpace(text))
	}
	h.rightColumn.SetText(rightText)

	h.helpBook.Clear()
	if rightText != "" {
		h.helpBook.AddItem(h.leftColumn, 34, 0, false).
			AddItem(h.rightColumn, 0, 1, true)
	} else {
		h.helpBook.AddItem(h.leftColumn, 0, 1, false)
	}
}
