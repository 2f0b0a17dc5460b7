// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/rivo/tview"
)

// lines kept on the log page
const logLimit = 200

type LogPage struct {
	Root *tview.Flex

	logList *tview.List

	// external refs
	ui *Ui
}

func (ui *Ui) createLogPage() *LogPage {
	logPage := LogPage{
		ui: ui,
	}

	logPage.logList = tview.NewList().ShowSecondaryText(false)
	logPage.logList.SetBorder(true).SetTitle(" Log (L: back) ")

	logPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(logPage.logList, 0, 1, true)

	return &logPage
}

// Print adds a line on top. Messages quote server errors verbatim, so they
// are escaped before tview sees them.
func (l *LogPage) Print(line string) {
	stamp := time.Now().Local().Format("(15:04:05) ")
	l.ui.app.QueueUpdateDraw(func() {
		l.logList.InsertItem(0, stamp+tview.Escape(line), "", 0, nil)

		for l.logList.GetItemCount() > logLimit {
			l.logList.RemoveItem(-1)
		}
	})
}
