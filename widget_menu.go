// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// MenuWidget is the bottom bar: the view and log page buttons on the left,
// help and quit on the right.
type MenuWidget struct {
	Root *tview.Flex

	viewButton *tview.Button
	logButton  *tview.Button

	activePage string

	buttonStyle     tcell.Style
	quitActiveStyle tcell.Style

	// external references
	ui *Ui
}

func (ui *Ui) createMenuWidget() (m *MenuWidget) {
	m = &MenuWidget{
		activePage: PagePlayers,

		buttonStyle:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		quitActiveStyle: tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorRed),

		ui: ui,
	}

	m.viewButton = m.newButton(func() {
		ui.ShowPage(ui.viewPage())
	})
	m.logButton = m.newButton(func() {
		ui.ToggleLog()
	})
	m.updatePageButtons()

	buttonsLeft := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(m.viewButton, 12, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(m.logButton, 8, 0, false)

	quitButton := tview.NewButton("q: quit").
		SetStyle(m.buttonStyle).
		SetActivatedStyle(m.quitActiveStyle).
		SetSelectedFunc(func() {
			ui.Quit()
		})

	helpButton := tview.NewButton("?: help").
		SetStyle(m.buttonStyle).
		SetActivatedStyle(m.buttonStyle).
		SetSelectedFunc(func() {
			ui.ShowHelp()
		})

	buttonsRight := tview.NewFlex().
		SetDirection(tview.FlexColumn)
	buttonsRight.AddItem(nil, 0, 1, false) // fill space to right-align the buttons
	buttonsRight.AddItem(helpButton, 9, 0, false)
	buttonsRight.AddItem(quitButton, 9, 0, false)

	m.Root = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(buttonsLeft, 0, 4, false).
		AddItem(buttonsRight, 0, 2, false)

	// clear background
	m.Root.Box = tview.NewBox()

	return
}

func (m *MenuWidget) newButton(selected func()) *tview.Button {
	button := tview.NewButton("")
	button.SetStyle(m.buttonStyle)
	// the activated style would stick after switching pages by key
	button.SetActivatedStyle(m.buttonStyle)
	button.SetSelectedFunc(selected)
	return button
}

func (m *MenuWidget) updatePageButtons() {
	view := PagePlayers
	if m.activePage == PagePlaylist || (m.activePage == PageLog && m.ui.viewPage() == PagePlaylist) {
		view = PagePlaylist
	}

	viewLabel, logLabel := view, "L: log"
	if m.activePage == PageLog {
		logLabel = "L: [::b]log[::-]"
	} else {
		viewLabel = "[::b]" + view + "[::-]"
	}
	m.viewButton.SetLabel(viewLabel)
	m.logButton.SetLabel(logLabel)
}

func (m *MenuWidget) SetActivePage(name string) {
	m.activePage = name
	m.updatePageButtons()
}

func (m *MenuWidget) GetActivePage() string {
	return m.activePage
}
