// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/lmsview/engine"
)

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	// the help modal handles its own keys
	if ui.helpWidget.visible {
		return event
	}

	if event.Key() == tcell.KeyRune {
		switch event.Rune() {
		case '?':
			ui.ShowHelp()
			return nil

		case 'L':
			ui.ToggleLog()
			return nil
		}
	}

	if ui.menuWidget.GetActivePage() == PageLog {
		// arrow keys scroll the list
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			ui.Quit()
			return nil
		}
		return event
	}

	if cmd, ok := commandForKey(ui.view.State, event); ok {
		ui.sendCommand(cmd)
		return nil
	}
	return event
}

// commandForKey maps a key to the engine command it means in state.
func commandForKey(state engine.State, event *tcell.EventKey) (engine.Command, bool) {
	switch state {
	case engine.SelectingPlayer:
		switch event.Key() {
		case tcell.KeyEscape:
			return engine.CmdQuit, true
		case tcell.KeyEnter:
			return engine.CmdConfirm, true
		case tcell.KeyDown:
			return engine.CmdDown, true
		case tcell.KeyUp:
			return engine.CmdUp, true
		case tcell.KeyHome:
			return engine.CmdTop, true
		case tcell.KeyEnd:
			return engine.CmdBottom, true
		case tcell.KeyRune:
			switch event.Rune() {
			case 'q':
				return engine.CmdQuit, true
			case ' ':
				return engine.CmdConfirm, true
			case 'j':
				return engine.CmdDown, true
			case 'k':
				return engine.CmdUp, true
			case 'g':
				return engine.CmdTop, true
			case 'G':
				return engine.CmdBottom, true
			}
		}

	case engine.Observing:
		if event.Key() == tcell.KeyRune {
			switch event.Rune() {
			case 'q':
				return engine.CmdQuit, true
			case 'p':
				return engine.CmdBack, true
			}
		}
	}
	return engine.CmdNone, false
}

// sendCommand queues cmd for the poll loop without blocking the GUI.
func (ui *Ui) sendCommand(cmd engine.Command) {
	select {
	case ui.eventLoop.commands <- cmd:
	default:
		ui.logger.Printf("input: dropped %s, poll loop is busy", cmd)
	}
}

func (ui *Ui) ShowPage(name string) {
	ui.pages.SwitchToPage(name)
	ui.helpWidget.visible = false
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

// Quit asks the poll loop to stop; it stops the app once the engine agrees.
func (ui *Ui) Quit() {
	ui.sendCommand(engine.CmdQuit)
}
