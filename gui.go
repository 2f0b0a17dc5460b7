// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/lmsview/engine"
	"github.com/spezifisch/lmsview/logger"
	"github.com/spezifisch/lmsview/remote"
)

// smallest screen anything is drawn on
const (
	minScreenWidth  = 20
	minScreenHeight = 9
)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// bottom bar
	menuWidget *MenuWidget

	// pages
	playersPage  *PlayersPage
	playlistPage *PlaylistPage
	logPage      *LogPage

	// modals
	helpModal  tview.Primitive
	helpWidget *HelpWidget

	palette *Palette

	// view is the last snapshot published by the poll loop. Only the GUI
	// goroutine reads or replaces it.
	view engine.View

	eventLoop *eventLoop
	engine    *engine.Engine
	remote    remote.Publisher
	logger    *logger.Logger
}

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PagePlayers  = "players"
	PagePlaylist = "playlist"
	PageLog      = "log"

	PageHelpBox = "helpBox"
)

// InitGui builds the pages around an engine. publisher may be nil.
func InitGui(eng *engine.Engine,
	palette *Palette,
	tick time.Duration,
	logger *logger.Logger,
	publisher remote.Publisher) (ui *Ui) {
	ui = &Ui{
		palette: palette,
		view:    eng.View(),

		eventLoop: nil, // initialized by initEventLoops()
		engine:    eng,
		remote:    publisher,
		logger:    logger,
	}

	ui.initEventLoops(tick)

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()

	ui.menuWidget = ui.createMenuWidget()
	ui.helpWidget = ui.createHelpWidget()

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 80, 20)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// only ESC closes the help, like the help text says
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
			return nil
		}
		return event
	})

	ui.playersPage = ui.createPlayersPage()
	ui.playlistPage = ui.createPlaylistPage()
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PagePlayers, ui.playersPage.Root, true, true).
		AddPage(PagePlaylist, ui.playlistPage.Root, true, false).
		AddPage(PageLog, ui.logPage.Root, true, false).
		AddPage(PageHelpBox, ui.helpModal, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// add main input handler
	rootFlex.SetInputCapture(ui.handlePageInput)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true)

	// the screen is cleared already; skipping the draw leaves it blank
	ui.app.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		width, height := screen.Size()
		return tooSmall(width, height)
	})

	return ui
}

func tooSmall(width, height int) bool {
	return width < minScreenWidth || height < minScreenHeight
}

func (ui *Ui) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// run poll and log loops
	ui.runEventLoops(ctx)

	// gui main loop (blocking)
	return ui.app.Run()
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
	ui.app.SetFocus(ui.pages)
}

// viewPage is the page that shows the current engine state.
func (ui *Ui) viewPage() string {
	if ui.view.State == engine.Observing {
		return PagePlaylist
	}
	return PagePlayers
}

// setView takes a new snapshot and follows state changes with the page,
// unless the log is open.
func (ui *Ui) setView(view engine.View) {
	ui.view = view

	active := ui.menuWidget.GetActivePage()
	if active == PageLog {
		// the view button label follows the state
		ui.menuWidget.SetActivePage(PageLog)
		return
	}
	if page := ui.viewPage(); page != active {
		ui.ShowPage(page)
	}
}

func (ui *Ui) ToggleLog() {
	if ui.menuWidget.GetActivePage() == PageLog {
		ui.ShowPage(ui.viewPage())
	} else {
		ui.ShowPage(PageLog)
	}
}
