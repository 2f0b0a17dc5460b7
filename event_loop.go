// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"time"

	"github.com/spezifisch/lmsview/engine"
	"github.com/spezifisch/lmsview/remote"
)

// commands queued by the GUI before input is dropped
const commandQueueSize = 16

type eventLoop struct {
	// user input, handled by the poll loop
	commands chan engine.Command

	// reused timer; reset after each pass so polls never overlap
	tick      time.Duration
	tickTimer *time.Timer
}

func (ui *Ui) initEventLoops(tick time.Duration) {
	el := &eventLoop{
		commands: make(chan engine.Command, commandQueueSize),
		tick:     tick,
	}
	ui.eventLoop = el

	// first poll right away
	el.tickTimer = time.NewTimer(0)
}

func (ui *Ui) runEventLoops(ctx context.Context) {
	go ui.pollEventLoop(ctx)
	go ui.logEventLoop(ctx)
}

// pollEventLoop owns the engine. Every command or tick is followed by a new
// view for the GUI.
func (ui *Ui) pollEventLoop(ctx context.Context) {
	el := ui.eventLoop
	defer el.tickTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-el.commands:
			if err := ui.engine.Handle(ctx, cmd); err != nil {
				ui.logger.PrintError(cmd.String(), err)
			}

		case <-el.tickTimer.C:
			if err := ui.engine.Tick(ctx); err != nil {
				ui.logger.PrintError("poll", err)
			}
			el.tickTimer.Reset(el.tick)
		}

		if ui.engine.Quitting() {
			ui.app.Stop()
			return
		}
		ui.publish()
	}
}

// publish hands the engine's view to the remote and the GUI.
func (ui *Ui) publish() {
	view := ui.engine.View()

	if ui.remote != nil {
		var track remote.TrackInterface
		if song, ok := view.CurrentSong(); ok {
			track = song
		}
		ui.remote.Update(view.Status, track)
	}

	ui.app.QueueUpdateDraw(func() {
		ui.setView(view)
	})
}

// logEventLoop feeds the log page.
func (ui *Ui) logEventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-ui.logger.Prints:
			ui.logPage.Print(msg)
		}
	}
}
