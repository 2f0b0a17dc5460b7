// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"context"

	"github.com/spezifisch/lmsview/lms"
)

type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdConfirm
	CmdDown
	CmdUp
	CmdTop
	CmdBottom
	CmdBack
)

func (c Command) String() string {
	switch c {
	case CmdQuit:
		return "quit"
	case CmdConfirm:
		return "confirm"
	case CmdDown:
		return "down"
	case CmdUp:
		return "up"
	case CmdTop:
		return "top"
	case CmdBottom:
		return "bottom"
	case CmdBack:
		return "back"
	}
	return "none"
}

// Handle applies one user command. Commands that have no meaning in the
// current state are ignored; the playlist highlight can't be moved by hand.
func (e *Engine) Handle(ctx context.Context, cmd Command) error {
	if cmd == CmdQuit {
		e.Quit()
		return nil
	}

	switch e.state {
	case SelectingPlayer:
		switch cmd {
		case CmdConfirm:
			return e.Confirm(ctx)
		case CmdDown:
			e.MoveDown()
		case CmdUp:
			e.MoveUp()
		case CmdTop:
			e.JumpTop()
		case CmdBottom:
			e.JumpBottom()
		}
	case Observing:
		if cmd == CmdBack {
			return e.Back(ctx)
		}
	}
	return nil
}

// View is a read-only copy of the engine's state for rendering. Slices are
// shared with the engine, which only ever replaces them.
type View struct {
	State       State
	Players     []lms.Player
	Cursor      int
	Observed    *lms.Player
	Status      *lms.Status
	Playlist    lms.Playlist
	Highlighted int
	Err         error
}

func (e *Engine) View() View {
	v := View{
		State:       e.state,
		Players:     e.players,
		Cursor:      NoSelection,
		Playlist:    e.playlist,
		Highlighted: e.highlighted,
		Err:         e.lastErr,
	}
	if i, ok := e.selected(); ok {
		v.Cursor = i
	}
	if e.observed != nil {
		p := *e.observed
		v.Observed = &p
	}
	if e.status != nil {
		s := *e.status
		v.Status = &s
	}
	return v
}

// CurrentSong returns the track the status points at, if the playlist has it.
func (v View) CurrentSong() (lms.Song, bool) {
	if v.Status == nil || v.Status.TotalTracks == 0 {
		return lms.Song{}, false
	}
	return v.Playlist.At(int(v.Status.CurrentIndex))
}
