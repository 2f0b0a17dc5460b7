// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package engine keeps the typed snapshot of the server in sync. It owns the
// selection state that survives across polls and is driven by a single
// goroutine: nothing in here locks.
package engine

import (
	"context"
	"errors"

	"github.com/spezifisch/lmsview/lms"
	"github.com/spezifisch/lmsview/logger"
)

// Gateway sends one command to the server. lms.Connection implements it.
type Gateway interface {
	Query(ctx context.Context, scope string, args ...any) (lms.Response, error)
}

var _ Gateway = (*lms.Connection)(nil)

type State int

const (
	SelectingPlayer State = iota
	Observing
)

func (s State) String() string {
	if s == Observing {
		return "observing"
	}
	return "selecting player"
}

// NoSelection is the cursor value when no player is selected.
const NoSelection = -1

// range bound passed to status queries
const maxTracks = 9999

type Engine struct {
	gateway Gateway
	logger  logger.LoggerInterface

	state   State
	quit    bool
	lastErr error

	// selection state, kept across polls
	players     []lms.Player
	cursor      int
	observed    *lms.Player
	highlighted int

	// snapshot of the observed player, replaced wholesale
	status   *lms.Status
	playlist lms.Playlist
}

func New(gateway Gateway, logger logger.LoggerInterface) *Engine {
	return &Engine{
		gateway: gateway,
		logger:  logger,
		state:   SelectingPlayer,
		cursor:  NoSelection,
	}
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Quit() {
	e.quit = true
}

func (e *Engine) Quitting() bool {
	return e.quit
}

// Tick runs one polling pass for the current state. A failed pass leaves the
// last committed snapshot in place.
func (e *Engine) Tick(ctx context.Context) error {
	var err error
	switch e.state {
	case SelectingPlayer:
		err = e.refreshPlayers(ctx)
	case Observing:
		err = e.refreshObserved(ctx)
	}
	e.lastErr = err
	return err
}

// Confirm starts observing the player under the cursor. Status and playlist
// are fetched before Observing is entered, so the first frame after the
// switch shows the new player.
func (e *Engine) Confirm(ctx context.Context) error {
	if e.state != SelectingPlayer {
		return nil
	}
	i, ok := e.selected()
	if !ok {
		return nil
	}
	player := e.players[i]
	e.observed = &player
	e.clearSnapshot()

	err := e.refreshObserved(ctx)
	e.state = Observing
	e.lastErr = err
	if e.logger != nil {
		e.logger.Printf("observing player %s (%s)", player.Name, player.ID)
	}
	return err
}

// Back stops observing and re-polls the player list.
func (e *Engine) Back(ctx context.Context) error {
	if e.state != Observing {
		return nil
	}
	e.state = SelectingPlayer
	e.observed = nil
	e.clearSnapshot()

	err := e.refreshPlayers(ctx)
	e.lastErr = err
	return err
}

func (e *Engine) clearSnapshot() {
	e.status = nil
	e.playlist = lms.Playlist{}
	e.highlighted = 0
}

func (e *Engine) refreshPlayers(ctx context.Context) error {
	resp, err := e.gateway.Query(ctx, "", "serverstatus", 0, 999)
	if err != nil {
		return err
	}
	players, err := decodePlayers(resp)
	if err != nil {
		e.players = nil
		e.cursor = NoSelection
		return err
	}
	e.players = players
	if len(players) == 0 {
		e.cursor = NoSelection
	}
	return nil
}

// refreshObserved issues the status, time and playlist queries in order. The
// status (including elapsed time) commits as one unit and the playlist
// commits on its own; neither rolls the other back.
func (e *Engine) refreshObserved(ctx context.Context) error {
	if e.observed == nil {
		return nil
	}
	id := e.observed.ID
	var errs []error

	status, statusErr := e.fetchStatus(ctx, id)
	if statusErr != nil {
		errs = append(errs, statusErr)
	} else {
		e.status = &status
		e.highlighted = int(status.CurrentIndex)
	}

	if statusErr == nil && status.TotalTracks == 0 {
		e.playlist = lms.Playlist{}
	} else if playlist, err := e.fetchPlaylist(ctx, id); err != nil {
		errs = append(errs, err)
	} else {
		e.playlist = playlist
	}

	return errors.Join(errs...)
}

func (e *Engine) fetchStatus(ctx context.Context, id string) (lms.Status, error) {
	resp, err := e.gateway.Query(ctx, id, "status", 0, maxTracks)
	if err != nil {
		return lms.Status{}, err
	}
	status, err := decodeStatus(resp)
	if err != nil {
		return lms.Status{}, err
	}
	if status.TotalTracks == 0 {
		return status, nil
	}

	resp, err = e.gateway.Query(ctx, id, "time", "?")
	if err != nil {
		return lms.Status{}, err
	}
	elapsed, err := decodeElapsed(resp)
	if err != nil {
		return lms.Status{}, err
	}
	if status.Mode != lms.ModeStopped {
		status.Elapsed = elapsed
	}
	return status, nil
}

func (e *Engine) fetchPlaylist(ctx context.Context, id string) (lms.Playlist, error) {
	resp, err := e.gateway.Query(ctx, id, "status", 0, maxTracks, "tags:adl")
	if err != nil {
		return lms.Playlist{}, err
	}
	return decodePlaylist(resp)
}
