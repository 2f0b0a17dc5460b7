// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

// The player list can shrink between polls, so the cursor is only clamped
// when it is used, never when the list changes.

func (e *Engine) selected() (int, bool) {
	if e.cursor == NoSelection || len(e.players) == 0 {
		return NoSelection, false
	}
	return clamp(e.cursor, len(e.players)), true
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// MoveDown selects the next player, wrapping from the last to the first.
func (e *Engine) MoveDown() {
	n := len(e.players)
	if n == 0 {
		return
	}
	i, ok := e.selected()
	if !ok || i >= n-1 {
		e.cursor = 0
		return
	}
	e.cursor = i + 1
}

// MoveUp selects the previous player, wrapping from the first to the last.
func (e *Engine) MoveUp() {
	n := len(e.players)
	if n == 0 {
		return
	}
	i, ok := e.selected()
	switch {
	case !ok:
		e.cursor = 0
	case i == 0:
		e.cursor = n - 1
	default:
		e.cursor = i - 1
	}
}

func (e *Engine) JumpTop() {
	if _, ok := e.selected(); ok {
		e.cursor = 0
	}
}

func (e *Engine) JumpBottom() {
	if _, ok := e.selected(); ok {
		e.cursor = len(e.players) - 1
	}
}
