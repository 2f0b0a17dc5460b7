// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "github.com/spezifisch/lmsview/lms"

// TrackInterface is the part of a song that desktop media widgets show.
type TrackInterface interface {
	GetArtist() string
	GetTitle() string
	GetAlbum() string
	GetDuration() float64
}

var _ TrackInterface = lms.Song{}

// Publisher mirrors the observed player somewhere outside the terminal.
type Publisher interface {
	// Update is called after every poll. status is nil while no player is
	// observed, track is nil when the playlist doesn't have the current song.
	Update(status *lms.Status, track TrackInterface)
	Close()
}
