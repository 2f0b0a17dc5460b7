// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package lms

// Player is one player connected to the server. Identity is ID.
type Player struct {
	Name string
	ID   string
}

type Song struct {
	PlaylistIndex uint64
	Title         string
	Artist        string
	Album         string
	Duration      float64 // seconds
}

func (s Song) GetTitle() string {
	return s.Title
}

func (s Song) GetArtist() string {
	return s.Artist
}

func (s Song) GetAlbum() string {
	return s.Album
}

func (s Song) GetDuration() float64 {
	return s.Duration
}

// Playlist is only index-stable for the snapshot it came from.
type Playlist struct {
	Tracks []Song
}

func (p Playlist) Len() int {
	return len(p.Tracks)
}

func (p Playlist) At(i int) (Song, bool) {
	if i < 0 || i >= len(p.Tracks) {
		return Song{}, false
	}
	return p.Tracks[i], true
}

func (p Playlist) TotalDuration() (total float64) {
	for _, t := range p.Tracks {
		total += t.Duration
	}
	return
}

type RepeatMode int

const (
	RepeatNone RepeatMode = iota
	RepeatTrack
	RepeatPlaylist
)

// ParseRepeatMode maps the server's "playlist repeat" code. Unknown codes
// mean no repeat.
func ParseRepeatMode(code uint64) RepeatMode {
	switch code {
	case 1:
		return RepeatTrack
	case 2:
		return RepeatPlaylist
	default:
		return RepeatNone
	}
}

func (m RepeatMode) String() string {
	switch m {
	case RepeatTrack:
		return "r"
	case RepeatPlaylist:
		return "R"
	default:
		return "-"
	}
}

type ShuffleMode int

const (
	ShuffleNone ShuffleMode = iota
	ShuffleTrack
	ShuffleAlbum
)

// ParseShuffleMode maps the server's "playlist shuffle" code. Unknown codes
// mean no shuffle.
func ParseShuffleMode(code uint64) ShuffleMode {
	switch code {
	case 1:
		return ShuffleTrack
	case 2:
		return ShuffleAlbum
	default:
		return ShuffleNone
	}
}

func (m ShuffleMode) String() string {
	switch m {
	case ShuffleTrack:
		return "z"
	case ShuffleAlbum:
		return "Z"
	default:
		return "-"
	}
}

type PlayMode int

const (
	ModeStopped PlayMode = iota
	ModePlaying
	ModePaused
)

// ParsePlayMode maps the server's "mode" field. Only play, stop and pause are
// documented; anything else is an EnumDecodeError.
func ParsePlayMode(mode string) (PlayMode, error) {
	switch mode {
	case "play":
		return ModePlaying, nil
	case "stop":
		return ModeStopped, nil
	case "pause":
		return ModePaused, nil
	}
	return ModeStopped, &EnumDecodeError{Field: "mode", Value: mode}
}

func (m PlayMode) String() string {
	switch m {
	case ModePlaying:
		return "PLAYING"
	case ModePaused:
		return "PAUSED"
	default:
		return "STOPPED"
	}
}

// Status is the state of the observed player. It is always replaced as a
// whole.
type Status struct {
	PlayerName   string
	CurrentIndex uint64
	Repeat       RepeatMode
	Shuffle      ShuffleMode
	Mode         PlayMode
	TotalTracks  uint64
	Elapsed      float64 // seconds
}
