// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spezifisch/lmsview/lms"
)

// The server sends some numeric fields as numbers and others, or the same
// ones on other versions, as numeric strings. The typed getter is tried
// first; only a type mismatch falls back to parsing a string. A missing field
// is never retried.

type NumberParseError struct {
	Field string
	Value string
	Err   error
}

func (e *NumberParseError) Error() string {
	return fmt.Sprintf("field %q: cannot parse %q: %v", e.Field, e.Value, e.Err)
}

func (e *NumberParseError) Unwrap() error {
	return e.Err
}

func uintField(r lms.Response, key string) (uint64, error) {
	n, err := r.GetUint(key)
	if err == nil || !lms.IsTypeMismatch(err) {
		return n, err
	}
	s, serr := r.GetString(key)
	if serr != nil {
		return 0, err
	}
	n, perr := strconv.ParseUint(s, 10, 64)
	if perr != nil {
		return 0, &NumberParseError{Field: key, Value: s, Err: perr}
	}
	return n, nil
}

func floatField(r lms.Response, key string) (float64, error) {
	f, err := r.GetFloat(key)
	var raw string
	if err != nil {
		if !lms.IsTypeMismatch(err) {
			return 0, err
		}
		s, serr := r.GetString(key)
		if serr != nil {
			return 0, err
		}
		var perr error
		if f, perr = strconv.ParseFloat(s, 64); perr != nil {
			return 0, &NumberParseError{Field: key, Value: s, Err: perr}
		}
		raw = s
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if raw == "" {
			raw = fmt.Sprint(f)
		}
		return 0, &NumberParseError{Field: key, Value: raw, Err: errNotFinite}
	}
	return f, nil
}

var errNotFinite = errors.New("not a finite number")

// unknownCode is passed on for negative repeat and shuffle codes.
const unknownCode = math.MaxUint64

// modeCode reads a repeat or shuffle code. A negative integer is just another
// code outside the known range.
func modeCode(r lms.Response, key string) (uint64, error) {
	code, err := uintField(r, key)
	if err == nil {
		return code, nil
	}
	var parseErr *NumberParseError
	if !lms.IsTypeMismatch(err) && !errors.As(err, &parseErr) {
		return 0, err
	}
	if f, ferr := floatField(r, key); ferr == nil && f < 0 && f == math.Trunc(f) {
		return unknownCode, nil
	}
	return 0, err
}

// decodePlayers reads players_loop. The server leaves the loop out when no
// player is connected, which is only accepted if "player count" agrees.
func decodePlayers(r lms.Response) ([]lms.Player, error) {
	if !r.Has("players_loop") {
		count, err := uintField(r, "player count")
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return []lms.Player{}, nil
		}
	}
	records, err := r.GetRecords("players_loop")
	if err != nil {
		return nil, err
	}
	players := make([]lms.Player, 0, len(records))
	for _, record := range records {
		name, err := record.GetString("name")
		if err != nil {
			return nil, err
		}
		id, err := record.GetString("playerid")
		if err != nil {
			return nil, err
		}
		players = append(players, lms.Player{Name: name, ID: id})
	}
	return players, nil
}

// IndexRangeError means the server reported a current index outside of its
// own playlist.
type IndexRangeError struct {
	Index uint64
	Total uint64
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("current index %d out of range for %d tracks", e.Index, e.Total)
}

// decodeStatus decodes everything but the elapsed time, which comes from its
// own query.
func decodeStatus(r lms.Response) (lms.Status, error) {
	var status lms.Status
	var err error

	if status.PlayerName, err = r.GetString("player_name"); err != nil {
		return lms.Status{}, err
	}
	if status.TotalTracks, err = uintField(r, "playlist_tracks"); err != nil {
		return lms.Status{}, err
	}
	if status.TotalTracks > 0 {
		if status.CurrentIndex, err = uintField(r, "playlist_cur_index"); err != nil {
			return lms.Status{}, err
		}
		if status.CurrentIndex >= status.TotalTracks {
			return lms.Status{}, &IndexRangeError{Index: status.CurrentIndex, Total: status.TotalTracks}
		}
	}

	repeat, err := modeCode(r, "playlist repeat")
	if err != nil {
		return lms.Status{}, err
	}
	status.Repeat = lms.ParseRepeatMode(repeat)

	shuffle, err := modeCode(r, "playlist shuffle")
	if err != nil {
		return lms.Status{}, err
	}
	status.Shuffle = lms.ParseShuffleMode(shuffle)

	mode, err := r.GetString("mode")
	if err != nil {
		return lms.Status{}, err
	}
	if status.Mode, err = lms.ParsePlayMode(mode); err != nil {
		return lms.Status{}, err
	}

	return status, nil
}

func decodeElapsed(r lms.Response) (float64, error) {
	return floatField(r, "_time")
}

func decodeSong(r lms.Response) (song lms.Song, err error) {
	if song.PlaylistIndex, err = uintField(r, "playlist index"); err != nil {
		return
	}
	if song.Title, err = r.GetString("title"); err != nil {
		return
	}
	if song.Artist, err = r.GetString("artist"); err != nil {
		return
	}
	if song.Album, err = r.GetString("album"); err != nil {
		return
	}
	song.Duration, err = floatField(r, "duration")
	return
}

func decodePlaylist(r lms.Response) (lms.Playlist, error) {
	records, err := r.GetRecords("playlist_loop")
	if err != nil {
		return lms.Playlist{}, err
	}
	tracks := make([]lms.Song, 0, len(records))
	for i, record := range records {
		song, err := decodeSong(record)
		if err != nil {
			return lms.Playlist{}, fmt.Errorf("playlist entry %d: %w", i, err)
		}
		tracks = append(tracks, song)
	}
	return lms.Playlist{Tracks: tracks}, nil
}
