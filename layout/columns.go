// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package layout

import (
	"strconv"

	"github.com/spezifisch/lmsview/lms"
)

const (
	// MinWidth is the narrowest width that gets more than a title column.
	MinWidth = 20
	// ArtistMinWidth and AlbumMinWidth must be exceeded for those columns to
	// be shown.
	ArtistMinWidth = 50
	AlbumMinWidth  = 80

	minIndexDigits = 2
	minDuration    = 5 // " M:SS"
)

type Segment struct {
	Text  string
	Width int
}

// Row is one playlist line. Columns that are hidden at the current width are
// zero-width segments.
type Row struct {
	Index    Segment
	Title    Segment
	Artist   Segment
	Album    Segment
	Duration Segment
}

// Segments returns the row in display order.
func (r Row) Segments() []Segment {
	return []Segment{r.Index, r.Title, r.Artist, r.Album, r.Duration}
}

func (r Row) Width() (w int) {
	for _, s := range r.Segments() {
		w += s.Width
	}
	return
}

func (r Row) String() string {
	return r.Index.Text + r.Title.Text + r.Artist.Text + r.Album.Text + r.Duration.Text
}

// Columns holds the widths of one render. They are computed once from the
// whole playlist so every row lines up.
type Columns struct {
	Width    int
	Index    int
	Title    int
	Artist   int
	Album    int
	Duration int
}

func NewColumns(width int, tracks []lms.Song) Columns {
	if width <= 0 {
		return Columns{}
	}
	if width < MinWidth {
		return Columns{Width: width, Title: width}
	}

	c := Columns{Width: width}

	var maxIndex uint64
	duration := minDuration
	for _, t := range tracks {
		if t.PlaylistIndex+1 > maxIndex {
			maxIndex = t.PlaylistIndex + 1
		}
		if w := DisplayWidth(FormatTime(t.Duration, true)); w > duration {
			duration = w
		}
	}
	digits := len(strconv.FormatUint(maxIndex, 10))
	if digits < minIndexDigits {
		digits = minIndexDigits
	}
	c.Index = digits + 1
	c.Duration = duration

	switch {
	case width > AlbumMinWidth:
		c.Artist = width / 11 * 3
		c.Album = width / 11 * 3
	case width > ArtistMinWidth:
		c.Artist = width / 3
	}

	c.Title = width - c.Index - c.Artist - c.Album - c.Duration
	if c.Title < 2 {
		return Columns{Width: width, Title: width}
	}
	return c
}

// Row lays out one song. Text columns always end in at least one space.
func (c Columns) Row(song lms.Song) Row {
	r := Row{
		Title:    textColumn(song.Title, c.Title),
		Artist:   textColumn(song.Artist, c.Artist),
		Album:    textColumn(song.Album, c.Album),
		Duration: Segment{Text: FitLeft(FormatTime(song.Duration, true), c.Duration), Width: c.Duration},
	}
	if c.Index > 0 {
		index := strconv.FormatUint(song.PlaylistIndex+1, 10)
		r.Index = Segment{Text: FitLeft(index, c.Index-1) + " ", Width: c.Index}
	}
	return r
}

// Track lays out a single song on its own.
func Track(width int, song lms.Song) Row {
	return NewColumns(width, []lms.Song{song}).Row(song)
}

func textColumn(text string, width int) Segment {
	switch {
	case width <= 0:
		return Segment{}
	case width == 1:
		return Segment{Text: " ", Width: 1}
	}
	return Segment{Text: Fit(text, width-1) + " ", Width: width}
}
