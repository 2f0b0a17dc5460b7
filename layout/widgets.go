// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/spezifisch/lmsview/lms"
)

const (
	// NowPlayingReserve is the room kept free for the label and playback time
	// next to the now playing text.
	NowPlayingReserve = 33
	// SummaryMinWidth must be exceeded for the track summary to be shown.
	SummaryMinWidth = 50
	// BigBannerMinHeight must be exceeded for the big banner to be shown.
	BigBannerMinHeight = 15

	NotAvailable = "N/A"
)

// NowPlaying describes the current song for a footer of the given width, or
// returns "" when the footer is too narrow to hold it.
func NowPlaying(width int, status lms.Status, song lms.Song) string {
	if width <= NowPlayingReserve {
		return ""
	}
	text := NotAvailable
	if status.TotalTracks != 0 {
		text = song.Title + " - " + song.Artist
	}
	max := width - NowPlayingReserve
	if DisplayWidth(text) > max {
		text = cond.Truncate(text, max, ellipsis)
	}
	return text
}

// PlaybackTime is "(elapsed/duration)".
func PlaybackTime(elapsed, duration float64) string {
	return fmt.Sprintf("(%s/%s)", FormatTime(elapsed, false), FormatTime(duration, false))
}

// Ratio is elapsed over duration, clamped to [0, 1].
func Ratio(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	r := elapsed / duration
	switch {
	case math.IsNaN(r) || r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Gauge fills the leading ratio of width cells with blocks.
func Gauge(width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat(" ", width-filled)
}

const Tagline = "An LMS Playlist Viewer for the Terminal"

var bigBanner = []string{
	"",
	" _                       _               ",
	"| |_ __ ___  _____   __ (_) _____      __",
	"| | '_ ` _ \\/ __\\ \\ / / | |/ _ \\ \\ /\\ / /",
	"| | | | | | \\__ \\\\ V /  | |  __/\\ V  V / ",
	"|_|_| |_| |_|___/ \\_/   |_|\\___| \\_/\\_/  ",
	"",
	"",
	Tagline,
	"",
}

var tinyBanner = []string{
	"",
	"lmsview",
	"",
	Tagline,
	"",
}

// Banner picks the banner that fits a screen of the given height.
func Banner(height int) []string {
	if height > BigBannerMinHeight {
		return bigBanner
	}
	return tinyBanner
}

// StatusParts are the pieces of the header line above the playlist.
type StatusParts struct {
	Player   string
	Mode     string
	Repeat   string
	Shuffle  string
	Tracks   string
	Duration string
}

func StatusLine(status lms.Status, playlist lms.Playlist) StatusParts {
	return StatusParts{
		Player:   status.PlayerName,
		Mode:     status.Mode.String(),
		Repeat:   status.Repeat.String(),
		Shuffle:  status.Shuffle.String(),
		Tracks:   fmt.Sprintf("%d Tracks", status.TotalTracks),
		Duration: FormatTime(playlist.TotalDuration(), false),
	}
}

// Summary is the track count and total playlist duration.
func (p StatusParts) Summary() string {
	return p.Tracks + " | " + p.Duration
}

// Indicators is the mode with repeat and shuffle flags, "PLAYING | [r-]".
func (p StatusParts) Indicators() string {
	return p.Mode + " | [" + p.Repeat + p.Shuffle + "]"
}
