// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/lmsview/layout"
	"github.com/spezifisch/lmsview/lms"
)

// PlaylistPage shows the observed player: status header, the playlist with
// the current track highlighted, and the playbar.
type PlaylistPage struct {
	Root *tview.Flex

	header *tview.Box
	tracks *tview.Box
	footer *tview.Box

	offset int

	// external refs
	ui *Ui
}

func (ui *Ui) createPlaylistPage() *PlaylistPage {
	playlistPage := PlaylistPage{
		ui: ui,
	}

	playlistPage.header = tview.NewBox().SetDrawFunc(playlistPage.drawHeader)
	playlistPage.tracks = tview.NewBox().SetDrawFunc(playlistPage.drawTracks)
	playlistPage.footer = tview.NewBox().SetDrawFunc(playlistPage.drawFooter)

	playlistPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(playlistPage.header, 2, 0, false).
		AddItem(playlistPage.tracks, 0, 1, true).
		AddItem(playlistPage.footer, 4, 0, false)

	return &playlistPage
}

func (p *PlaylistPage) modeStyle(mode lms.PlayMode) tcell.Style {
	switch mode {
	case lms.ModePlaying:
		return p.ui.palette.Style(ColorPlayingIndicator)
	case lms.ModePaused:
		return p.ui.palette.Style(ColorPausedIndicator)
	default:
		return p.ui.palette.Style(ColorStoppedIndicator)
	}
}

func (p *PlaylistPage) drawHeader(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	view := p.ui.view
	if view.Status == nil {
		return x, y, width, height
	}
	status := *view.Status
	parts := layout.StatusLine(status, view.Playlist)
	bold := tcell.StyleDefault.Bold(true)

	drawSpans(screen, x, y, width, []span{
		{"Player: ", bold},
		{parts.Player, p.ui.palette.Style(ColorPlayerName)},
	}, tview.AlignLeft)

	if width > layout.SummaryMinWidth {
		drawAligned(screen, x, y, width, parts.Summary(), bold, tview.AlignCenter)
	}

	repeatStyle, shuffleStyle := bold, bold
	if status.Repeat != lms.RepeatNone {
		repeatStyle = p.ui.palette.Style(ColorRepeatIndicator).Bold(true)
	}
	if status.Shuffle != lms.ShuffleNone {
		shuffleStyle = p.ui.palette.Style(ColorShuffleIndicator).Bold(true)
	}
	drawSpans(screen, x, y, width, []span{
		{parts.Mode, p.modeStyle(status.Mode).Bold(true)},
		{" | [", tcell.StyleDefault},
		{parts.Repeat, repeatStyle},
		{parts.Shuffle, shuffleStyle},
		{"]", tcell.StyleDefault},
	}, tview.AlignRight)

	if height > 1 {
		drawText(screen, x, y+1, width, layout.Rule(width), tcell.StyleDefault)
	}
	return x, y, width, height
}

// drawTracks draws every visible track with the column layout of the whole
// playlist, keeping the highlighted row in view.
func (p *PlaylistPage) drawTracks(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	view := p.ui.view
	tracks := view.Playlist.Tracks
	if view.Status == nil || len(tracks) == 0 {
		return x, y, width, height
	}

	cols := layout.NewColumns(width, tracks)
	highlighted := view.Highlighted
	if highlighted >= len(tracks) {
		highlighted = -1
	}
	p.offset = scrollOffset(p.offset, highlighted, height, len(tracks))

	for row := 0; row < height; row++ {
		i := p.offset + row
		if i >= len(tracks) {
			break
		}
		reverse := i == highlighted
		if reverse {
			fillRow(screen, x, y+row, width, tcell.StyleDefault.Reverse(true))
		}

		r := cols.Row(tracks[i])
		cx := x
		for _, seg := range []struct {
			segment layout.Segment
			role    string
		}{
			{r.Index, ColorTrackIndex},
			{r.Title, ColorTrackTitle},
			{r.Artist, ColorTrackArtist},
			{r.Album, ColorTrackAlbum},
			{r.Duration, ColorTrackDuration},
		} {
			if seg.segment.Width == 0 {
				continue
			}
			style := p.ui.palette.Style(seg.role).Reverse(reverse)
			drawText(screen, cx, y+row, seg.segment.Width, seg.segment.Text, style)
			cx += seg.segment.Width
		}
	}
	return x, y, width, height
}

func (p *PlaylistPage) drawFooter(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	view := p.ui.view
	if view.Status == nil || height < 4 {
		return x, y, width, height
	}
	status := *view.Status
	song, _ := view.CurrentSong()

	rule := layout.Rule(width)
	drawText(screen, x, y, width, rule, tcell.StyleDefault)
	drawText(screen, x, y+2, width, rule, tcell.StyleDefault)

	if width > 2 {
		gauge := layout.Gauge(width-2, layout.Ratio(status.Elapsed, song.Duration))
		drawText(screen, x+1, y+1, width-2, gauge, p.ui.palette.Style(ColorPlaybarGauge))
	}

	if nowPlaying := layout.NowPlaying(width, status, song); nowPlaying != "" {
		drawSpans(screen, x, y+3, width, []span{
			{"Now Playing: ", tcell.StyleDefault.Bold(true)},
			{nowPlaying, tcell.StyleDefault},
		}, tview.AlignLeft)
	}
	drawAligned(screen, x, y+3, width, layout.PlaybackTime(status.Elapsed, song.Duration), tcell.StyleDefault, tview.AlignRight)

	return x, y, width, height
}
