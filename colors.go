// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"
)

// color roles
const (
	ColorBanner           = "Banner"
	ColorPlayerName       = "PlayerName"
	ColorPlayingIndicator = "PlayingIndicator"
	ColorPausedIndicator  = "PausedIndicator"
	ColorStoppedIndicator = "StoppedIndicator"
	ColorRepeatIndicator  = "RepeatIndicator"
	ColorShuffleIndicator = "ShuffleIndicator"
	ColorTrackIndex       = "TrackIndex"
	ColorTrackTitle       = "TrackTitle"
	ColorTrackArtist      = "TrackArtist"
	ColorTrackAlbum       = "TrackAlbum"
	ColorTrackDuration    = "TrackDuration"
	ColorPlaybarGauge     = "PlaybarGauge"
)

// terminal palette indices
var defaultColors = map[string]int{
	ColorBanner:           2,
	ColorPlayerName:       1,
	ColorPlayingIndicator: 2,
	ColorPausedIndicator:  3,
	ColorStoppedIndicator: 1,
	ColorRepeatIndicator:  5,
	ColorShuffleIndicator: 6,
	ColorTrackIndex:       5,
	ColorTrackTitle:       3,
	ColorTrackArtist:      4,
	ColorTrackAlbum:       1,
	ColorTrackDuration:    6,
	ColorPlaybarGauge:     2,
}

type Palette struct {
	colors map[string]int
}

// newPalette starts from the defaults and applies the [colors] table of the
// config. Keys are matched case-insensitively, like all viper keys.
func newPalette(v *viper.Viper) (*Palette, error) {
	p := &Palette{colors: make(map[string]int, len(defaultColors))}
	for role, index := range defaultColors {
		p.colors[role] = index

		key := "colors." + strings.ToLower(role)
		if v == nil || !v.IsSet(key) {
			continue
		}
		index = v.GetInt(key)
		if index < 0 || index > 255 {
			return nil, fmt.Errorf("color %s: palette index %d out of range 0-255", role, index)
		}
		p.colors[role] = index
	}
	return p, nil
}

// Index returns the palette index of a role. Roles are fixed at compile time,
// so an unknown one panics.
func (p *Palette) Index(role string) int {
	index, ok := p.colors[role]
	if !ok {
		panic(fmt.Sprintf("unknown color role %q", role))
	}
	return index
}

func (p *Palette) Color(role string) tcell.Color {
	return tcell.PaletteColor(p.Index(role))
}

func (p *Palette) Style(role string) tcell.Style {
	return tcell.StyleDefault.Foreground(p.Color(role))
}
