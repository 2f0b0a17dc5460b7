// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/spezifisch/lmsview/lms"
	"github.com/spezifisch/lmsview/logger"
)

const (
	objectPath  = "/org/mpris/MediaPlayer2"
	ifaceRoot   = "org.mpris.MediaPlayer2"
	ifacePlayer = "org.mpris.MediaPlayer2.Player"
	busName     = "org.mpris.MediaPlayer2.lmsview"

	noTrack dbus.ObjectPath = "/org/mpris/MediaPlayer2/TrackList/NoTrack"
)

// MprisPlayer publishes the observed player on the session bus. It only
// reports: the remote player can't be controlled through it.
type MprisPlayer struct {
	dbus   *dbus.Conn
	props  *prop.Properties
	logger logger.LoggerInterface

	last published
}

var _ Publisher = (*MprisPlayer)(nil)

// published is what was last sent, so unchanged polls don't emit signals.
type published struct {
	status   string
	loop     string
	shuffle  bool
	metadata map[string]dbus.Variant
}

func RegisterMprisPlayer(logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:   conn,
		logger: logger_,
	}

	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: Metadata(nil, 0), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"PlaybackStatus": {Value: PlaybackStatus(nil), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"LoopStatus":     {Value: LoopStatus(lms.RepeatNone), Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Shuffle":        {Value: false, Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"Position":       {Value: int64(0), Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Rate":           {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"MinimumRate":    {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"MaximumRate":    {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Volume":         {Value: 1.0, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "lmsview", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: []string{}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: []string{}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	mpp.props, err = prop.Export(
		conn,
		objectPath,
		map[string]map[string]*prop.Prop{
			ifaceRoot:   mediaPlayer,
			ifacePlayer: mprisPlayer,
		},
	)
	if err != nil {
		conn.Close()
		return nil, err
	}

	n := &introspect.Node{
		Name: objectPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       ifaceRoot,
				Properties: mpp.props.Introspection(ifaceRoot),
			},
			{
				Name:       ifacePlayer,
				Properties: mpp.props.Introspection(ifacePlayer),
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), objectPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		conn.Close()
		return nil, err
	}

	reply, err := conn.RequestName(busName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return nil, errors.New("name already owned")
	}

	mpp.last = published{status: PlaybackStatus(nil), loop: LoopStatus(lms.RepeatNone), metadata: Metadata(nil, 0)}
	return mpp, nil
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpris Close", err)
	}
}

// Update sets the exported properties from the latest snapshot. Changed
// properties emit PropertiesChanged; Position is polled by clients.
func (m *MprisPlayer) Update(status *lms.Status, track TrackInterface) {
	next := published{status: PlaybackStatus(status), loop: LoopStatus(lms.RepeatNone)}
	var index uint64
	if status != nil {
		next.loop = LoopStatus(status.Repeat)
		next.shuffle = ShuffleEnabled(status.Shuffle)
		index = status.CurrentIndex
		m.set("Position", Position(status.Elapsed))
	} else {
		m.set("Position", int64(0))
	}
	next.metadata = Metadata(track, index)

	if next.status != m.last.status {
		m.set("PlaybackStatus", next.status)
	}
	if next.loop != m.last.loop {
		m.set("LoopStatus", next.loop)
	}
	if next.shuffle != m.last.shuffle {
		m.set("Shuffle", next.shuffle)
	}
	if !sameMetadata(next.metadata, m.last.metadata) {
		m.logger.Printf("mpris: now %v", next.metadata["xesam:title"].Value())
		m.set("Metadata", next.metadata)
	}
	m.last = next
}

// set writes a read-only property. The exported Set refuses those, SetMust
// doesn't, but it panics when the signal can't be emitted.
func (m *MprisPlayer) set(name string, value interface{}) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.PrintError("mpris "+name, fmt.Errorf("%v", r))
		}
	}()
	m.props.SetMust(ifacePlayer, name, value)
}

// PlaybackStatus maps the play mode. No observed player is Stopped.
func PlaybackStatus(status *lms.Status) string {
	if status == nil {
		return "Stopped"
	}
	switch status.Mode {
	case lms.ModePlaying:
		return "Playing"
	case lms.ModePaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

func LoopStatus(repeat lms.RepeatMode) string {
	switch repeat {
	case lms.RepeatTrack:
		return "Track"
	case lms.RepeatPlaylist:
		return "Playlist"
	default:
		return "None"
	}
}

// ShuffleEnabled is true for both track and album shuffle.
func ShuffleEnabled(shuffle lms.ShuffleMode) bool {
	return shuffle != lms.ShuffleNone
}

// Position converts seconds to microseconds.
func Position(seconds float64) int64 {
	if seconds < 0 {
		return 0
	}
	return int64(seconds * 1e6)
}

// TrackID names the song at a playlist index.
func TrackID(index uint64) dbus.ObjectPath {
	return dbus.ObjectPath(fmt.Sprintf("/org/lmsview/track/%d", index))
}

// Metadata builds the MPRIS metadata map for track at a playlist index.
func Metadata(track TrackInterface, index uint64) map[string]dbus.Variant {
	if track == nil {
		return map[string]dbus.Variant{
			"mpris:trackid": dbus.MakeVariant(noTrack),
			"mpris:length":  dbus.MakeVariant(int64(0)),
			"xesam:title":   dbus.MakeVariant(""),
			"xesam:artist":  dbus.MakeVariant([]string{}),
			"xesam:album":   dbus.MakeVariant(""),
		}
	}
	return map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(TrackID(index)),
		"mpris:length":  dbus.MakeVariant(Position(track.GetDuration())),
		"xesam:title":   dbus.MakeVariant(track.GetTitle()),
		"xesam:artist":  dbus.MakeVariant([]string{track.GetArtist()}),
		"xesam:album":   dbus.MakeVariant(track.GetAlbum()),
	}
}

func sameMetadata(a, b map[string]dbus.Variant) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || v.String() != w.String() {
			return false
		}
	}
	return true
}
