package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spezifisch/lmsview/lms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	result map[string]any
	err    error
}

// fakeGateway answers queries from a table keyed by "scope cmd args...".
type fakeGateway struct {
	replies map[string]reply
	calls   []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{replies: map[string]reply{}}
}

func key(scope string, args ...any) string {
	parts := []string{scope}
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}

func (g *fakeGateway) set(result map[string]any, scope string, args ...any) {
	g.replies[key(scope, args...)] = reply{result: result}
}

func (g *fakeGateway) fail(err error, scope string, args ...any) {
	g.replies[key(scope, args...)] = reply{err: err}
}

func (g *fakeGateway) Query(ctx context.Context, scope string, args ...any) (lms.Response, error) {
	k := key(scope, args...)
	g.calls = append(g.calls, k)
	r, ok := g.replies[k]
	if !ok {
		return lms.Response{}, &lms.TransportError{Caller: "fake", Err: fmt.Errorf("no reply for %q", k)}
	}
	if r.err != nil {
		return lms.Response{}, r.err
	}
	return lms.NewResponse(r.result), nil
}

func (g *fakeGateway) called(k string) bool {
	for _, c := range g.calls {
		if c == k {
			return true
		}
	}
	return false
}

const (
	playersKey  = " serverstatus 0 999"
	statusKey   = "p1 status 0 9999"
	timeKey     = "p1 time ?"
	playlistKey = "p1 status 0 9999 tags:adl"
)

var transportErr = &lms.TransportError{Caller: "status", Err: errors.New("connection refused")}

func players(ps ...lms.Player) map[string]any {
	loop := make([]any, 0, len(ps))
	for _, p := range ps {
		loop = append(loop, map[string]any{"name": p.Name, "playerid": p.ID})
	}
	return map[string]any{
		"player count": json.Number(fmt.Sprint(len(ps))),
		"players_loop": loop,
		"version":      "8.3.1",
	}
}

func kitchenStatus() map[string]any {
	return map[string]any{
		"player_name":        "Kitchen",
		"playlist_tracks":    json.Number("3"),
		"playlist_cur_index": "1",
		"playlist repeat":    json.Number("1"),
		"playlist shuffle":   json.Number("0"),
		"mode":               "play",
	}
}

func song(i int, title string, duration string) map[string]any {
	return map[string]any{
		"playlist index": json.Number(fmt.Sprint(i)),
		"title":          title,
		"artist":         "Artist " + title,
		"album":          "Album",
		"duration":       json.Number(duration),
	}
}

func threeSongs() map[string]any {
	return map[string]any{
		"playlist_loop": []any{
			song(0, "One", "181.5"),
			song(1, "Two", "240"),
			song(2, "Three", "3725"),
		},
	}
}

// observing returns an engine that has confirmed player p1.
func observing(t *testing.T, g *fakeGateway) *Engine {
	t.Helper()
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}), "", "serverstatus", 0, 999)
	e := New(g, nil)
	require.NoError(t, e.Tick(context.Background()))
	e.MoveDown()
	require.NoError(t, e.Confirm(context.Background()))
	require.Equal(t, Observing, e.State())
	return e
}

func kitchenGateway() *fakeGateway {
	g := newFakeGateway()
	g.set(kitchenStatus(), "p1", "status", 0, 9999)
	g.set(map[string]any{"_time": json.Number("42.5")}, "p1", "time", "?")
	g.set(threeSongs(), "p1", "status", 0, 9999, "tags:adl")
	return g
}

func TestEndToEndKitchen(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)

	v := e.View()
	require.NotNil(t, v.Status)
	assert.Equal(t, lms.Status{
		PlayerName:   "Kitchen",
		CurrentIndex: 1,
		Repeat:       lms.RepeatTrack,
		Shuffle:      lms.ShuffleNone,
		Mode:         lms.ModePlaying,
		TotalTracks:  3,
		Elapsed:      42.5,
	}, *v.Status)
	assert.Equal(t, 3, v.Playlist.Len())
	assert.Equal(t, 1, v.Highlighted)
	require.NotNil(t, v.Observed)
	assert.Equal(t, "p1", v.Observed.ID)

	current, ok := v.CurrentSong()
	require.True(t, ok)
	assert.Equal(t, "Two", current.Title)

	// the refresh happened before the state switch, in order
	assert.Equal(t, []string{playersKey, statusKey, timeKey, playlistKey}, g.calls)
}

func TestEmptyPlaylistForcesZero(t *testing.T) {
	g := newFakeGateway()
	status := kitchenStatus()
	status["playlist_tracks"] = json.Number("0")
	status["playlist_cur_index"] = "7"
	g.set(status, "p1", "status", 0, 9999)
	g.set(map[string]any{"_time": json.Number("99")}, "p1", "time", "?")
	g.set(threeSongs(), "p1", "status", 0, 9999, "tags:adl")

	e := observing(t, g)
	v := e.View()
	require.NotNil(t, v.Status)
	assert.Equal(t, uint64(0), v.Status.CurrentIndex)
	assert.Equal(t, 0.0, v.Status.Elapsed)
	assert.Equal(t, 0, v.Playlist.Len())
	assert.False(t, g.called(timeKey), "time must not be queried for an empty playlist")
	assert.False(t, g.called(playlistKey), "playlist must not be queried for an empty playlist")

	_, ok := v.CurrentSong()
	assert.False(t, ok)
}

func TestStoppedForcesElapsedZero(t *testing.T) {
	g := kitchenGateway()
	status := kitchenStatus()
	status["mode"] = "stop"
	g.set(status, "p1", "status", 0, 9999)

	e := observing(t, g)
	v := e.View()
	require.NotNil(t, v.Status)
	assert.Equal(t, lms.ModeStopped, v.Status.Mode)
	assert.Equal(t, 0.0, v.Status.Elapsed)
}

func TestNumericEncodingAgnostic(t *testing.T) {
	native := kitchenStatus()
	native["playlist_cur_index"] = json.Number("1")

	stringly := kitchenStatus()
	stringly["playlist_tracks"] = "3"
	stringly["playlist repeat"] = "1"
	stringly["playlist shuffle"] = "0"

	decode := func(status map[string]any, elapsed any) lms.Status {
		g := kitchenGateway()
		g.set(status, "p1", "status", 0, 9999)
		g.set(map[string]any{"_time": elapsed}, "p1", "time", "?")
		e := observing(t, g)
		require.NotNil(t, e.View().Status)
		return *e.View().Status
	}

	assert.Equal(t, decode(native, json.Number("42.5")), decode(stringly, "42.5"))
}

func TestUnknownPlayModeKeepsSnapshot(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)
	before := e.View()

	status := kitchenStatus()
	status["mode"] = "buffering"
	status["playlist_cur_index"] = "2"
	g.set(status, "p1", "status", 0, 9999)

	err := e.Tick(context.Background())
	var enumErr *lms.EnumDecodeError
	require.True(t, errors.As(err, &enumErr), "expected EnumDecodeError, got %v", err)
	assert.Equal(t, "buffering", enumErr.Value)

	after := e.View()
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Highlighted, after.Highlighted)
	assert.Equal(t, err, after.Err)
}

func TestMissingFieldIsNotRetried(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)

	status := kitchenStatus()
	delete(status, "playlist repeat")
	g.set(status, "p1", "status", 0, 9999)

	err := e.Tick(context.Background())
	var missing *lms.FieldMissingError
	require.True(t, errors.As(err, &missing), "expected FieldMissingError, got %v", err)
	assert.Equal(t, "playlist repeat", missing.Field)
}

func TestUnparsableNumberIsAnError(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)
	before := *e.View().Status

	status := kitchenStatus()
	status["playlist_cur_index"] = "one"
	g.set(status, "p1", "status", 0, 9999)

	err := e.Tick(context.Background())
	var parseErr *NumberParseError
	require.True(t, errors.As(err, &parseErr), "expected NumberParseError, got %v", err)
	assert.Equal(t, "playlist_cur_index", parseErr.Field)
	assert.Equal(t, before, *e.View().Status)
}

func TestIndexOutOfRange(t *testing.T) {
	g := kitchenGateway()
	status := kitchenStatus()
	status["playlist_cur_index"] = "3"
	g.set(status, "p1", "status", 0, 9999)

	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}), "", "serverstatus", 0, 999)

	e := New(g, nil)
	require.NoError(t, e.Tick(context.Background()))
	e.MoveDown()

	// Confirm still enters Observing, with no status committed
	err := e.Confirm(context.Background())
	var rangeErr *IndexRangeError
	require.True(t, errors.As(err, &rangeErr), "expected IndexRangeError, got %v", err)
	assert.Equal(t, uint64(3), rangeErr.Index)
	assert.Equal(t, Observing, e.State())
	assert.Nil(t, e.View().Status)
	assert.Equal(t, 3, e.View().Playlist.Len())
}

func TestIndependentCommits(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)
	before := *e.View().Status

	// the time query fails: status is not committed, the playlist still is
	g.fail(transportErr, "p1", "time", "?")
	g.set(map[string]any{"playlist_loop": []any{song(0, "Only", "10")}}, "p1", "status", 0, 9999, "tags:adl")

	err := e.Tick(context.Background())
	require.Error(t, err)
	assert.True(t, lms.IsTransport(err))

	v := e.View()
	assert.Equal(t, before, *v.Status)
	assert.Equal(t, 1, v.Playlist.Len())

	// the playlist fails: the new status still commits
	g.set(map[string]any{"_time": json.Number("50")}, "p1", "time", "?")
	g.set(map[string]any{"playlist_loop": "garbage"}, "p1", "status", 0, 9999, "tags:adl")

	err = e.Tick(context.Background())
	assert.True(t, lms.IsTypeMismatch(err))
	v = e.View()
	assert.Equal(t, 50.0, v.Status.Elapsed)
	assert.Equal(t, 1, v.Playlist.Len())
}

func TestHighlightMirrorsCurrentIndex(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)
	assert.Equal(t, 1, e.View().Highlighted)

	// navigation does not move the playlist highlight
	require.NoError(t, e.Handle(context.Background(), CmdDown))
	assert.Equal(t, 1, e.View().Highlighted)

	status := kitchenStatus()
	status["playlist_cur_index"] = "2"
	g.set(status, "p1", "status", 0, 9999)
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 2, e.View().Highlighted)
}

func TestPlayerListRefresh(t *testing.T) {
	g := newFakeGateway()
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}, lms.Player{Name: "Office", ID: "p2"}), "", "serverstatus", 0, 999)
	e := New(g, nil)

	require.NoError(t, e.Tick(context.Background()))
	v := e.View()
	assert.Equal(t, []lms.Player{{Name: "Kitchen", ID: "p1"}, {Name: "Office", ID: "p2"}}, v.Players)
	assert.Equal(t, NoSelection, v.Cursor)

	e.MoveUp()
	e.MoveUp()
	assert.Equal(t, 1, e.View().Cursor)

	// transport failure keeps the list
	g.fail(transportErr, "", "serverstatus", 0, 999)
	require.Error(t, e.Tick(context.Background()))
	assert.Len(t, e.View().Players, 2)
	assert.Equal(t, 1, e.View().Cursor)

	// the list shrinks: the cursor is kept but clamped on use
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}), "", "serverstatus", 0, 999)
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 0, e.View().Cursor)
	e.MoveDown()
	assert.Equal(t, 0, e.View().Cursor)

	// a malformed list empties it
	g.set(map[string]any{"players_loop": []any{map[string]any{"name": "NoID"}}}, "", "serverstatus", 0, 999)
	err := e.Tick(context.Background())
	var missing *lms.FieldMissingError
	require.True(t, errors.As(err, &missing))
	assert.Empty(t, e.View().Players)
	assert.Equal(t, NoSelection, e.View().Cursor)
}

func TestNoPlayersConnected(t *testing.T) {
	g := newFakeGateway()
	g.set(map[string]any{"player count": json.Number("0"), "version": "8.3.1"}, "", "serverstatus", 0, 999)
	e := New(g, nil)

	require.NoError(t, e.Tick(context.Background()))
	assert.Empty(t, e.View().Players)
	assert.Equal(t, NoSelection, e.View().Cursor)

	e.MoveDown()
	assert.Equal(t, NoSelection, e.View().Cursor)
	require.NoError(t, e.Handle(context.Background(), CmdConfirm))
	assert.Equal(t, SelectingPlayer, e.State())
}

func TestBackRepollsPlayers(t *testing.T) {
	g := kitchenGateway()
	e := observing(t, g)
	g.calls = nil

	require.NoError(t, e.Handle(context.Background(), CmdBack))
	assert.Equal(t, SelectingPlayer, e.State())
	assert.Equal(t, []string{playersKey}, g.calls)

	v := e.View()
	assert.Nil(t, v.Status)
	assert.Nil(t, v.Observed)
	assert.Equal(t, 0, v.Playlist.Len())
	// the cursor survives the round trip
	assert.Equal(t, 0, v.Cursor)
}

func TestConfirmWithFailingRefresh(t *testing.T) {
	g := newFakeGateway()
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}), "", "serverstatus", 0, 999)
	g.fail(transportErr, "p1", "status", 0, 9999)
	g.fail(transportErr, "p1", "status", 0, 9999, "tags:adl")

	e := New(g, nil)
	require.NoError(t, e.Tick(context.Background()))
	e.JumpTop()
	assert.Equal(t, NoSelection, e.View().Cursor, "jump needs a selection")
	e.MoveDown()

	err := e.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, Observing, e.State())
	assert.Nil(t, e.View().Status)
}

func TestQuitCommand(t *testing.T) {
	e := New(newFakeGateway(), nil)
	assert.False(t, e.Quitting())
	require.NoError(t, e.Handle(context.Background(), CmdQuit))
	assert.True(t, e.Quitting())
}

func TestNavigation(t *testing.T) {
	three := []lms.Player{{Name: "Kitchen", ID: "p1"}, {Name: "Office", ID: "p2"}, {Name: "Den", ID: "p3"}}

	testCases := []struct {
		name     string
		cursor   int
		steps    func(e *Engine)
		expected int
	}{
		{"down wraps from last", 2, (*Engine).MoveDown, 0},
		{"up wraps from first", 0, (*Engine).MoveUp, 2},
		{"down steps", 0, (*Engine).MoveDown, 1},
		{"up steps", 2, (*Engine).MoveUp, 1},
		{"down without selection", NoSelection, (*Engine).MoveDown, 0},
		{"up without selection", NoSelection, (*Engine).MoveUp, 0},
		{"bottom without selection", NoSelection, (*Engine).JumpBottom, NoSelection},
		{"top without selection", NoSelection, (*Engine).JumpTop, NoSelection},
		{"bottom with selection", 0, (*Engine).JumpBottom, 2},
		{"top with selection", 2, (*Engine).JumpTop, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := newFakeGateway()
			g.set(players(three...), "", "serverstatus", 0, 999)
			e := New(g, nil)
			require.NoError(t, e.Tick(context.Background()))

			switch {
			case tc.cursor == NoSelection:
			case tc.cursor == 0:
				e.MoveDown()
			default:
				e.MoveDown()
				e.JumpBottom()
			}
			require.Equal(t, tc.cursor, e.View().Cursor)

			tc.steps(e)
			assert.Equal(t, tc.expected, e.View().Cursor)
		})
	}
}

func TestNavigationStaleCursor(t *testing.T) {
	g := newFakeGateway()
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}, lms.Player{Name: "Office", ID: "p2"}, lms.Player{Name: "Den", ID: "p3"}), "", "serverstatus", 0, 999)
	e := New(g, nil)
	require.NoError(t, e.Tick(context.Background()))
	e.MoveUp()
	e.JumpBottom()
	require.Equal(t, 2, e.View().Cursor)

	// the list shrinks to two: the cursor is clamped to the last entry
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}, lms.Player{Name: "Office", ID: "p2"}), "", "serverstatus", 0, 999)
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 1, e.View().Cursor)

	e.MoveDown()
	assert.Equal(t, 0, e.View().Cursor)

	e.JumpBottom()
	e.MoveUp()
	assert.Equal(t, 0, e.View().Cursor)

	// and confirm observes the clamped player
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}, lms.Player{Name: "Office", ID: "p2"}, lms.Player{Name: "Den", ID: "p3"}), "", "serverstatus", 0, 999)
	require.NoError(t, e.Tick(context.Background()))
	e.JumpBottom()
	g.set(players(lms.Player{Name: "Kitchen", ID: "p1"}), "", "serverstatus", 0, 999)
	require.NoError(t, e.Tick(context.Background()))
	g.fail(transportErr, "p1", "status", 0, 9999)
	g.fail(transportErr, "p1", "status", 0, 9999, "tags:adl")
	_ = e.Confirm(context.Background())
	require.NotNil(t, e.View().Observed)
	assert.Equal(t, "p1", e.View().Observed.ID)
}
