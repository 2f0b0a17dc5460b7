package lms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResponse(t *testing.T) {
	testCases := []struct {
		name          string
		serverStatus  int
		serverBody    string
		expectErr     bool
		expectMissing bool
	}{
		{
			name:         "Success",
			serverStatus: http.StatusOK,
			serverBody:   `{"id":1,"method":"slim.request","result":{"player count":1}}`,
		},
		{
			name:         "Non-200 Status Code",
			serverStatus: http.StatusBadRequest,
			serverBody:   `{"result":{}}`,
			expectErr:    true,
		},
		{
			name:         "Invalid JSON Response",
			serverStatus: http.StatusOK,
			serverBody:   `{"result": {"player count": `,
			expectErr:    true,
		},
		{
			name:          "No Result",
			serverStatus:  http.StatusOK,
			serverBody:    `{"id":1,"error":"nope"}`,
			expectMissing: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.serverStatus)
				if _, err := w.Write([]byte(tc.serverBody)); err != nil {
					t.Fatalf("failed to write server response: %v", err)
				}
			}))
			defer server.Close()

			connection := Init(nil)
			connection.Host = server.URL

			response, err := connection.Query(context.Background(), "", "serverstatus", 0, 999)

			switch {
			case tc.expectErr:
				require.Error(t, err)
				assert.True(t, IsTransport(err), "expected a transport error, got %v", err)
				assert.True(t, strings.Contains(err.Error(), "[serverstatus]"), "error should name the command: %v", err)
			case tc.expectMissing:
				var missing *FieldMissingError
				require.True(t, errors.As(err, &missing), "expected FieldMissingError, got %v", err)
				assert.Equal(t, "result", missing.Field)
				assert.False(t, IsTransport(err))
			default:
				require.NoError(t, err)
				count, err := response.GetUint("player count")
				require.NoError(t, err)
				assert.Equal(t, uint64(1), count)
			}
		})
	}
}

func TestQueryEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/jsonrpc.js", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
			Params []any  `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "slim.request", req.Method)
		require.Len(t, req.Params, 2)
		assert.Equal(t, "aa:bb:cc:dd:ee:ff", req.Params[0])
		assert.Equal(t, []any{"status", float64(0), float64(9999), "tags:adl"}, req.Params[1])

		_, _ = w.Write([]byte(`{"result":{"playlist_cur_index":"1","playlist_tracks":3,"_time":12.5}}`))
	}))
	defer server.Close()

	connection := Init(nil)
	connection.Host = strings.TrimPrefix(server.URL, "http://")

	response, err := connection.Query(context.Background(), "aa:bb:cc:dd:ee:ff", "status", 0, 9999, "tags:adl")
	require.NoError(t, err)

	index, err := response.GetString("playlist_cur_index")
	require.NoError(t, err)
	assert.Equal(t, "1", index)

	tracks, err := response.GetUint("playlist_tracks")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), tracks)

	elapsed, err := response.GetFloat("_time")
	require.NoError(t, err)
	assert.Equal(t, 12.5, elapsed)
}

func TestQueryTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	connection := Init(nil)
	connection.Host = server.URL
	connection.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := connection.Query(context.Background(), "", "serverstatus")
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClientTimeoutFollowsConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{}}`))
	}))
	defer server.Close()

	connection := Init(nil)
	assert.Equal(t, DEFAULT_TIMEOUT, connection.client.Timeout)

	connection.Host = server.URL
	connection.Timeout = 750 * time.Millisecond
	_, err := connection.Query(context.Background(), "", "serverstatus", 0, 999)
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, connection.client.Timeout)
}

func TestEndpoint(t *testing.T) {
	connection := Init(nil)

	connection.Host = "192.168.0.188:9000"
	assert.Equal(t, "http://192.168.0.188:9000/jsonrpc.js", connection.Endpoint())

	connection.Host = "https://lms.example.org/"
	assert.Equal(t, "https://lms.example.org/jsonrpc.js", connection.Endpoint())
}
