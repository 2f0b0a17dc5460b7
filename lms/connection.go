// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spezifisch/lmsview/logger"
)

// DEFAULT_TIMEOUT bounds every query; a slow server fails the query instead
// of stalling the poll loop.
const DEFAULT_TIMEOUT = 3 * time.Second

type Connection struct {
	Host    string
	Timeout time.Duration

	client *http.Client
	logger logger.LoggerInterface
}

func Init(logger logger.LoggerInterface) *Connection {
	return &Connection{
		Timeout: DEFAULT_TIMEOUT,
		client:  &http.Client{Timeout: DEFAULT_TIMEOUT},
		logger:  logger,
	}
}

type request struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type responseWrapper struct {
	Result map[string]any `json:"result"`
}

// Endpoint returns the JSON-RPC URL for the configured host. Host may be given
// with or without a scheme.
func (connection *Connection) Endpoint() string {
	host := strings.TrimSuffix(connection.Host, "/")
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/jsonrpc.js"
}

// Query sends one slim.request command. scope is a player id, or "" for
// server-wide commands; args is the command and its parameters, e.g.
// "status", 0, 9999.
func (connection *Connection) Query(ctx context.Context, scope string, args ...any) (Response, error) {
	caller := "Query"
	if len(args) > 0 {
		caller = fmt.Sprint(args[0])
	}
	if args == nil {
		args = []any{}
	}
	body, err := json.Marshal(request{
		ID:     1,
		Method: "slim.request",
		Params: []any{scope, args},
	})
	if err != nil {
		return Response{}, &TransportError{Caller: caller, Err: err}
	}
	return connection.getResponse(ctx, caller, body)
}

func (connection *Connection) getResponse(ctx context.Context, caller string, body []byte) (Response, error) {
	timeout := connection.Timeout
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, connection.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return Response{}, &TransportError{Caller: caller, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	if connection.client == nil {
		connection.client = &http.Client{}
	}
	// Timeout may be changed after Init
	connection.client.Timeout = timeout
	client := connection.client
	res, err := client.Do(req)
	if err != nil {
		return Response{}, &TransportError{Caller: caller, Err: fmt.Errorf("failed to make POST request: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Response{}, &TransportError{Caller: caller, Err: fmt.Errorf("unexpected status code: %d, status: %s", res.StatusCode, res.Status)}
	}

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Response{}, &TransportError{Caller: caller, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	var decoded responseWrapper
	decoder := json.NewDecoder(bytes.NewReader(responseBody))
	decoder.UseNumber()
	if err := decoder.Decode(&decoded); err != nil {
		return Response{}, &TransportError{Caller: caller, Err: fmt.Errorf("failed to unmarshal response body: %w", err)}
	}
	if decoded.Result == nil {
		return Response{}, &FieldMissingError{Field: "result"}
	}
	return NewResponse(decoded.Result), nil
}
