// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package discovery finds media servers on the local network over mDNS.
package discovery

import (
	"context"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/grandcat/zeroconf"
	"github.com/spezifisch/lmsview/logger"
)

// DefaultService is the service type the server announces its web interface
// under.
const DefaultService = "_slimhttp._tcp"

const DefaultTimeout = 5 * time.Second

var ErrNotFound = errors.New("no server found")

type Server struct {
	Name string
	Host string
	Port int
}

// Address is host:port, usable as a connection host.
func (s Server) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// FromEntry picks the first IPv4 address of an entry. Entries without one are
// skipped.
func FromEntry(entry *zeroconf.ServiceEntry) (Server, bool) {
	if entry == nil || len(entry.AddrIPv4) == 0 || entry.Port <= 0 {
		return Server{}, false
	}
	return Server{
		Name: entry.Instance,
		Host: entry.AddrIPv4[0].String(),
		Port: entry.Port,
	}, true
}

// First browses for service and returns the first usable server, or
// ErrNotFound once timeout passes.
func First(ctx context.Context, service string, timeout time.Duration, logger logger.LoggerInterface) (Server, error) {
	if service == "" {
		service = DefaultService
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return Server{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// buffered so late answers don't block the resolver after we return
	entries := make(chan *zeroconf.ServiceEntry, 8)
	if err := resolver.Browse(ctx, service, "local.", entries); err != nil {
		return Server{}, err
	}

	return firstServer(ctx, entries, logger)
}

// firstServer reads entries until one is usable. The resolver closes entries
// when ctx is done.
func firstServer(ctx context.Context, entries <-chan *zeroconf.ServiceEntry, logger logger.LoggerInterface) (Server, error) {
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return Server{}, ErrNotFound
			}
			if server, ok := FromEntry(entry); ok {
				if logger != nil {
					logger.Printf("discovered server %s at %s", server.Name, server.Address())
				}
				return server, nil
			}
		case <-ctx.Done():
			return Server{}, ErrNotFound
		}
	}
}
