// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package engine

import (
	"context"

	"github.com/spezifisch/lmsview/lms"
)

// Info summarizes the server for --list and the startup check.
type Info struct {
	Version     string
	PlayerCount uint64
	Players     []lms.Player
}

func ServerInfo(ctx context.Context, gateway Gateway) (Info, error) {
	resp, err := gateway.Query(ctx, "", "serverstatus", 0, 999)
	if err != nil {
		return Info{}, err
	}
	var info Info
	if info.Version, err = resp.GetString("version"); err != nil {
		return Info{}, err
	}
	if info.PlayerCount, err = uintField(resp, "player count"); err != nil {
		return Info{}, err
	}
	if info.Players, err = decodePlayers(resp); err != nil {
		return Info{}, err
	}
	return info, nil
}
