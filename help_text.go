// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

const helpGlobal = `
?     show this help (ESC closes it)
L     toggle the log page
`

const helpPagePlayers = `
j/DOWN      select next player
k/UP        select previous player
g/HOME      select first player
G/END       select last player
ENTER/SPACE observe selected player
q/ESC       quit
`

const helpPagePlaylist = `
p     back to player selection
q     quit

The highlighted track follows the
player, it can't be moved by hand.
`

const helpPageLog = `
UP/DOWN scroll
L       back
q       quit
`
