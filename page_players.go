// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/lmsview/engine"
	"github.com/spezifisch/lmsview/layout"
)

const noPlayersText = "There are currently no connected players."

// PlayersPage is the player selection screen: banner, player list and footer.
type PlayersPage struct {
	Root *tview.Box

	offset int

	// external refs
	ui *Ui
}

func (ui *Ui) createPlayersPage() *PlayersPage {
	playersPage := PlayersPage{
		ui: ui,
	}

	playersPage.Root = tview.NewBox().SetDrawFunc(playersPage.draw)

	return &playersPage
}

func (p *PlayersPage) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	view := p.ui.view

	bannerHeight, footerHeight := 5, 1
	if height > layout.BigBannerMinHeight {
		bannerHeight, footerHeight = 10, 3
	}

	p.drawBanner(screen, x, y, width, bannerHeight, height)

	listX, listWidth := centeredRect(x, width, 40)
	listY := y + bannerHeight
	listHeight := height - bannerHeight - footerHeight
	if listHeight >= 3 {
		if len(view.Players) == 0 {
			p.drawEmpty(screen, listX, listY, listWidth, listHeight)
		} else {
			p.drawList(screen, view, listX, listY, listWidth, listHeight)
		}
	}

	if footerHeight > 1 {
		footer := fmt.Sprintf("%s %s", clientName, Version)
		drawAligned(screen, x, y+height-1, width, footer, tcell.StyleDefault, tview.AlignCenter)
	}

	return x, y, width, height
}

func (p *PlayersPage) drawBanner(screen tcell.Screen, x, y, width, rows, screenHeight int) {
	style := p.ui.palette.Style(ColorBanner).Bold(true)
	for i, line := range layout.Banner(screenHeight) {
		if i >= rows {
			break
		}
		drawAligned(screen, x, y+i, width, line, style, tview.AlignCenter)
	}
}

func (p *PlayersPage) drawEmpty(screen tcell.Screen, x, y, width, height int) {
	row := y + height/2 - 2
	if row < y {
		row = y
	}
	style := tcell.StyleDefault.Bold(true)
	for _, line := range layout.Wrap(noPlayersText, width) {
		if row >= y+height {
			break
		}
		drawAligned(screen, x, row, width, line, style, tview.AlignCenter)
		row++
	}
}

// drawList draws the players inside a titled frame, the cursor row reversed.
func (p *PlayersPage) drawList(screen tcell.Screen, view engine.View, x, y, width, height int) {
	drawText(screen, x, y, width, layout.Title(width, "Players"), tcell.StyleDefault)
	drawText(screen, x, y+height-1, width, layout.Rule(width), tcell.StyleDefault)

	innerX, innerWidth := x+1, width-2
	innerY, rows := y+1, height-2
	if innerWidth <= 0 {
		return
	}

	p.offset = scrollOffset(p.offset, view.Cursor, rows, len(view.Players))
	for row := 0; row < rows; row++ {
		i := p.offset + row
		if i >= len(view.Players) {
			break
		}
		style := tcell.StyleDefault
		if i == view.Cursor {
			style = style.Reverse(true)
		}
		drawText(screen, innerX, innerY+row, innerWidth, layout.Fit(view.Players[i].Name, innerWidth), style)
	}
}
