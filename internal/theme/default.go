package theme

import (
	"fmt"
	"image/color"
	"strconv"

	"git.lost.host/meutraa/eotb/internal/game"
)

type DefaultTheme struct {
}

// RenderNote colours chart notes by their beat division. Player notes are
// green and dimmed until they can be played.
func (t *DefaultTheme) RenderNote(note *game.Note) string {
	c := getNoteColor(note.Icon)
	if note.Owner == game.PlayerOwned {
		c = playerColor
		if !note.Active {
			c = waitingColor
		}
	}
	return paint(c, laneSyms[note.Lane])
}

func (t *DefaultTheme) RenderHitField(l game.Lane) string {
	return barSyms[l]
}

func (t *DefaultTheme) TierColor(tier game.Tier) color.RGBA {
	return tierColors[tier]
}

func (t *DefaultTheme) TierName(tier game.Tier) string {
	return paint(tierColors[tier], tier.String())
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

var (
	laneSyms = [game.LaneCount]string{"▲", "▼", "◀", "▶"}
	barSyms  = [game.LaneCount]string{"△", "▽", "◁", "▷"}

	playerColor  = color.RGBA{0, 236, 128, 255}
	waitingColor = color.RGBA{60, 110, 80, 255}

	tierColors = [game.TierCount]color.RGBA{
		{173, 236, 236, 255}, // Perfect
		{0, 236, 128, 255},   // Good
		{236, 195, 0, 255},   // Okay
		{236, 30, 0, 255},    // Miss
	}

	noteColors = map[int]color.RGBA{
		1:  {236, 30, 0, 255},    // 1/4 red
		2:  {0, 118, 236, 255},   // 1/8 blue
		3:  {106, 0, 236, 255},   // 1/12 purple
		4:  {236, 195, 0, 255},   // 1/16 yellow
		6:  {236, 0, 106, 255},   // 1/24 pink
		8:  {236, 128, 0, 255},   // 1/32 orange
		12: {173, 236, 236, 255}, // 1/48 light blue
		16: {0, 236, 128, 255},   // 1/64 green
		48: {110, 147, 89, 255},  // 1/192 olive
		-1: {255, 255, 255, 255}, // other white
	}
)

// Chart notes carry their beat division in the icon, anything else is white.
func getNoteColor(icon string) color.RGBA {
	d, err := strconv.Atoi(icon)
	if nil != err {
		return noteColors[-1]
	}
	col, ok := noteColors[d]
	if !ok {
		return noteColors[-1]
	}
	return col
}
