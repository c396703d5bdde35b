package theme

import (
	"image/color"

	"git.lost.host/meutraa/eotb/internal/game"
)

type Theme interface {
	RenderNote(note *game.Note) string
	RenderHitField(l game.Lane) string
	TierColor(tier game.Tier) color.RGBA
	TierName(tier game.Tier) string
}
