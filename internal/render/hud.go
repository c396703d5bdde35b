package render

import (
	"fmt"
	"math"

	"git.lost.host/meutraa/eotb/internal/battle"
	"git.lost.host/meutraa/eotb/internal/conductor"
	"git.lost.host/meutraa/eotb/internal/engine"
	"git.lost.host/meutraa/eotb/internal/game"
	"git.lost.host/meutraa/eotb/internal/record"
	"git.lost.host/meutraa/eotb/internal/theme"
)

const decorationFrames = 240

// Status is everything besides the notes shown on screen.
type Status struct {
	Player, Enemy *battle.Puppet
	Bar           *battle.Bar
	Summary       record.Summary
	Combo         int
}

// HUD draws the lanes scrolling down into the hit bar with the battle stats
// beside them. It also listens to the conductor to flag timed out notes.
type HUD struct {
	conductor.NopListener

	R     Renderer
	Theme theme.Theme

	RowsPerBeat int
	Spacing     int // columns between lanes
	BarRow      int // rows above the bottom of the screen

	columns     [game.LaneCount]int
	hitRow      int
	sideCol     int
	width, rows int
}

func NewHUD(r Renderer, th theme.Theme) *HUD {
	return &HUD{R: r, Theme: th, RowsPerBeat: 4, Spacing: 6, BarRow: 8}
}

// Resize lays the HUD out for the renderer's current size.
func (h *HUD) Resize() {
	h.width, h.rows = h.R.Size()
	mid := h.width >> 1
	for i := range h.columns {
		h.columns[i] = mid + (2*i-3)*h.Spacing
	}
	h.hitRow = h.rows - h.BarRow
	if h.hitRow < 2 {
		h.hitRow = h.rows
	}
	h.sideCol = h.columns[0] - 36
	if h.sideCol < 2 {
		h.sideCol = 2
	}
}

// Column is the screen column of a lane.
func (h *HUD) Column(l game.Lane) int {
	return h.columns[l]
}

// Row is the screen row of a note at the given beat, the hit bar at the
// current beat.
func (h *HUD) Row(note, beat float64) int {
	return h.hitRow - int(math.Round((note-beat)*float64(h.RowsPerBeat)))
}

func (h *HUD) OnMiss(l game.Lane, timeout bool) {
	if timeout {
		h.decorate(l, h.Theme.TierName(game.Miss))
	}
}

func (h *HUD) decorate(l game.Lane, s string) {
	h.R.AddDecoration(h.columns[l]-2, h.hitRow+2, s, decorationFrames)
}

func (h *HUD) Draw(f engine.Frame, c *conductor.Conductor, st Status) error {
	if 0 == h.rows {
		h.Resize()
	}

	for _, l := range game.Lanes {
		col := h.columns[l]
		for row := 1; row < h.hitRow; row++ {
			h.R.Fill(row, col, " ")
		}
		h.R.Fill(h.hitRow, col, h.Theme.RenderHitField(l))
		for _, n := range c.Notes(l) {
			row := h.Row(n.Beat, f.Sample.Beat)
			if row >= 1 && row < h.hitRow {
				h.R.Fill(row, col, h.Theme.RenderNote(n))
			}
		}
	}

	for _, out := range f.Outcomes {
		switch out.Kind {
		case conductor.Hit:
			h.decorate(out.Lane, h.Theme.TierName(out.Tier))
		case conductor.Placed:
			h.decorate(out.Lane, "  +  ")
		case conductor.Rejected:
			h.decorate(out.Lane, fmt.Sprintf("%-5.5v", out.Reason))
		}
	}

	s := st.Summary
	lines := []string{
		fmt.Sprintf("     Player:  %4d/%-4d", st.Player.Current, st.Player.Max),
		fmt.Sprintf("      Enemy:  %4d/%-4d", st.Enemy.Current, st.Enemy.Max),
		fmt.Sprintf("        Bar:  %4d/%-4d", st.Bar.Charge(), st.Bar.Max),
		fmt.Sprintf("      Combo:  %6d", st.Combo),
		fmt.Sprintf("  Max Combo:  %6d", s.MaxCombo),
		fmt.Sprintf("       Beat:  %6.2f", f.Sample.Wrapped),
		fmt.Sprintf("       Loop:  %6d", f.Sample.Loop),
		fmt.Sprintf("       Mean:  %6.1f ms", s.Mean*1000),
		fmt.Sprintf("      Stdev:  %6.1f ms", s.Stdev*1000),
		fmt.Sprintf("     Placed:  %6d", s.Placed),
	}
	for i, line := range lines {
		h.R.Fill(10+i, h.sideCol, line)
	}
	for t := game.Perfect; t <= game.Miss; t++ {
		h.R.FillColor(12+len(lines)+int(t), h.sideCol, h.Theme.TierColor(t), fmt.Sprintf("%11v:  %6d", t, s.Counts[t]))
	}
	return h.R.Flush()
}
