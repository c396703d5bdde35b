package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/eotb/internal/game"
)

func TestNoteColors(t *testing.T) {
	tests := map[string][3]uint8{
		"1":     {236, 30, 0},
		"2":     {0, 118, 236},
		"5":     {255, 255, 255},
		"heart": {255, 255, 255},
		"":      {255, 255, 255},
	}
	for icon, expected := range tests {
		c := getNoteColor(icon)
		if c.R != expected[0] || c.G != expected[1] || c.B != expected[2] {
			t.Fatalf("%q: expected %v, got %v", icon, expected, c)
		}
	}
}

func TestRenderNote(t *testing.T) {
	th := &DefaultTheme{}
	chart := th.RenderNote(&game.Note{Lane: game.Left, Icon: "1", Active: true})
	if !strings.Contains(chart, "◀") || !strings.Contains(chart, "236;30;0") {
		t.Fatalf("unexpected chart note %q", chart)
	}
	waiting := th.RenderNote(&game.Note{Lane: game.Up, Owner: game.PlayerOwned})
	active := th.RenderNote(&game.Note{Lane: game.Up, Owner: game.PlayerOwned, Active: true})
	if waiting == active {
		t.Fatal("waiting and active player notes look the same")
	}
	if !strings.Contains(th.TierName(game.Miss), "Miss") {
		t.Fatal("tier name missing")
	}
}
