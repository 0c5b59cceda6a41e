package theme

import (
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	c := Hex("#ff8000")
	if c.A != 1 {
		t.Errorf("A = %v, want 1", c.A)
	}
	if c.R != 1 {
		t.Errorf("R = %v, want 1", c.R)
	}
	if math.Abs(c.G-128.0/255) > 1e-9 {
		t.Errorf("G = %v, want 128/255", c.G)
	}
	if c.B != 0 {
		t.Errorf("B = %v, want 0", c.B)
	}

	// Bad input falls back to opaque black.
	if got := Hex("not-a-color"); got != (Color{A: 1}) {
		t.Errorf("Hex(bad) = %v, want opaque black", got)
	}
}

func TestWithAlpha(t *testing.T) {
	c := RGB(0.2, 0.4, 0.6).WithAlpha(0.5)
	if c.A != 0.5 {
		t.Errorf("A = %v, want 0.5", c.A)
	}
	if c.R != 0.2 || c.G != 0.4 || c.B != 0.6 {
		t.Errorf("WithAlpha changed the color channels: %v", c)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB(1, 0, 0)
	b := RGB(0, 0, 1).WithAlpha(0.5)

	if got := a.Blend(b, 0); math.Abs(got.R-1) > 1e-6 || math.Abs(got.B) > 1e-6 || got.A != 1 {
		t.Errorf("Blend(0) = %v, want the receiver", got)
	}
	got := a.Blend(b, 1)
	if math.Abs(got.B-1) > 1e-6 || math.Abs(got.R) > 1e-6 {
		t.Errorf("Blend(1) = %v, want the target color", got)
	}
	if got.A != 0.5 {
		t.Errorf("Blend(1) alpha = %v, want the target alpha", got.A)
	}
}

func TestDarkenKeepsAlpha(t *testing.T) {
	c := RGB(0.8, 0.8, 0.8).WithAlpha(0.7)
	got := c.Darken(0.5)
	if got.A != 0.7 {
		t.Errorf("Darken alpha = %v, want 0.7", got.A)
	}
	if got.R >= c.R {
		t.Errorf("Darken did not move toward black: %v", got)
	}
}

func TestColorForParticipantCycles(t *testing.T) {
	th := Default()
	n := len(GeneratePlayers(8, 0.25))

	first := th.ColorForParticipant(0)
	if got := th.ColorForParticipant(n); got != first {
		t.Errorf("ColorForParticipant(%d) = %v, want wrap to index 0", n, got)
	}
	if got := th.ColorForParticipant(1); got == first {
		t.Error("adjacent participants share a color")
	}
	// Negative indices are treated by magnitude, never panic.
	if got := th.ColorForParticipant(-2); got != th.ColorForParticipant(2) {
		t.Errorf("ColorForParticipant(-2) = %v, want same as 2", got)
	}
}

func TestColorForParticipantEmptyPalette(t *testing.T) {
	var th Theme
	if got := th.ColorForParticipant(3); got != th.Absent() {
		t.Errorf("empty palette = %v, want the absent color", got)
	}
}

func TestGeneratePlayers(t *testing.T) {
	players := GeneratePlayers(4, 0.3)
	if len(players) != 4 {
		t.Fatalf("got %d players, want 4", len(players))
	}
	seen := map[Color]bool{}
	for i, p := range players {
		if p.Cursor.A != 1 {
			t.Errorf("player %d cursor alpha = %v, want 1", i, p.Cursor.A)
		}
		if p.Selection.A != 0.3 {
			t.Errorf("player %d selection alpha = %v, want 0.3", i, p.Selection.A)
		}
		if p.Selection.WithAlpha(1) != p.Cursor {
			t.Errorf("player %d selection is not the cursor tint", i)
		}
		if seen[p.Cursor] {
			t.Errorf("player %d repeats an earlier cursor color", i)
		}
		seen[p.Cursor] = true
	}
}
