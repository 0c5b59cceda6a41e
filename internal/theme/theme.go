// Package theme provides the color palette the layout engine attaches
// to per-frame geometry: selection and cursor colors per participant,
// gutter and scrollbar colors, and highlight tints.
package theme

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color. Components are in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex parses a "#rrggbb" color, falling back to black on bad input.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{A: 1}
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}

// WithAlpha returns the color with the given opacity.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Blend mixes c toward other in Luv space by amount in [0, 1].
func (c Color) Blend(other Color, amount float64) Color {
	a := colorful.Color{R: c.R, G: c.G, B: c.B}
	b := colorful.Color{R: other.R, G: other.G, B: other.B}
	m := a.BlendLuv(b, amount).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: c.A + (other.A-c.A)*amount}
}

// Darken moves the color toward black by amount in [0, 1].
func (c Color) Darken(amount float64) Color {
	return c.Blend(Color{A: c.A}, amount)
}

// PlayerColor is the pair of tints a participant's cursor and
// selection render with.
type PlayerColor struct {
	Cursor    Color
	Selection Color
}

// Theme is the resolved palette for one frame. It is read-only from
// the engine's point of view.
type Theme struct {
	Background       Color
	ActiveLine       Color
	LineNumber       Color
	ActiveLineNumber Color
	Invisible        Color
	WrapGuide        Color
	ActiveWrapGuide  Color

	ScrollbarTrack       Color
	ScrollbarTrackBorder Color
	ScrollbarThumb       Color
	ScrollbarMarker      Color

	SearchHighlight Color
	FoldHighlight   Color

	LocalPlayer PlayerColor
	// players holds the participant palette; index with
	// ColorForParticipant.
	players []PlayerColor
	absent  PlayerColor
}

// ColorForParticipant returns the palette entry for a participant
// index, cycling when the index exceeds the palette.
func (t *Theme) ColorForParticipant(index int) PlayerColor {
	if len(t.players) == 0 {
		return t.absent
	}
	if index < 0 {
		index = -index
	}
	return t.players[index%len(t.players)]
}

// Absent returns the palette entry for collaborators with no assigned
// participant index.
func (t *Theme) Absent() PlayerColor {
	return t.absent
}

// Default returns a dark palette. Participant colors are generated by
// stepping hue in HCL space so adjacent indices stay distinguishable.
func Default() *Theme {
	t := &Theme{
		Background:       Hex("#1e2127"),
		ActiveLine:       Hex("#1e2127").Blend(RGB(1, 1, 1), 0.06),
		LineNumber:       Hex("#4b5263"),
		ActiveLineNumber: Hex("#abb2bf"),
		Invisible:        Hex("#3b4048"),
		WrapGuide:        Hex("#3b4048"),
		ActiveWrapGuide:  Hex("#4b5263"),

		ScrollbarTrack:       Hex("#21252b").WithAlpha(0.8),
		ScrollbarTrackBorder: Hex("#181a1f"),
		ScrollbarThumb:       Hex("#4b5263").WithAlpha(0.8),
		ScrollbarMarker:      Hex("#61afef").WithAlpha(0.7),

		SearchHighlight: Hex("#e5c07b").WithAlpha(0.35),
		FoldHighlight:   Hex("#c678dd").WithAlpha(0.25),

		LocalPlayer: PlayerColor{
			Cursor:    Hex("#528bff"),
			Selection: Hex("#528bff").WithAlpha(0.25),
		},
	}
	t.players = GeneratePlayers(8, 0.25)
	t.absent = PlayerColor{
		Cursor:    Hex("#5c6370"),
		Selection: Hex("#5c6370").WithAlpha(0.25),
	}
	return t
}

// GeneratePlayers builds count participant colors by evenly stepping
// hue in HCL space. selectionAlpha sets the selection tint opacity.
func GeneratePlayers(count int, selectionAlpha float64) []PlayerColor {
	players := make([]PlayerColor, 0, count)
	for i := 0; i < count; i++ {
		hue := math.Mod(30+float64(i)*360/float64(count), 360)
		c := colorful.Hcl(hue, 0.65, 0.7).Clamped()
		cursor := Color{R: c.R, G: c.G, B: c.B, A: 1}
		players = append(players, PlayerColor{
			Cursor:    cursor,
			Selection: cursor.WithAlpha(selectionAlpha),
		})
	}
	return players
}
