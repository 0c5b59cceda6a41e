// Package settings loads the editor-view settings the layout engine
// consumes: scrollbar policy, line-number mode, whitespace visibility,
// tab size, soft wrap, and gutter options. Settings live in a JSON
// document; unknown keys are ignored and missing keys fall back to
// defaults, so partial documents merge cleanly over Default().
package settings

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ScrollbarShow is the scrollbar visibility policy.
type ScrollbarShow uint8

const (
	// ScrollbarAuto shows the scrollbar when markers exist or
	// scrolling occurred recently.
	ScrollbarAuto ScrollbarShow = iota
	// ScrollbarSystem defers to the host platform's visibility.
	ScrollbarSystem
	// ScrollbarAlways keeps the scrollbar visible.
	ScrollbarAlways
	// ScrollbarNever hides the scrollbar.
	ScrollbarNever
)

// String returns the setting's JSON value.
func (s ScrollbarShow) String() string {
	switch s {
	case ScrollbarSystem:
		return "system"
	case ScrollbarAlways:
		return "always"
	case ScrollbarNever:
		return "never"
	default:
		return "auto"
	}
}

// ShowWhitespace is the invisible-character visibility policy.
type ShowWhitespace uint8

const (
	// WhitespaceNone never draws whitespace markers.
	WhitespaceNone ShowWhitespace = iota
	// WhitespaceSelection draws markers only inside selections.
	WhitespaceSelection
	// WhitespaceAll always draws markers.
	WhitespaceAll
)

// String returns the setting's JSON value.
func (s ShowWhitespace) String() string {
	switch s {
	case WhitespaceSelection:
		return "selection"
	case WhitespaceAll:
		return "all"
	default:
		return "none"
	}
}

// SoftWrapMode selects how the wrap width is derived.
type SoftWrapMode uint8

const (
	// WrapNone disables soft wrap.
	WrapNone SoftWrapMode = iota
	// WrapEditorWidth wraps at the text area width.
	WrapEditorWidth
	// WrapColumn wraps at a fixed column, capped by the editor width.
	WrapColumn
)

// String returns the setting's JSON value.
func (m SoftWrapMode) String() string {
	switch m {
	case WrapEditorWidth:
		return "editor_width"
	case WrapColumn:
		return "column"
	default:
		return "none"
	}
}

// Scrollbar groups the scrollbar settings.
type Scrollbar struct {
	Show ScrollbarShow
	// Selections draws search/selection markers on the track.
	Selections bool
	// Diff draws modified-row markers on the track.
	Diff bool
}

// Settings is the resolved view configuration for one frame.
type Settings struct {
	Scrollbar           Scrollbar
	RelativeLineNumbers bool
	ShowWhitespace      ShowWhitespace
	TabSize             int
	SoftWrap            SoftWrapMode
	WrapColumn          uint32
	ShowGutter          bool
	MinLineNumberDigits int
	CornerRadiusFactor  float64 // highlight corner radius as a fraction of line height
	WrapGuides          []uint32
	ScrollBeyondLastRow float64 // rows of overscroll past the document end
}

// Default returns the baseline configuration.
func Default() Settings {
	return Settings{
		Scrollbar:           Scrollbar{Show: ScrollbarAuto, Selections: true, Diff: true},
		RelativeLineNumbers: false,
		ShowWhitespace:      WhitespaceNone,
		TabSize:             4,
		SoftWrap:            WrapNone,
		WrapColumn:          80,
		ShowGutter:          true,
		MinLineNumberDigits: 3,
		CornerRadiusFactor:  0.15,
		ScrollBeyondLastRow: 1,
	}
}

// Parse overlays a JSON document on the defaults. Malformed JSON is an
// error; unknown keys are ignored.
func Parse(doc []byte) (Settings, error) {
	s := Default()
	if len(doc) == 0 {
		return s, nil
	}
	if !gjson.ValidBytes(doc) {
		return s, fmt.Errorf("settings: invalid JSON document")
	}
	root := gjson.ParseBytes(doc)

	if v := root.Get("scrollbar.show"); v.Exists() {
		switch v.String() {
		case "auto":
			s.Scrollbar.Show = ScrollbarAuto
		case "system":
			s.Scrollbar.Show = ScrollbarSystem
		case "always":
			s.Scrollbar.Show = ScrollbarAlways
		case "never":
			s.Scrollbar.Show = ScrollbarNever
		default:
			return s, fmt.Errorf("settings: unknown scrollbar.show %q", v.String())
		}
	}
	if v := root.Get("scrollbar.selections"); v.Exists() {
		s.Scrollbar.Selections = v.Bool()
	}
	if v := root.Get("scrollbar.diff"); v.Exists() {
		s.Scrollbar.Diff = v.Bool()
	}
	if v := root.Get("relative_line_numbers"); v.Exists() {
		s.RelativeLineNumbers = v.Bool()
	}
	if v := root.Get("show_whitespace"); v.Exists() {
		switch v.String() {
		case "none":
			s.ShowWhitespace = WhitespaceNone
		case "selection":
			s.ShowWhitespace = WhitespaceSelection
		case "all":
			s.ShowWhitespace = WhitespaceAll
		default:
			return s, fmt.Errorf("settings: unknown show_whitespace %q", v.String())
		}
	}
	if v := root.Get("tab_size"); v.Exists() {
		if v.Int() < 1 {
			return s, fmt.Errorf("settings: tab_size must be positive, got %d", v.Int())
		}
		s.TabSize = int(v.Int())
	}
	if v := root.Get("soft_wrap"); v.Exists() {
		switch v.String() {
		case "none":
			s.SoftWrap = WrapNone
		case "editor_width":
			s.SoftWrap = WrapEditorWidth
		case "column":
			s.SoftWrap = WrapColumn
		default:
			return s, fmt.Errorf("settings: unknown soft_wrap %q", v.String())
		}
	}
	if v := root.Get("wrap_column"); v.Exists() {
		s.WrapColumn = uint32(v.Uint())
	}
	if v := root.Get("show_gutter"); v.Exists() {
		s.ShowGutter = v.Bool()
	}
	if v := root.Get("min_line_number_digits"); v.Exists() {
		s.MinLineNumberDigits = int(v.Int())
	}
	if v := root.Get("corner_radius_factor"); v.Exists() {
		s.CornerRadiusFactor = v.Float()
	}
	if v := root.Get("scroll_beyond_last_row"); v.Exists() {
		s.ScrollBeyondLastRow = v.Float()
	}
	if v := root.Get("wrap_guides"); v.IsArray() {
		for _, g := range v.Array() {
			s.WrapGuides = append(s.WrapGuides, uint32(g.Uint()))
		}
	}
	return s, nil
}

// Set updates one key in a settings document, returning the new
// document. The path uses sjson syntax, e.g. "scrollbar.show".
func Set(doc []byte, path string, value any) ([]byte, error) {
	out, err := sjson.SetBytes(doc, path, value)
	if err != nil {
		return nil, fmt.Errorf("settings: set %s: %w", path, err)
	}
	return out, nil
}
