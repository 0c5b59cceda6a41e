package settings

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	doc := []byte(`{
		"scrollbar": {"show": "always", "diff": false},
		"relative_line_numbers": true,
		"show_whitespace": "selection",
		"tab_size": 2,
		"soft_wrap": "column",
		"wrap_column": 100,
		"wrap_guides": [80, 100]
	}`)

	s, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if s.Scrollbar.Show != ScrollbarAlways {
		t.Errorf("Scrollbar.Show = %v, want always", s.Scrollbar.Show)
	}
	if s.Scrollbar.Diff {
		t.Error("Scrollbar.Diff = true, want false")
	}
	if !s.Scrollbar.Selections {
		t.Error("Scrollbar.Selections should keep its default")
	}
	if !s.RelativeLineNumbers {
		t.Error("RelativeLineNumbers = false, want true")
	}
	if s.ShowWhitespace != WhitespaceSelection {
		t.Errorf("ShowWhitespace = %v, want selection", s.ShowWhitespace)
	}
	if s.TabSize != 2 {
		t.Errorf("TabSize = %d, want 2", s.TabSize)
	}
	if s.SoftWrap != WrapColumn || s.WrapColumn != 100 {
		t.Errorf("SoftWrap = %v at %d, want column at 100", s.SoftWrap, s.WrapColumn)
	}
	if len(s.WrapGuides) != 2 || s.WrapGuides[0] != 80 || s.WrapGuides[1] != 100 {
		t.Errorf("WrapGuides = %v, want [80 100]", s.WrapGuides)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	s, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("Parse(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "malformed JSON", doc: `{"tab_size": `, wantErr: "invalid JSON"},
		{name: "unknown scrollbar policy", doc: `{"scrollbar": {"show": "sometimes"}}`, wantErr: "scrollbar.show"},
		{name: "unknown whitespace policy", doc: `{"show_whitespace": "most"}`, wantErr: "show_whitespace"},
		{name: "unknown wrap mode", doc: `{"soft_wrap": "window"}`, wantErr: "soft_wrap"},
		{name: "zero tab size", doc: `{"tab_size": 0}`, wantErr: "tab_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetRoundTrips(t *testing.T) {
	doc := []byte(`{"tab_size": 4}`)

	doc, err := Set(doc, "scrollbar.show", "never")
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	doc, err = Set(doc, "tab_size", 8)
	if err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	s, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Scrollbar.Show != ScrollbarNever {
		t.Errorf("Scrollbar.Show = %v, want never", s.Scrollbar.Show)
	}
	if s.TabSize != 8 {
		t.Errorf("TabSize = %d, want 8", s.TabSize)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{got: ScrollbarAuto.String(), want: "auto"},
		{got: ScrollbarNever.String(), want: "never"},
		{got: WhitespaceAll.String(), want: "all"},
		{got: WrapEditorWidth.String(), want: "editor_width"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
