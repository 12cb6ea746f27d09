package fonts

import (
	"testing"

	"github.com/matzehuels/wrapped/pkg/render/layout"
)

func TestNewFace(t *testing.T) {
	for _, f := range []layout.Font{layout.TitleFont, layout.ValueFont, {Size: 72, Bold: true}} {
		face, err := NewFace(f)
		if err != nil {
			t.Fatalf("NewFace(%s) error: %v", f, err)
		}
		if face == nil {
			t.Fatalf("NewFace(%s) returned nil", f)
		}
	}
}

func TestMeasurer(t *testing.T) {
	m, err := NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer() error: %v", err)
	}

	if got := m.Measure("", layout.ValueFont); got != 0 {
		t.Errorf("Measure(empty) = %v, want 0", got)
	}

	short := m.Measure("abc", layout.ValueFont)
	long := m.Measure("abcdef", layout.ValueFont)
	if short <= 0 || long <= short {
		t.Errorf("widths should grow with text: abc=%v abcdef=%v", short, long)
	}

	small := m.Measure("Shingeki no Kyojin", layout.ValueFont)
	large := m.Measure("Shingeki no Kyojin", layout.TitleFont)
	if large <= small {
		t.Errorf("larger font should measure wider: 30px=%v 34px=%v", small, large)
	}

	// Cached faces return stable measurements.
	if again := m.Measure("abc", layout.ValueFont); again != short {
		t.Errorf("Measure not stable: %v then %v", short, again)
	}
}

func TestMeasurerWrapsWithinWidth(t *testing.T) {
	m, err := NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer() error: %v", err)
	}
	c := layout.DefaultConfig()
	text := "Sousou no Frieren — 100 and a very long trailing explanation that cannot possibly fit on a single line of the canvas"
	for _, line := range layout.Wrap(text, c.ValueWidth(), c.ValueFont, m) {
		if w := m.Measure(line, c.ValueFont); w > c.ValueWidth() {
			t.Errorf("line %q is %v wide, max %v", line, w, c.ValueWidth())
		}
	}
}

func TestZeroMeasurer(t *testing.T) {
	var m Measurer
	if got := m.Measure("abc", layout.ValueFont); got <= 0 {
		t.Errorf("zero Measurer Measure(abc) = %v, want > 0", got)
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Top Genres:", "Top Genres:"},
		{"keeps inner spacing when nothing is dropped", "1.  Frieren", "1.  Frieren"},
		{"drops leading icon", "🎬 Anime Completed:", "Anime Completed:"},
		{"drops icon between words", "Manga 📚 Read", "Manga Read"},
		{"latin accents kept", "Pokémon", "Pokémon"},
		{"only icons", "🎬📚", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Printable(layout.TitleFont, tt.in); got != tt.want {
				t.Errorf("Printable(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeasureIgnoresIcons(t *testing.T) {
	m, err := NewMeasurer()
	if err != nil {
		t.Fatalf("NewMeasurer() error: %v", err)
	}
	with := m.Measure("🎬 Anime Completed:", layout.TitleFont)
	without := m.Measure("Anime Completed:", layout.TitleFont)
	if with != without {
		t.Errorf("Measure with icon = %v, without = %v", with, without)
	}
}
