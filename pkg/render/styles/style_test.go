package styles

import (
	"math"
	"testing"

	"github.com/matzehuels/arbor/pkg/hierarchy"
)

func TestNodeStyleByKind(t *testing.T) {
	tests := []struct {
		kind      hierarchy.Kind
		fill      string
		stroke    string
		dasharray string
		rx        float64
	}{
		{hierarchy.KindRoot, "url(#main)", "", "", 10},
		{hierarchy.KindBranch, DefaultPalette.Background, DefaultPalette.Blue, "", 0},
		{hierarchy.KindLeaf, DefaultPalette.Background, DefaultPalette.Green, "2,2", 10},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := Lots{}.Node(tt.kind)
			if s.Fill != tt.fill {
				t.Errorf("Fill = %q, want %q", s.Fill, tt.fill)
			}
			if s.Stroke != tt.stroke {
				t.Errorf("Stroke = %q, want %q", s.Stroke, tt.stroke)
			}
			if s.StrokeDasharray != tt.dasharray {
				t.Errorf("StrokeDasharray = %q, want %q", s.StrokeDasharray, tt.dasharray)
			}
			if s.RX != tt.rx {
				t.Errorf("RX = %v, want %v", s.RX, tt.rx)
			}
			if s.Width != 80 || s.Height != 40 {
				t.Errorf("size = %vx%v, want 80x40", s.Width, s.Height)
			}
		})
	}
}

func TestLineOffsets(t *testing.T) {
	s := Lots{}.Node(hierarchy.KindLeaf)
	got := s.LineOffsets()
	want := [3]float64{-6.208333333333334, 3.375, 12.958333333333332}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("line %d offset = %v, want %v", i, got[i], want[i])
		}
	}
	if s.TextX() != -35 {
		t.Errorf("TextX = %v, want -35", s.TextX())
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"lots", "LOTS", "paper"} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("neon"); err == nil {
		t.Error("ByName(neon) should fail")
	}
	if got := Names(); len(got) != 2 || got[0] != "lots" {
		t.Errorf("Names() = %v", got)
	}
}
