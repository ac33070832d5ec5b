package render

import "testing"

func TestLerpColor(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		t       float64
		want    string
	}{
		{"start", "#000000", "#ffffff", 0, "#000000"},
		{"end", "#000000", "#ffffff", 1, "#ffffff"},
		{"middle", "#000000", "#fefefe", 0.5, "#7f7f7f"},
		{"clamped low", "#102030", "#ffffff", -1, "#102030"},
		{"clamped high", "#102030", "#ffffff", 2, "#ffffff"},
		{"named colors", "white", "black", 0, "#ffffff"},
		{"short hex", "#fff", "#000", 0, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LerpColor(tt.a, tt.b, tt.t); got != tt.want {
				t.Errorf("LerpColor(%q, %q, %v) = %q, want %q", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestColorScaleAt(t *testing.T) {
	cs := ColorScale{Low: "#0000ff", Mid: "#ffffff", High: "#ff0000", Min: -2, Max: 2}

	if got := cs.At(-2); got != "#0000ff" {
		t.Errorf("At(min) = %q, want low color", got)
	}
	if got := cs.At(2); got != "#ff0000" {
		t.Errorf("At(max) = %q, want high color", got)
	}
	if got := cs.At(0); got != "#ffffff" {
		t.Errorf("At(mid) = %q, want mid color", got)
	}

	// Out-of-range values clamp.
	if got := cs.At(-10); got != "#0000ff" {
		t.Errorf("At(-10) = %q, want clamped low", got)
	}
}

func TestColorScaleDegenerate(t *testing.T) {
	cs := ColorScale{Low: "#0000ff", Mid: "#ffffff", High: "#ff0000", Min: 1, Max: 1}
	if got := cs.At(5); got != "#ffffff" {
		t.Errorf("degenerate scale At() = %q, want mid", got)
	}
}
