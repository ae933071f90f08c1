package render

import (
	"context"
	"math"
	"testing"

	"github.com/matzehuels/boxflow/pkg/errors"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		alpha   float64
		wantErr bool
	}{
		{in: "", want: "#000000", alpha: 0},
		{in: "#336699", want: "#336699", alpha: 1},
		{in: "#369", want: "#336699", alpha: 1},
		{in: "#36f8", want: "#3366ff", alpha: 0x88 / 255.0},
		{in: "#33669980", want: "#336699", alpha: 0x80 / 255.0},
		{in: "#FFF", want: "#ffffff", alpha: 1},
		{in: "336699", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#ggg", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidStyle) {
					t.Fatalf("ParseColor(%q) error = %v, want INVALID_STYLE", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error: %v", tt.in, err)
			}
			if got.Hex() != tt.want {
				t.Errorf("hex = %s, want %s", got.Hex(), tt.want)
			}
			if math.Abs(got.Alpha-tt.alpha) > 1e-9 {
				t.Errorf("alpha = %v, want %v", got.Alpha, tt.alpha)
			}
		})
	}
}

func TestMustColor(t *testing.T) {
	if got := MustColor("#bad", Black); got.Hex() != "#bbaadd" {
		t.Errorf("MustColor(#bad) = %s", got)
	}
	if got := MustColor("nope", Black); got != Black {
		t.Errorf("invalid color should fall back, got %s", got)
	}
	if got := MustColor("", TrackColor); got != TrackColor {
		t.Errorf("empty color should fall back, got %s", got)
	}
}

func TestColorSVG(t *testing.T) {
	tests := []struct {
		c             Color
		paint, opaque string
	}{
		{Transparent, "none", "0"},
		{Black, "#000000", "1"},
		{MustColor("#ff000080", Black), "#ff0000", "0.5019607843137255"},
	}
	for _, tt := range tests {
		paint, opacity := tt.c.SVG()
		if paint != tt.paint || opacity != tt.opaque {
			t.Errorf("%s.SVG() = %s %s, want %s %s", tt.c, paint, opacity, tt.paint, tt.opaque)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := MustColor("#336699", Black).String(); got != "#336699" {
		t.Errorf("String() = %s", got)
	}
	if got := MustColor("#33669980", Black).String(); got != "#33669980" {
		t.Errorf("String() = %s", got)
	}
}

func TestColorNRGBA(t *testing.T) {
	got := MustColor("#33669980", Black).NRGBA()
	if got.R != 0x33 || got.G != 0x66 || got.B != 0x99 || got.A != 0x80 {
		t.Errorf("NRGBA() = %+v", got)
	}
}

func TestDepthColor(t *testing.T) {
	seen := make(map[string]bool)
	for d := range 8 {
		c := DepthColor(d)
		if c.Alpha != 1 {
			t.Errorf("DepthColor(%d) alpha = %v", d, c.Alpha)
		}
		if seen[c.Hex()] {
			t.Errorf("DepthColor(%d) = %s repeats an earlier depth", d, c.Hex())
		}
		seen[c.Hex()] = true
	}
	if DepthColor(3) != DepthColor(3) {
		t.Error("DepthColor is not deterministic")
	}
}

func TestToPDFWithoutConverter(t *testing.T) {
	if HasConverter() {
		t.Skip("rsvg-convert is installed")
	}
	_, err := ToPDF(context.Background(), []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want UNSUPPORTED", err)
	}
}
