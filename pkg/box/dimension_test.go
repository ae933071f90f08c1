package box

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxflow/pkg/errors"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		input   string
		want    Dimension
		wantErr bool
	}{
		{"10px", Px(10), false},
		{"10", Px(10), false},
		{" 12.5 PX ", Px(12.5), false},
		{"50%", Pct(50), false},
		{"2rem", Rem(2), false},
		{"100vw", Vw(100), false},
		{"33vh", Vh(33), false},
		{"-4px", Px(-4), false},

		{"", Dimension{}, true},
		{"px", Dimension{}, true},
		{"10em", Dimension{}, true},
		{"auto", Dimension{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDimension(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDimension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidDimension) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidDimension)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseDimension(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDimensionString(t *testing.T) {
	tests := []struct {
		d    Dimension
		want string
	}{
		{Px(10), "10px"},
		{Pct(12.5), "12.5%"},
		{Rem(1), "1rem"},
		{Vw(0), "0vw"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDimensionJSON(t *testing.T) {
	var v struct {
		A Dimension  `json:"a"`
		B *Dimension `json:"b"`
		C *Dimension `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a": "50%", "b": 24}`), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if v.A != Pct(50) {
		t.Errorf("a = %v, want 50%%", v.A)
	}
	if v.B == nil || *v.B != Px(24) {
		t.Errorf("b = %v, want 24px", v.B)
	}
	if v.C != nil {
		t.Errorf("c = %v, want nil", v.C)
	}

	if err := json.Unmarshal([]byte(`{"a": "huge"}`), &v); err == nil {
		t.Error("expected error for invalid dimension")
	}
}

func TestDimensionTOML(t *testing.T) {
	var v struct {
		A Dimension `toml:"a"`
		B Dimension `toml:"b"`
		C Dimension `toml:"c"`
	}
	doc := `
a = "2rem"
b = 12
c = 7.5
`
	if _, err := toml.Decode(doc, &v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.A != Rem(2) || v.B != Px(12) || v.C != Px(7.5) {
		t.Errorf("got %v %v %v", v.A, v.B, v.C)
	}
}
