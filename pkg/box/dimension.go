package box

import (
	"strconv"
	"strings"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// Unit is the unit of a [Dimension].
type Unit uint8

const (
	UnitPx Unit = iota
	UnitPercent
	UnitVw
	UnitVh
	UnitRem
)

var unitSuffixes = [...]string{
	UnitPx:      "px",
	UnitPercent: "%",
	UnitVw:      "vw",
	UnitVh:      "vh",
	UnitRem:     "rem",
}

// String returns the CSS suffix of the unit.
func (u Unit) String() string {
	if int(u) < len(unitSuffixes) {
		return unitSuffixes[u]
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// Dimension is a length with a unit.
type Dimension struct {
	Value float64
	Unit  Unit
}

// Px returns an absolute pixel dimension.
func Px(v float64) Dimension { return Dimension{Value: v, Unit: UnitPx} }

// Pct returns a percentage dimension.
func Pct(v float64) Dimension { return Dimension{Value: v, Unit: UnitPercent} }

// Vw returns a dimension relative to the viewport width.
func Vw(v float64) Dimension { return Dimension{Value: v, Unit: UnitVw} }

// Vh returns a dimension relative to the viewport height.
func Vh(v float64) Dimension { return Dimension{Value: v, Unit: UnitVh} }

// Rem returns a dimension relative to the root font size.
func Rem(v float64) Dimension { return Dimension{Value: v, Unit: UnitRem} }

// Ptr returns a pointer to a copy of d. Handy for sizing policies.
func (d Dimension) Ptr() *Dimension { return &d }

// IsPercent reports whether d is a percentage.
func (d Dimension) IsPercent() bool { return d.Unit == UnitPercent }

// String formats d the way [ParseDimension] reads it.
func (d Dimension) String() string {
	return strconv.FormatFloat(d.Value, 'f', -1, 64) + d.Unit.String()
}

// MarshalText implements [encoding.TextMarshaler].
func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Dimension) UnmarshalText(text []byte) error {
	v, err := ParseDimension(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// UnmarshalJSON accepts a JSON string or a bare number (pixels).
func (d *Dimension) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDimension, err, "invalid dimension %s", data)
		}
		return d.UnmarshalText([]byte(s))
	}
	return d.UnmarshalText(data)
}

// UnmarshalTOML accepts a TOML string, integer or float (pixels).
func (d *Dimension) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case int64:
		*d = Px(float64(v))
	case float64:
		*d = Px(v)
	default:
		return errors.New(errors.ErrCodeInvalidDimension, "invalid dimension %v", v)
	}
	return nil
}

// ParseDimension parses a CSS-like length such as "10px", "50%", "2rem",
// "100vw" or a bare number (pixels).
func ParseDimension(s string) (Dimension, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Dimension{}, errors.New(errors.ErrCodeInvalidDimension, "empty dimension")
	}

	unit := UnitPx
	num := s
	// Longest suffix first so "rem" is not mistaken for a bare number.
	for _, u := range []Unit{UnitRem, UnitPx, UnitVw, UnitVh, UnitPercent} {
		if suffix := u.String(); strings.HasSuffix(s, suffix) {
			unit = u
			num = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Dimension{}, errors.Wrap(errors.ErrCodeInvalidDimension, err, "invalid dimension %q", s)
	}
	return Dimension{Value: v, Unit: unit}, nil
}
