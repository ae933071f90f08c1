package box

import (
	"strconv"
	"strings"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// Edges are the four sides of a margin or padding.
type Edges struct {
	Top    Dimension
	Right  Dimension
	Bottom Dimension
	Left   Dimension
}

// Uniform returns edges with the same dimension on every side.
func Uniform(d Dimension) Edges {
	return Edges{Top: d, Right: d, Bottom: d, Left: d}
}

// Symmetric returns edges with vertical v and horizontal h.
func Symmetric(v, h Dimension) Edges {
	return Edges{Top: v, Right: h, Bottom: v, Left: h}
}

// ParseEdges parses CSS shorthand with one to four lengths:
// "4px", "4px 8px", "4px 8px 2px" or "1 2 3 4" (top right bottom left).
func ParseEdges(s string) (Edges, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return Edges{}, errors.New(errors.ErrCodeInvalidStyle, "invalid edge shorthand %q", s)
	}

	dims := make([]Dimension, len(fields))
	for i, f := range fields {
		d, err := ParseDimension(f)
		if err != nil {
			return Edges{}, err
		}
		dims[i] = d
	}

	switch len(dims) {
	case 1:
		return Uniform(dims[0]), nil
	case 2:
		return Symmetric(dims[0], dims[1]), nil
	case 3:
		return Edges{Top: dims[0], Right: dims[1], Bottom: dims[2], Left: dims[1]}, nil
	default:
		return Edges{Top: dims[0], Right: dims[1], Bottom: dims[2], Left: dims[3]}, nil
	}
}

// String formats e as four-value shorthand.
func (e Edges) String() string {
	return strings.Join([]string{e.Top.String(), e.Right.String(), e.Bottom.String(), e.Left.String()}, " ")
}

// MarshalText implements [encoding.TextMarshaler].
func (e Edges) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (e *Edges) UnmarshalText(text []byte) error {
	v, err := ParseEdges(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// UnmarshalJSON accepts shorthand strings or a bare number (pixels).
func (e *Edges) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid edges %s", data)
		}
		return e.UnmarshalText([]byte(s))
	}
	return e.UnmarshalText(data)
}

// UnmarshalTOML accepts shorthand strings or a bare number (pixels).
func (e *Edges) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		return e.UnmarshalText([]byte(v))
	case int64:
		*e = Uniform(Px(float64(v)))
	case float64:
		*e = Uniform(Px(v))
	default:
		return errors.New(errors.ErrCodeInvalidStyle, "invalid edges %v", v)
	}
	return nil
}
