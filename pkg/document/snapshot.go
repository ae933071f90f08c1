package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/errors"
)

// Snapshot is the computed geometry of a laid-out tree.
type Snapshot struct {
	// ID identifies a stored snapshot; empty until stored.
	ID       string     `json:"id,omitempty"`
	Viewport box.Size   `json:"viewport"`
	Nodes    []Geometry `json:"nodes"`
}

// Geometry is the computed box of one node. Nodes appear in pre-order, so a
// parent always precedes its children.
type Geometry struct {
	ID       string         `json:"id"`
	Kind     box.Kind       `json:"kind"`
	Parent   string         `json:"parent,omitempty"`
	Depth    int            `json:"depth"`
	Position box.Position   `json:"position"`
	Size     box.Size       `json:"size"`
	Natural  box.Size       `json:"natural"`
	Padding  box.Insets     `json:"padding,omitzero"`
	Font     *box.Font      `json:"font,omitempty"`
	Text     string         `json:"text,omitempty"`
	Lines    []box.TextLine `json:"lines,omitempty"`

	// Clips is set when overflow is not visible; children are drawn
	// clipped to the node's box.
	Clips bool `json:"clips,omitempty"`
	// Scrollbar is present for nodes that overflow or have been scrolled.
	Scrollbar *box.ScrollbarState `json:"scrollbar,omitempty"`

	Paint Paint `json:"paint"`
}

// Paint is the subset of styles that affects drawing but not layout.
type Paint struct {
	Background  string  `json:"background,omitempty"`
	Color       string  `json:"color,omitempty"`
	Border      string  `json:"border,omitempty"`
	BorderWidth float64 `json:"border_width,omitempty"`
}

// CaptureOption configures [Capture].
type CaptureOption func(*capturer)

type capturer struct {
	padding func(*box.Node) box.Insets
}

// WithPadding records the resolved padding of every node, which renderers
// need to place text lines. Pass the engine's Padding method:
//
//	document.Capture(root, vp, document.WithPadding(func(n *box.Node) box.Insets {
//	    return engine.Padding(n, vp)
//	}))
func WithPadding(fn func(*box.Node) box.Insets) CaptureOption {
	return func(c *capturer) { c.padding = fn }
}

// Capture records the geometry of every node under root.
func Capture(root *box.Node, viewport box.Size, opts ...CaptureOption) *Snapshot {
	var c capturer
	for _, opt := range opts {
		opt(&c)
	}
	s := &Snapshot{Viewport: viewport}
	c.capture(s, root, "", 0)
	return s
}

func (c *capturer) capture(s *Snapshot, n *box.Node, parent string, depth int) {
	pos, size := n.Bounds()
	g := Geometry{
		ID:       n.ID,
		Kind:     n.Kind,
		Parent:   parent,
		Depth:    depth,
		Position: pos,
		Size:     size,
		Natural:  n.NaturalSize(),
		Clips:    n.Styles.Overflow != box.OverflowVisible,
		Paint: Paint{
			Background:  n.Styles.BackgroundColor,
			Color:       n.Styles.TextColor,
			Border:      n.Styles.BorderColor,
			BorderWidth: n.Styles.BorderWidth,
		},
	}
	if c.padding != nil {
		g.Padding = c.padding(n)
	}
	if n.Kind == box.Text {
		f := n.Font()
		g.Font = &f
		g.Text = n.Text
		g.Lines = n.Lines()
	}
	if sb := n.Scrollbar(); sb.Overflowing() || sb.CurrentScrollPosition != (box.Ratios{}) {
		state := *sb
		g.Scrollbar = &state
	}
	s.Nodes = append(s.Nodes, g)

	for _, child := range n.Children() {
		c.capture(s, child, n.ID, depth+1)
	}
}

// Find returns the geometry recorded for id.
func (s *Snapshot) Find(id string) (Geometry, bool) {
	for _, g := range s.Nodes {
		if g.ID == id {
			return g, true
		}
	}
	return Geometry{}, false
}

// Bounds returns the smallest box containing every node.
func (s *Snapshot) Bounds() (box.Position, box.Size) {
	if len(s.Nodes) == 0 {
		return box.Position{}, box.Size{}
	}
	first := s.Nodes[0]
	minX, minY := first.Position.X, first.Position.Y
	maxX, maxY := minX+first.Size.Width, minY+first.Size.Height
	for _, g := range s.Nodes[1:] {
		minX = min(minX, g.Position.X)
		minY = min(minY, g.Position.Y)
		maxX = max(maxX, g.Position.X+g.Size.Width)
		maxY = max(maxY, g.Position.Y+g.Size.Height)
	}
	return box.Position{X: minX, Y: minY}, box.Size{Width: maxX - minX, Height: maxY - minY}
}

// Apply copies the scroll positions recorded in s onto the nodes of root
// with matching IDs and returns how many nodes were updated. Geometry is
// not copied; lay the tree out again to apply the positions.
func (s *Snapshot) Apply(root *box.Node) int {
	positions := make(map[string]box.Ratios)
	for _, g := range s.Nodes {
		if g.Scrollbar != nil {
			positions[g.ID] = g.Scrollbar.CurrentScrollPosition
		}
	}

	applied := 0
	root.Walk(func(n *box.Node) bool {
		if pos, ok := positions[n.ID]; ok {
			sb := n.Scrollbar()
			sb.ScrollTo(box.Horizontal, pos.X)
			sb.ScrollTo(box.Vertical, pos.Y)
			applied++
		}
		return true
	})
	return applied
}

// Marshal encodes s as JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// WriteSnapshot encodes s as indented JSON.
func WriteSnapshot(s *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a JSON snapshot from r.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return &s, nil
}

// UnmarshalSnapshot decodes a snapshot from JSON bytes.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	return &s, nil
}
