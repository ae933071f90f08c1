package box

import "slices"

// Kind is the closed set of box variants.
type Kind uint8

const (
	Container Kind = iota
	Text
	Image
	Button
)

var kindNames = []string{"container", "text", "image", "button"}

func (k Kind) String() string {
	return enumName(k, kindNames)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) (err error) {
	*k, err = parseEnum[Kind]("kind", b, kindNames)
	return err
}

// Node is a box in the layout tree. A node exclusively owns its children.
//
// Styles and content are set by whoever builds the tree. Geometry fields are
// written by the layout engine through the setter methods and read back by
// the paint step through the accessors.
type Node struct {
	ID     string
	Kind   Kind
	Styles Styles

	// Text is the content of a [Text] node.
	Text string
	// Image is the encoded content of an [Image] node.
	Image []byte

	children []*Node

	natural   Size
	requested OptionalSize
	position  Position
	size      Size
	font      Font
	lines     []TextLine
	estimated bool
	scrollbar ScrollbarState
}

// New returns a node of the given kind with default styles.
func New(id string, kind Kind) *Node {
	return &Node{ID: id, Kind: kind, scrollbar: NewScrollbarState()}
}

// NewContainer returns a container holding children.
func NewContainer(id string, styles Styles, children ...*Node) *Node {
	n := New(id, Container)
	n.Styles = styles
	n.children = children
	return n
}

// NewText returns a text leaf.
func NewText(id, content string, styles Styles) *Node {
	n := New(id, Text)
	n.Styles = styles
	n.Text = content
	return n
}

// NewImage returns an image leaf holding encoded image bytes.
func NewImage(id string, data []byte, styles Styles) *Node {
	n := New(id, Image)
	n.Styles = styles
	n.Image = data
	return n
}

// NewButton returns a pass-through wrapper around child.
func NewButton(id string, styles Styles, child *Node) *Node {
	n := New(id, Button)
	n.Styles = styles
	if child != nil {
		n.children = []*Node{child}
	}
	return n
}

// =============================================================================
// Tree
// =============================================================================

// Children returns the direct children in declaration order.
func (n *Node) Children() []*Node { return n.children }

// Editing the children of n clears its estimated flag, so allocating the
// tree again panics until it has been re-estimated.

// AddChild appends c and returns n.
func (n *Node) AddChild(c *Node) *Node {
	n.children = append(n.children, c)
	n.estimated = false
	return n
}

// InsertChild inserts c at index i, clamped to the valid range.
func (n *Node) InsertChild(i int, c *Node) {
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, c)
	n.estimated = false
}

// RemoveChild removes c and reports whether it was a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	i := slices.Index(n.children, c)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	n.estimated = false
	return true
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given ID.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// IsPassThrough reports whether n forwards its box to a single child.
func (n *Node) IsPassThrough() bool {
	return n.Kind == Button && len(n.children) == 1
}

// IsTextWrapper reports whether n is a container whose only child is text.
func (n *Node) IsTextWrapper() bool {
	return n.Kind == Container && len(n.children) == 1 && n.children[0].Kind == Text
}

// =============================================================================
// Geometry
// =============================================================================

// Position returns the allocated origin.
func (n *Node) Position() Position { return n.position }

// Size returns the allocated size.
func (n *Node) Size() Size { return n.size }

// NaturalSize returns the intrinsic size from the last estimation.
func (n *Node) NaturalSize() Size { return n.natural }

// RequestedSize returns the sizing policy converted to pixels.
func (n *Node) RequestedSize() OptionalSize { return n.requested }

// EffectiveSize returns the requested size where present, else the natural size.
func (n *Node) EffectiveSize() Size { return n.requested.Or(n.natural) }

// Font returns the resolved font from the last estimation.
func (n *Node) Font() Font { return n.font }

// Lines returns the text lines of a [Text] node after allocation.
func (n *Node) Lines() []TextLine { return n.lines }

// Estimated reports whether the node has been estimated since it was
// created or last invalidated.
func (n *Node) Estimated() bool { return n.estimated }

// Scrollbar returns the node's scroll state for reading and writing.
func (n *Node) Scrollbar() *ScrollbarState { return &n.scrollbar }

// Bounds returns the allocated position and size.
func (n *Node) Bounds() (Position, Size) { return n.position, n.size }

// Contains reports whether the point lies inside the allocated box.
func (n *Node) Contains(x, y float64) bool {
	return x >= n.position.X && x < n.position.X+n.size.Width &&
		y >= n.position.Y && y < n.position.Y+n.size.Height
}

// SetNaturalSize is called by the engine during estimation.
func (n *Node) SetNaturalSize(s Size) { n.natural = s }

// SetRequestedSize is called by the engine during estimation and allocation.
func (n *Node) SetRequestedSize(o OptionalSize) { n.requested = o }

// SetFont is called by the engine during estimation.
func (n *Node) SetFont(f Font) { n.font = f }

// SetLines is called by the engine when a text node is allocated.
func (n *Node) SetLines(lines []TextLine) { n.lines = lines }

// SetBounds is called by the engine during allocation.
func (n *Node) SetBounds(p Position, s Size) {
	n.position = p
	n.size = Size{Width: max(0, s.Width), Height: max(0, s.Height)}
}

// MarkEstimated records that the node's natural and requested sizes are current.
func (n *Node) MarkEstimated() { n.estimated = true }

// Invalidate clears the estimated flag on n and its descendants so the next
// allocation demands a fresh estimation. Call it after editing Styles.
func (n *Node) Invalidate() {
	n.Walk(func(c *Node) bool {
		c.estimated = false
		return true
	})
}
