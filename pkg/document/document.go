package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/errors"
)

// Document is a box tree with the viewport it is meant for.
type Document struct {
	Viewport     box.Size `json:"viewport" toml:"viewport"`
	RootFontSize float64  `json:"root_font_size,omitempty" toml:"root_font_size,omitempty"`
	Root         *Node    `json:"root" toml:"root"`

	dir string
}

// Dir returns the directory the document was imported from, or "".
func (d *Document) Dir() string { return d.dir }

// Node is the document form of a [box.Node].
type Node struct {
	ID       string     `json:"id,omitempty" toml:"id,omitempty"`
	Kind     box.Kind   `json:"kind" toml:"kind"`
	Text     string     `json:"text,omitempty" toml:"text,omitempty"`
	Image    string     `json:"image,omitempty" toml:"image,omitempty"`
	Styles   box.Styles `json:"styles" toml:"styles"`
	Children []*Node    `json:"children,omitempty" toml:"children,omitempty"`
}

// Loader reads the content of an image path referenced by a document.
type Loader func(path string) ([]byte, error)

// DirLoader loads image paths relative to dir. Paths are validated with
// [errors.ValidatePath] so a document cannot reach outside dir.
func DirLoader(dir string) Loader {
	return func(path string) ([]byte, error) {
		if err := errors.ValidatePath(path); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(path)))
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s not found", path)
		}
		return data, err
	}
}

// BuildOptions configures [Document.Build].
type BuildOptions struct {
	// Loader resolves image paths. Defaults to a [DirLoader] for imported
	// documents; otherwise image nodes are left empty.
	Loader Loader
	// NewID generates IDs for nodes that have none. Defaults to UUIDs.
	NewID func() string
}

// Validate checks the viewport, node IDs, styles and the shape of the tree.
// Missing IDs are allowed; Build assigns them.
func (d *Document) Validate() error {
	if d.Root == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no root")
	}
	if err := errors.ValidateViewport(d.Viewport.Width, d.Viewport.Height); err != nil {
		return err
	}
	if d.RootFontSize < 0 {
		return errors.New(errors.ErrCodeInvalidDocument, "root_font_size must not be negative")
	}

	seen := make(map[string]bool)
	return d.Root.validate("root", seen)
}

func (n *Node) validate(path string, seen map[string]bool) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidDocument, "%s: null node", path)
	}
	if n.ID != "" {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: duplicate id %q", path, n.ID)
		}
		seen[n.ID] = true
	}

	switch n.Kind {
	case box.Text, box.Image:
		if len(n.Children) > 0 {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: %s node cannot have children", path, n.Kind)
		}
	case box.Button:
		if len(n.Children) != 1 {
			return errors.New(errors.ErrCodeInvalidDocument, "%s: button needs exactly one child, has %d", path, len(n.Children))
		}
	}
	if n.Kind != box.Text && n.Text != "" {
		return errors.New(errors.ErrCodeInvalidDocument, "%s: text set on %s node", path, n.Kind)
	}
	if n.Kind != box.Image && n.Image != "" {
		return errors.New(errors.ErrCodeInvalidDocument, "%s: image set on %s node", path, n.Kind)
	}

	if err := validateStyles(n.Styles); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for i, c := range n.Children {
		if err := c.validate(fmt.Sprintf("%s.children[%d]", path, i), seen); err != nil {
			return err
		}
	}
	return nil
}

func validateStyles(s box.Styles) error {
	for _, c := range []string{s.BackgroundColor, s.TextColor, s.BorderColor} {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if err := box.ValidateFontWeight(s.FontWeight); err != nil {
		return err
	}
	if s.FlexShrink < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "flex_shrink must not be negative")
	}
	if s.BorderWidth < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "border_width must not be negative")
	}
	if s.Spacing.X < 0 || s.Spacing.Y < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "spacing must not be negative")
	}
	return nil
}

// Build validates d and converts it into a box tree.
func (d *Document) Build(opts BuildOptions) (*box.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.Loader == nil && d.dir != "" {
		opts.Loader = DirLoader(d.dir)
	}
	return d.Root.build(opts)
}

func (n *Node) build(opts BuildOptions) (*box.Node, error) {
	id := n.ID
	if id == "" {
		id = opts.NewID()
	}

	out := box.New(id, n.Kind)
	out.Styles = n.Styles
	out.Text = n.Text

	if n.Image != "" && opts.Loader != nil {
		data, err := opts.Loader(n.Image)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		out.Image = data
	}

	for _, c := range n.Children {
		child, err := c.build(opts)
		if err != nil {
			return nil, err
		}
		out.AddChild(child)
	}
	return out, nil
}

// FromTree converts a box tree back into document form. Image bytes have
// no path and are dropped.
func FromTree(root *box.Node, viewport box.Size, rootFontSize float64) *Document {
	return &Document{
		Viewport:     viewport,
		RootFontSize: rootFontSize,
		Root:         fromNode(root),
	}
}

func fromNode(n *box.Node) *Node {
	out := &Node{ID: n.ID, Kind: n.Kind, Text: n.Text, Styles: n.Styles}
	for _, c := range n.Children() {
		out.Children = append(out.Children, fromNode(c))
	}
	return out
}

// Count returns the number of nodes in the document.
func (d *Document) Count() int {
	if d.Root == nil {
		return 0
	}
	return d.Root.count()
}

func (n *Node) count() int {
	total := 1
	for _, c := range n.Children {
		total += c.count()
	}
	return total
}
