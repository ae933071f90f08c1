package document

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/errors"
)

const sampleJSON = `{
  "viewport": {"width": 800, "height": 600},
  "root_font_size": 10,
  "root": {
    "id": "page",
    "styles": {"flex_direction": "row", "padding": "8px 16px", "overflow": "auto"},
    "children": [
      {"id": "title", "kind": "text", "text": "Hello", "styles": {"font_size": "2rem", "text_color": "#333"}},
      {"kind": "container", "styles": {"sizing": {"width": "25%", "max_width": 300}}}
    ]
  }
}`

const sampleTOML = `
root_font_size = 10

[viewport]
width = 800
height = 600

[root]
id = "page"

[root.styles]
flex_direction = "row"
padding = "8px 16px"
overflow = "auto"

[[root.children]]
id = "title"
kind = "text"
text = "Hello"
styles = { font_size = "2rem", text_color = "#333" }

[[root.children]]
kind = "container"
styles = { sizing = { width = "25%", max_width = 300 } }
`

func sequentialIDs() func() string {
	i := 0
	return func() string {
		i++
		return fmt.Sprintf("gen-%d", i)
	}
}

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	if d.Viewport != (box.Size{Width: 800, Height: 600}) || d.RootFontSize != 10 {
		t.Errorf("header = %v %v", d.Viewport, d.RootFontSize)
	}
	root := d.Root
	if root.Kind != box.Container || root.Styles.FlexDirection != box.Row || root.Styles.Overflow != box.OverflowAuto {
		t.Errorf("root styles = %+v", root.Styles)
	}
	if want := box.Symmetric(box.Px(8), box.Px(16)); root.Styles.Padding != want {
		t.Errorf("padding = %v, want %v", root.Styles.Padding, want)
	}
	if got := d.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}

	title := root.Children[0]
	if title.Kind != box.Text || title.Text != "Hello" || *title.Styles.FontSize != box.Rem(2) {
		t.Errorf("title = %+v", title)
	}
	sizing := root.Children[1].Styles.Sizing
	if *sizing.Width != box.Pct(25) || *sizing.MaxWidth != box.Px(300) {
		t.Errorf("sizing = %v %v", sizing.Width, sizing.MaxWidth)
	}
}

func TestReadTOMLMatchesJSON(t *testing.T) {
	fromJSON, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	fromTOML, err := ReadTOML(strings.NewReader(sampleTOML))
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(fromJSON, fromTOML, cmpopts.IgnoreUnexported(Document{})); diff != "" {
		t.Errorf("TOML and JSON decode differently (-json +toml):\n%s", diff)
	}
	if fromJSON.Hash() != fromTOML.Hash() {
		t.Error("equal documents should hash alike")
	}
}

func TestReadRejectsUnknownFields(t *testing.T) {
	tests := map[string]struct {
		format Format
		input  string
	}{
		"json": {FormatJSON, `{"viewport": {"width": 1, "height": 1}, "root": {"stlyes": {}}}`},
		"toml": {FormatTOML, "[viewport]\nwidth = 1\nheight = 1\n[root]\nkidn = \"text\"\n"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("err = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestReadBadDimension(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"viewport": {"width": 1, "height": 1}, "root": {"styles": {"sizing": {"width": "12parsecs"}}}}`))
	if err == nil {
		t.Fatal("expected an error for an unknown unit")
	}
}

func TestValidate(t *testing.T) {
	vp := box.Size{Width: 100, Height: 100}
	text := func(id string) *Node { return &Node{ID: id, Kind: box.Text, Text: "x"} }

	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{"no root", Document{Viewport: vp}, errors.ErrCodeInvalidDocument},
		{"zero viewport", Document{Root: &Node{}}, errors.ErrCodeInvalidViewport},
		{"bad id", Document{Viewport: vp, Root: &Node{ID: "has space"}}, errors.ErrCodeInvalidNodeID},
		{
			"duplicate id",
			Document{Viewport: vp, Root: &Node{ID: "a", Children: []*Node{text("b"), text("b")}}},
			errors.ErrCodeInvalidDocument,
		},
		{
			"text with children",
			Document{Viewport: vp, Root: &Node{Kind: box.Text, Children: []*Node{text("b")}}},
			errors.ErrCodeInvalidDocument,
		},
		{
			"empty button",
			Document{Viewport: vp, Root: &Node{Kind: box.Button}},
			errors.ErrCodeInvalidDocument,
		},
		{
			"image path on container",
			Document{Viewport: vp, Root: &Node{Image: "a.png"}},
			errors.ErrCodeInvalidDocument,
		},
		{
			"bad color",
			Document{Viewport: vp, Root: &Node{Styles: box.Styles{BackgroundColor: "red"}}},
			errors.ErrCodeInvalidStyle,
		},
		{
			"bad font weight",
			Document{Viewport: vp, Root: &Node{Styles: box.Styles{FontWeight: 450}}},
			errors.ErrCodeInvalidStyle,
		},
		{
			"negative shrink",
			Document{Viewport: vp, Root: &Node{Styles: box.Styles{FlexShrink: -1}}},
			errors.ErrCodeInvalidStyle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	root, err := d.Build(BuildOptions{NewID: sequentialIDs()})
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	root.Walk(func(n *box.Node) bool {
		ids = append(ids, n.ID)
		return true
	})
	if diff := cmp.Diff([]string{"page", "title", "gen-1"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if got := root.Find("title"); got == nil || got.Kind != box.Text || got.Text != "Hello" {
		t.Errorf("title node = %+v", got)
	}
}

func TestBuildAssignsUUIDs(t *testing.T) {
	d := &Document{Viewport: box.Size{Width: 1, Height: 1}, Root: &Node{Children: []*Node{{}}}}
	root, err := d.Build(BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []*box.Node{root, root.Children()[0]} {
		if err := errors.ValidateNodeID(n.ID); err != nil || len(n.ID) != 36 {
			t.Errorf("id %q is not a uuid", n.ID)
		}
	}
	if root.ID == root.Children()[0].ID {
		t.Error("generated ids collide")
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestImportResolvesImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "img", "logo.png"), 4, 2)

	doc := `{"viewport": {"width": 10, "height": 10}, "root": {"children": [{"id": "logo", "kind": "image", "image": "img/logo.png"}]}}`
	path := filepath.Join(dir, "page.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if d.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", d.Dir(), dir)
	}
	root, err := d.Build(BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Find("logo").Image) == 0 {
		t.Error("image bytes were not loaded")
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Import(filepath.Join(dir, "page.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("yaml: err = %v", err)
	}
	if _, err := Import(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing: err = %v", err)
	}

	escape := `{"viewport": {"width": 10, "height": 10}, "root": {"kind": "image", "image": "../secret.png"}}`
	path := filepath.Join(dir, "escape.json")
	if err := os.WriteFile(path, []byte(escape), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Build(BuildOptions{}); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("traversal: err = %v", err)
	}

	missing := `{"viewport": {"width": 10, "height": 10}, "root": {"kind": "image", "image": "nope.png"}}`
	if err := os.WriteFile(path, []byte(missing), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err = Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Build(BuildOptions{}); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing image: err = %v", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}

	for _, ext := range []string{".json", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			if err := Export(d, path); err != nil {
				t.Fatal(err)
			}
			back, err := Import(path)
			if err != nil {
				t.Fatal(err)
			}
			if back.Hash() != d.Hash() {
				t.Error("exported document does not hash like the original")
			}
		})
	}
}

func TestFromTree(t *testing.T) {
	root := box.NewContainer("root", box.Styles{FlexDirection: box.Row},
		box.NewText("t", "hi", box.Styles{}),
		box.NewButton("b", box.Styles{}, box.NewContainer("inner", box.Styles{})),
	)
	d := FromTree(root, box.Size{Width: 5, Height: 5}, 0)
	if err := d.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := d.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if d.Root.Children[1].Kind != box.Button || d.Root.Children[1].Children[0].ID != "inner" {
		t.Errorf("button subtree = %+v", d.Root.Children[1])
	}
}

func TestExampleDocuments(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "documents", "*.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example documents")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			d, err := Import(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := d.Validate(); err != nil {
				t.Fatalf("Validate() error: %v", err)
			}
			if _, err := d.Build(BuildOptions{NewID: sequentialIDs()}); err != nil {
				t.Fatalf("Build() error: %v", err)
			}
		})
	}
}
