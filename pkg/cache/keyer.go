package cache

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs give equal keys.
type Keyer interface {
	// LayoutKey returns the key of a layout snapshot for a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact for a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the document that change a layout.
type LayoutKeyOpts struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	RootFontSize float64 `json:"root_font_size,omitempty"`
	// Measurer names the text measurer; cell and font metrics differ.
	Measurer string `json:"measurer,omitempty"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Scale          float64 `json:"scale,omitempty"`
	EmbedFonts     bool    `json:"embed_fonts,omitempty"`
	Style          string  `json:"style,omitempty"`
	Detailed       bool    `json:"detailed,omitempty"`
	HideScrollbars bool    `json:"hide_scrollbars,omitempty"`
}

// DefaultKeyer hashes the key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
