package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf infers the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document extension %q (want .json or .toml)", filepath.Ext(path))
	}
}

// ReadJSON decodes a JSON document from r. Unknown fields are rejected so
// that misspelled style properties do not pass silently.
func ReadJSON(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}
	return &d, nil
}

// ReadTOML decodes a TOML document from r. Unknown keys are rejected.
func ReadTOML(r io.Reader) (*Document, error) {
	var d Document
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown key %q", undecoded[0].String())
	}
	return &d, nil
}

// Read decodes a document in format f.
func Read(r io.Reader, f Format) (*Document, error) {
	switch f {
	case FormatJSON:
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
}

// Import reads the document at path, choosing the decoder by extension.
// Image paths in the returned document resolve relative to the document's
// directory; see [Document.Dir].
func Import(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.dir = filepath.Dir(path)
	return d, nil
}

// WriteJSON encodes d as indented JSON.
func WriteJSON(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes d as TOML.
func WriteTOML(d *Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Export writes d to path in the format its extension names.
func Export(d *Document, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if format == FormatTOML {
		return WriteTOML(d, f)
	}
	return WriteJSON(d, f)
}

// Hash returns a stable SHA-256 digest of the document's JSON form. Two
// documents with the same tree, styles and viewport hash alike regardless of
// the format they were read from.
func (d *Document) Hash() string {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(d)
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
