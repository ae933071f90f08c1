package sink

import (
	"bytes"

	"github.com/matzehuels/boxflow/pkg/document"
)

// RenderJSON writes the snapshot as indented JSON, the same form the HTTP
// API returns and [document.ReadSnapshot] reads.
func RenderJSON(s *document.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := document.WriteSnapshot(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
