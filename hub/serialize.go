package hub

import (
	"bytes"
	"fmt"

	"github.com/segmentio/encoding/json"

	"github.com/lehigh-university-libraries/soso/value"
)

// Marshal serializes a graph as UTF-8 JSON-LD. Keys are sorted, so the
// identity members come first. URLs are written without HTML escaping.
func Marshal(graph value.Map, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(graph); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a serialized graph.
func Unmarshal(data []byte, graph *value.Map) error {
	if err := json.Unmarshal(data, graph); err != nil {
		return fmt.Errorf("parsing graph: %w", err)
	}
	return nil
}
