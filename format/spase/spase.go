// Package spase provides the format plugin for SPASE (Space Physics Archive
// Search and Extract) resource descriptions.
package spase

import (
	"bytes"

	"github.com/lehigh-university-libraries/soso/format"
)

// Version documents the SPASE data model this implementation targets.
const Version = "2.6.1"

// Format implements the SPASE format.
type Format struct{}

var _ format.Format = (*Format)(nil)

// Dialect returns the dialect this plugin handles.
func (f *Format) Dialect() format.Dialect {
	return format.DialectSPASE
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "SPASE (Space Physics Archive Search and Extract v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like a SPASE document.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	patterns := [][]byte{
		[]byte("spase-group.org/data/schema"),
		[]byte("<Spase"),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

// Open parses the SPASE record at path.
func (f *Format) Open(path string, opts *format.Options) (format.Strategy, error) {
	doc, err := format.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return newStrategy(path, doc, opts), nil
}

func init() {
	format.Register(&Format{})
}
