// Package iso19115 provides the format plugin for ISO 19115 geographic
// metadata encoded as ISO 19139 XML.
package iso19115

import (
	"bytes"

	"github.com/lehigh-university-libraries/soso/format"
)

// Version documents the encoding this implementation targets.
const Version = "19139"

// Format implements the ISO 19115 format.
type Format struct{}

var _ format.Format = (*Format)(nil)

// Dialect returns the dialect this plugin handles.
func (f *Format) Dialect() format.Dialect {
	return format.DialectISO19115
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "ISO 19115 (geographic metadata, ISO " + Version + " XML encoding)"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like an ISO 19139 record.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	patterns := [][]byte{
		[]byte("www.isotc211.org/2005/gmd"),
		[]byte("standards.iso.org/iso/19115"),
		[]byte("<gmd:MD_Metadata"),
		[]byte("<gmi:MI_Metadata"),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

// Open parses the record at path.
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
