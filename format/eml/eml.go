// Package eml provides the format plugin for EML (Ecological Metadata
// Language) documents.
package eml

import (
	"bytes"

	"github.com/lehigh-university-libraries/soso/format"
)

// Version documents the EML schema this implementation targets.
const Version = "2.2.0"

// Format implements the EML format.
type Format struct{}

var _ format.Format = (*Format)(nil)

// Dialect returns the dialect this plugin handles.
func (f *Format) Dialect() format.Dialect {
	return format.DialectEML
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "EML (Ecological Metadata Language v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml"}
}

// CanParse returns true if the input looks like an EML document.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	patterns := [][]byte{
		[]byte("eml.ecoinformatics.org"),
		[]byte("ecoinformatics.org/eml-"),
		[]byte("<eml:eml"),
	}
	for _, pattern := range patterns {
		if bytes.Contains(peek, pattern) {
			return true
		}
	}
	return false
}

// Open parses the EML document at path.
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
