package format

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// FormatError reports an input that is not a readable document of the
// expected dialect. It is the only error that aborts a conversion.
type FormatError struct {
	Path   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsFormatError reports whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// LoadDocument reads an XML document. The path must end in ".xml" and the
// document must have a root element.
func LoadDocument(path string) (*etree.Document, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		return nil, &FormatError{Path: path, Reason: "must be an XML file"}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &FormatError{Path: path, Reason: "unreadable", Err: err}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, &FormatError{Path: path, Reason: "invalid XML", Err: err}
	}
	if doc.Root() == nil {
		return nil, &FormatError{Path: path, Reason: "no root element"}
	}
	return doc, nil
}

// ParseDocument reads an XML document from memory.
func ParseDocument(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &FormatError{Path: "<memory>", Reason: "invalid XML", Err: err}
	}
	if doc.Root() == nil {
		return nil, &FormatError{Path: "<memory>", Reason: "no root element"}
	}
	return doc, nil
}

// =============================================================================
// TREE QUERIES
// =============================================================================

// FindText returns the trimmed text of the first element matching path, or
// "" when there is none. A nil element matches nothing.
func FindText(el *etree.Element, path string) string {
	if el == nil {
		return ""
	}
	found := el.FindElement(path)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

// FindTexts returns the non-empty trimmed texts of every match.
func FindTexts(el *etree.Element, path string) []string {
	if el == nil {
		return nil
	}
	var out []string
	for _, found := range el.FindElements(path) {
		if t := strings.TrimSpace(found.Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FindAll returns every match, tolerating a nil element.
func FindAll(el *etree.Element, path string) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.FindElements(path)
}

// Find returns the first match, tolerating a nil element.
func Find(el *etree.Element, path string) *etree.Element {
	if el == nil {
		return nil
	}
	return el.FindElement(path)
}

// DeepText concatenates every text node below el in document order.
func DeepText(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(el)
	return b.String()
}

// Attr returns the trimmed value of an attribute, or "".
func Attr(el *etree.Element, key string) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}
