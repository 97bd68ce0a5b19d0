// Package resolve follows cross-record references, either into a local
// corpus of sibling metadata files or out to DOI registries.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnresolved is returned when an identifier has no file in the corpus.
var ErrUnresolved = errors.New("reference not found in corpus")

// ErrNotLocal is returned for identifiers outside any local scheme.
var ErrNotLocal = errors.New("identifier is not a local reference")

// Corpus is a directory tree of records addressed by identifier:
// "spase://NASA/NumericalData/ACE/MAG/PT16S" lives at
// Root/NASA/NumericalData/ACE/MAG/PT16S.xml.
type Corpus struct {
	Root string
}

// IsLocal reports whether id uses a record scheme rather than a web URL.
func IsLocal(id string) bool {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(id), "://")
	if !ok || scheme == "" || rest == "" {
		return false
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "ftp", "ftps", "file":
		return false
	}
	return true
}

// Path maps an identifier to its file path without touching the disk.
func (c Corpus) Path(id string) (string, error) {
	id = strings.NewReplacer("'", "", `"`, "").Replace(strings.TrimSpace(id))
	if !IsLocal(id) {
		return "", fmt.Errorf("%w: %s", ErrNotLocal, id)
	}
	_, rest, _ := strings.Cut(id, "://")
	rest = strings.Trim(rest, "/")

	segments := strings.Split(rest, "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("invalid identifier path %q", id)
		}
	}
	return filepath.Join(append([]string{c.Root}, segments...)...) + ".xml", nil
}

// Locate returns the path of an existing record file. A missing file gives
// an error wrapping ErrUnresolved.
func (c Corpus) Locate(id string) (string, error) {
	if c.Root == "" {
		return "", fmt.Errorf("%w: %s (no corpus configured)", ErrUnresolved, id)
	}
	path, err := c.Path(id)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, fmt.Errorf("%w: %s", ErrUnresolved, id)
	}
	return path, nil
}
