package validate

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
)

//go:embed shapes/*.ttl
var bundled embed.FS

// DefaultShapes is the bundled shape graph used when none is named.
const DefaultShapes = "soso_common_v1.2.3.ttl"

// ErrShapeNotFound is returned when a shape name is neither a file nor a
// bundled resource.
var ErrShapeNotFound = errors.New("SHACL shape not found as file or bundled resource")

// Shapes is a resolved shape graph on disk.
type Shapes struct {
	// Path is the file the validation engine reads.
	Path string

	// Bundled is set when Path is a temporary copy of a bundled resource.
	Bundled bool
}

// Close removes the temporary copy of a bundled shape graph.
func (s *Shapes) Close() error {
	if s == nil || !s.Bundled {
		return nil
	}
	return os.Remove(s.Path)
}

// BundledShapes lists the names of the shape graphs shipped in the binary.
func BundledShapes() []string {
	entries, err := fs.ReadDir(bundled, "shapes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names
}

// ResolveShapes turns a shape name into a file. An empty name means
// DefaultShapes. An existing file is used as is. A bundled resource name is
// written to a temporary file the caller must Close.
func ResolveShapes(name string) (*Shapes, error) {
	if name == "" {
		name = DefaultShapes
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return &Shapes{Path: name}, nil
	}

	data, err := bundled.ReadFile(path.Join("shapes", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShapeNotFound, name)
	}

	f, err := os.CreateTemp("", "soso-shapes-*.ttl")
	if err != nil {
		return nil, fmt.Errorf("materializing %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("materializing %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("materializing %s: %w", name, err)
	}
	return &Shapes{Path: f.Name(), Bundled: true}, nil
}
