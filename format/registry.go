package format

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Registry holds one format per dialect.
type Registry struct {
	mu      sync.RWMutex
	formats map[Dialect]Format
}

// DefaultRegistry is the global format registry.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new format registry.
func NewRegistry() *Registry {
	return &Registry{
		formats: make(map[Dialect]Format),
	}
}

// Register adds a format to the registry. Registering a format for an
// undeclared dialect is a programming error.
func (r *Registry) Register(f Format) {
	if !f.Dialect().Valid() {
		panic(fmt.Sprintf("format: register of undeclared %s", f.Dialect()))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[f.Dialect()] = f
}

// Get retrieves the format for a dialect.
func (r *Registry) Get(d Dialect) (Format, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.formats[d]
	return f, ok
}

// Open parses path with the strategy of dialect d. This is the only place
// where a dialect is turned into a strategy.
func (r *Registry) Open(d Dialect, path string, opts *Options) (Strategy, error) {
	f, ok := r.Get(d)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not registered", ErrUnknownDialect, d)
	}
	if opts == nil {
		opts = NewOptions()
	}
	s, err := f.Open(path, opts)
	if err != nil {
		return nil, fmt.Errorf("opening %s as %s: %w", path, d, err)
	}
	return s, nil
}

// List returns the registered dialects in declaration order.
func (r *Registry) List() []Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Dialect
	for _, d := range Dialects() {
		if _, ok := r.formats[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// DetectFormat guesses the dialect of a document from its content, falling
// back to a unique extension match.
func (r *Registry) DetectFormat(filename string, peek []byte) (Format, error) {
	peek = bytes.TrimSpace(peek)
	for _, d := range r.List() {
		f, _ := r.Get(d)
		if len(peek) > 0 && f.CanParse(peek) {
			return f, nil
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	var match []Format
	for _, d := range r.List() {
		f, _ := r.Get(d)
		if slices.Contains(f.Extensions(), ext) {
			match = append(match, f)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}

	return nil, fmt.Errorf("could not detect dialect for %s", filename)
}

// Register adds a format to the default registry.
func Register(f Format) {
	DefaultRegistry.Register(f)
}

// Get retrieves a format from the default registry.
func Get(d Dialect) (Format, bool) {
	return DefaultRegistry.Get(d)
}

// Open opens a document with the default registry.
func Open(d Dialect, path string, opts *Options) (Strategy, error) {
	return DefaultRegistry.Open(d, path, opts)
}

// DetectFormat detects the dialect using the default registry.
func DetectFormat(filename string, peek []byte) (Format, error) {
	return DefaultRegistry.DetectFormat(filename, peek)
}
