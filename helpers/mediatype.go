package helpers

import (
	_ "embed"
	"log/slog"
	"mime"
	"path"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/mediatypes.yaml
var mediaTypesYAML []byte

var (
	mediaTypesOnce sync.Once
	mediaTypes     map[string]string
)

func loadMediaTypes() map[string]string {
	mediaTypesOnce.Do(func() {
		mediaTypes = make(map[string]string)
		if err := yaml.Unmarshal(mediaTypesYAML, &mediaTypes); err != nil {
			slog.Warn("bundled media type table unreadable, using system table", "err", err)
		}
	})
	return mediaTypes
}

// Extension returns the lower-case extension of a file name or URL path
// without the dot.
func Extension(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// MediaType guesses the media type of a file name, consulting the bundled
// table before the system one. Unknown extensions give "".
func MediaType(name string) string {
	ext := Extension(name)
	if ext == "" {
		return ""
	}
	if mt, ok := loadMediaTypes()[ext]; ok {
		return mt
	}
	slog.Debug("extension not in bundled media types, using system table", "name", name)
	mt := mime.TypeByExtension("." + ext)
	if base, _, ok := strings.Cut(mt, ";"); ok {
		mt = base
	}
	return strings.TrimSpace(mt)
}
