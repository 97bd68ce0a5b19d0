package profile

import (
	"embed"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

var builtin = sync.OnceValue(func() map[string]*Profile {
	profiles := make(map[string]*Profile)

	entries, err := embeddedProfiles.ReadDir("profiles")
	if err != nil {
		return profiles
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := embeddedProfiles.ReadFile("profiles/" + entry.Name())
		if err != nil {
			continue
		}

		p, err := parseProfile(data)
		if err != nil {
			slog.Warn("skipping embedded profile", "file", entry.Name(), "err", err)
			continue
		}

		// Use filename without extension as profile name if not set
		if p.Name == "" {
			p.Name = strings.TrimSuffix(entry.Name(), ".yaml")
		}
		p.Builtin = true
		profiles[p.Name] = p
	}

	return profiles
})

// Builtin returns the names of the embedded profiles, sorted.
func Builtin() []string {
	names := make([]string, 0, len(builtin()))
	for name := range builtin() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every available profile name, user profiles shadowing
// embedded ones, sorted.
func All() ([]string, error) {
	user, err := List()
	if err != nil {
		return nil, err
	}
	names := append(Builtin(), user...)
	slices.Sort(names)
	return slices.Compact(names), nil
}
