package helpers

import (
	_ "embed"
	"log/slog"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/licenses.yaml
var licensesYAML []byte

// License is an SPDX license entry.
type License struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// URL returns the SPDX page for the license.
func (l License) URL() string {
	return "https://spdx.org/licenses/" + l.ID + ".html"
}

var (
	licensesOnce sync.Once
	licenses     []License
)

// CommonLicenses returns the bundled license table.
func CommonLicenses() []License {
	licensesOnce.Do(func() {
		if err := yaml.Unmarshal(licensesYAML, &licenses); err != nil {
			slog.Warn("bundled license table unreadable", "err", err)
		}
	})
	return licenses
}

// LookupLicense finds a license by its full name or its SPDX identifier,
// ignoring case and surrounding whitespace.
func LookupLicense(nameOrID string) (License, bool) {
	key := strings.TrimSpace(nameOrID)
	for _, l := range CommonLicenses() {
		if strings.EqualFold(l.Name, key) || strings.EqualFold(l.ID, key) {
			return l, true
		}
	}
	return License{}, false
}
