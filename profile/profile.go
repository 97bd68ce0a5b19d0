// Package profile manages override profiles: named sets of property values
// applied to every record converted with them. Profiles ship embedded in
// the binary and users add their own under $XDG_CONFIG_HOME/soso/profiles.
package profile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/schemaorg"
)

// AppName names the configuration directory.
const AppName = "soso"

// ErrNotFound is returned for a profile that is neither a user file nor
// embedded.
var ErrNotFound = errors.New("profile not found")

// Profile is a named set of overrides.
type Profile struct {
	// Name is the profile identifier (e.g., "edi")
	Name string `yaml:"name" json:"name"`

	// Dialect restricts the profile to one source dialect. Empty means any.
	Dialect string `yaml:"dialect,omitempty" json:"dialect,omitempty"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Overrides maps Dataset property names to the values they take.
	Overrides map[string]any `yaml:"overrides" json:"overrides"`

	// Builtin is set for profiles read from the binary.
	Builtin bool `yaml:"-" json:"builtin,omitempty"`
}

// Check reports override keys that are not Dataset properties and a
// dialect name that is not supported.
func (p *Profile) Check() error {
	var problems []string
	if p.Dialect != "" {
		if _, err := format.ParseDialect(p.Dialect); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for key := range p.Overrides {
		if !schemaorg.IsProperty(key) {
			problems = append(problems, fmt.Sprintf("%q is not a Dataset property", key))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("profile %q: %s", p.Name, strings.Join(problems, "; "))
	}
	return nil
}

// AppliesTo reports whether the profile may be used with dialect d.
func (p *Profile) AppliesTo(d format.Dialect) bool {
	if p.Dialect == "" {
		return true
	}
	pd, err := format.ParseDialect(p.Dialect)
	return err == nil && pd == d
}

// Merge returns the profile's overrides with extra applied on top.
func (p *Profile) Merge(extra map[string]any) map[string]any {
	out := make(map[string]any, len(p.Overrides)+len(extra))
	maps.Copy(out, p.Overrides)
	maps.Copy(out, extra)
	return out
}

// configDirOverride holds a user-specified configuration directory.
// When empty, $XDG_CONFIG_HOME/soso is used.
var configDirOverride string

// SetConfigDir overrides the default configuration directory.
func SetConfigDir(dir string) {
	configDirOverride = dir
}

// ConfigDir returns the soso configuration directory.
func ConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ProfilesDir returns the user profiles directory.
func ProfilesDir() string {
	return filepath.Join(ConfigDir(), "profiles")
}

// EnsureProfilesDir creates the profiles directory if it doesn't exist.
func EnsureProfilesDir() error {
	return os.MkdirAll(ProfilesDir(), 0755)
}

// ProfilePath returns the path for a user profile file.
func ProfilePath(name string) string {
	// Sanitize name
	name = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	return filepath.Join(ProfilesDir(), name+".yaml")
}

// Save writes the profile to the user profiles directory.
func (p *Profile) Save() error {
	if err := p.Check(); err != nil {
		return err
	}
	if err := EnsureProfilesDir(); err != nil {
		return fmt.Errorf("creating profiles directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}

	if err := os.WriteFile(ProfilePath(p.Name), data, 0644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	return nil
}

// Load reads a profile. A user profile shadows an embedded one of the same
// name.
func Load(name string) (*Profile, error) {
	data, err := os.ReadFile(ProfilePath(name))
	if err == nil {
		p, err := parseProfile(data)
		if err != nil {
			return nil, err
		}
		if p.Name == "" {
			p.Name = name
		}
		return p, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading profile: %w", err)
	}

	if p, ok := builtin()[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// LoadFile reads a profile from an arbitrary path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	p, err := parseProfile(data)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// List returns the user profile names.
func List() ([]string, error) {
	entries, err := os.ReadDir(ProfilesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading profiles directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			names = append(names, strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml"))
		}
	}

	return names, nil
}

// Delete removes a user profile. Embedded profiles cannot be deleted.
func Delete(name string) error {
	if err := os.Remove(ProfilePath(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("deleting profile: %w", err)
	}

	return nil
}

// Exists checks if a user profile exists.
func Exists(name string) bool {
	_, err := os.Stat(ProfilePath(name))
	return err == nil
}

func parseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	return &p, nil
}
