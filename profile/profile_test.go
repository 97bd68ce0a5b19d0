package profile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/soso/format"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestBuiltin(t *testing.T) {
	assert.Equal(t, []string{"edi", "ncei", "spdf"}, Builtin())

	for _, name := range Builtin() {
		p, err := Load(name)
		require.NoError(t, err, name)
		assert.True(t, p.Builtin)
		assert.NoError(t, p.Check(), name)
	}
}

func TestSaveLoadDelete(t *testing.T) {
	dir := useTempConfig(t)

	p := &Profile{
		Name:        "My Lab",
		Dialect:     "eml",
		Description: "lab defaults",
		Overrides: map[string]any{
			"license":  "CC-BY-4.0",
			"provider": map[string]any{"@type": "Organization", "name": "Lab"},
		},
	}
	require.NoError(t, p.Save())
	assert.FileExists(t, filepath.Join(dir, "profiles", "my-lab.yaml"))
	assert.True(t, Exists("My Lab"))

	loaded, err := Load("my-lab")
	require.NoError(t, err)
	assert.Equal(t, "My Lab", loaded.Name)
	assert.Equal(t, "CC-BY-4.0", loaded.Overrides["license"])
	assert.Equal(t, map[string]any{"@type": "Organization", "name": "Lab"}, loaded.Overrides["provider"])
	assert.False(t, loaded.Builtin)

	names, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"my-lab"}, names)

	all, err := All()
	require.NoError(t, err)
	assert.Equal(t, []string{"edi", "my-lab", "ncei", "spdf"}, all)

	require.NoError(t, Delete("my-lab"))
	assert.False(t, Exists("my-lab"))
	assert.True(t, errors.Is(Delete("my-lab"), ErrNotFound))
}

func TestUserProfileShadowsBuiltin(t *testing.T) {
	useTempConfig(t)

	require.NoError(t, (&Profile{Name: "edi", Overrides: map[string]any{"version": "2"}}).Save())

	p, err := Load("edi")
	require.NoError(t, err)
	assert.False(t, p.Builtin)
	assert.Equal(t, map[string]any{"version": "2"}, p.Overrides)

	all, err := All()
	require.NoError(t, err)
	assert.Equal(t, []string{"edi", "ncei", "spdf"}, all)
}

func TestLoadMissing(t *testing.T) {
	useTempConfig(t)
	_, err := Load("nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	names, err := List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ad-hoc.yml")
	require.NoError(t, os.WriteFile(path, []byte("overrides:\n  version: \"1.0\"\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ad-hoc", p.Name)
	assert.Equal(t, "1.0", p.Overrides["version"])

	require.NoError(t, os.WriteFile(path, []byte("overrides: [unclosed"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	p := &Profile{Name: "bad", Dialect: "dublincore", Overrides: map[string]any{"bogusKey": 1, "name": "x"}}
	err := p.Check()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogusKey")
	assert.Contains(t, err.Error(), "dublincore")

	useTempConfig(t)
	assert.Error(t, p.Save(), "invalid profiles are not saved")
}

func TestAppliesTo(t *testing.T) {
	anyDialect := &Profile{}
	assert.True(t, anyDialect.AppliesTo(format.DialectSPASE))

	iso := &Profile{Dialect: "iso"}
	assert.True(t, iso.AppliesTo(format.DialectISO19115))
	assert.False(t, iso.AppliesTo(format.DialectEML))
}

func TestMerge(t *testing.T) {
	p := &Profile{Overrides: map[string]any{"license": "CC0-1.0", "version": "1"}}
	merged := p.Merge(map[string]any{"license": "CC-BY-4.0"})

	assert.Equal(t, map[string]any{"license": "CC-BY-4.0", "version": "1"}, merged)
	assert.Equal(t, "CC0-1.0", p.Overrides["license"], "the profile is not modified")
}
