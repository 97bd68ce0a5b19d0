package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/soso/format"
)

func TestParseOverrides(t *testing.T) {
	got, err := parseOverrides([]string{
		"license=CC-BY-4.0",
		"isAccessibleForFree=true",
		`provider={"@type":"Organization","name":"EDI"}`,
		"keywords=[\"lakes\",\"ice\"]",
		"version=2",
		"description=a = b",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"license":             "CC-BY-4.0",
		"isAccessibleForFree": true,
		"provider":            map[string]any{"@type": "Organization", "name": "EDI"},
		"keywords":            []any{"lakes", "ice"},
		"version":             float64(2),
		"description":         "a = b",
	}, got)

	for _, bad := range []string{"license", "=x"} {
		_, err := parseOverrides([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestResolveDialect(t *testing.T) {
	t.Cleanup(func() { dialectName = "" })

	path := filepath.Join("..", "format", "iso19115", "testdata", "iso.xml")
	d, err := resolveDialect(path)
	require.NoError(t, err)
	assert.Equal(t, format.DialectISO19115, d)

	dialectName = "eml"
	d, err = resolveDialect(path)
	require.NoError(t, err)
	assert.Equal(t, format.DialectEML, d, "the flag wins over detection")

	dialectName = "dublincore"
	_, err = resolveDialect(path)
	assert.ErrorIs(t, err, format.ErrUnknownDialect)
}

func TestOutputPath(t *testing.T) {
	t.Cleanup(func() {
		batchOutputDir = ""
		batchGzip = false
	})

	assert.Equal(t, filepath.Join("spase", "NASA", "a.jsonld"), outputPath("spase", filepath.Join("spase", "NASA", "a.xml")))

	batchOutputDir = "out"
	assert.Equal(t, filepath.Join("out", "NASA", "a.jsonld"), outputPath("spase", filepath.Join("spase", "NASA", "a.xml")))

	batchGzip = true
	assert.Equal(t, filepath.Join("out", "a.jsonld.gz"), outputPath(".", "a.xml"))
}

func TestBatchJobs(t *testing.T) {
	t.Cleanup(func() { batchOutputDir = "" })
	dir := t.TempDir()
	for _, name := range []string{"a.xml", "sub/b.xml", "sub/c.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("<x/>"), 0o644))
	}

	batchOutputDir = filepath.Join(dir, "out")
	jobs, err := batchJobs([]string{
		filepath.ToSlash(dir) + "/**/*.xml",
		filepath.ToSlash(dir) + "/a.xml",
	})
	require.NoError(t, err)
	require.Len(t, jobs, 2, "a.xml is matched twice but converted once")

	outputs := []string{jobs[0].output, jobs[1].output}
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "out", "a.jsonld"),
		filepath.Join(dir, "out", "sub", "b.jsonld"),
	}, outputs)
}

func TestOpenOutputGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.jsonld.gz")
	w, err := openOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte(`{"@type":"Dataset"}`))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r, err := pgzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, `{"@type":"Dataset"}`, string(data))
}
