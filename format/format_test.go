package format

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in   string
		want Dialect
	}{
		{"eml", DialectEML},
		{"EML", DialectEML},
		{" Spase ", DialectSPASE},
		{"iso19115", DialectISO19115},
		{"ISO-19115", DialectISO19115},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseDialect("dublincore")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestDialectText(t *testing.T) {
	var d Dialect
	require.NoError(t, d.UnmarshalText([]byte("SPASE")))
	assert.Equal(t, DialectSPASE, d)

	text, err := DialectISO19115.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "iso19115", string(text))

	_, err = Dialect(42).MarshalText()
	assert.Error(t, err)
	assert.False(t, Dialect(0).Valid())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocument(t *testing.T) {
	t.Run("not xml", func(t *testing.T) {
		path := writeFile(t, "mapping.tsv", "a\tb\n")
		_, err := LoadDocument(path)
		require.Error(t, err)
		assert.True(t, IsFormatError(err))
		assert.Contains(t, err.Error(), "must be an XML file")
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "bad.xml", "<root><open></root>")
		_, err := LoadDocument(path)
		assert.True(t, IsFormatError(err))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(t.TempDir(), "absent.xml"))
		assert.True(t, IsFormatError(err))
	})

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "ok.xml", `<?xml version="1.0"?><root><a>x</a></root>`)
		doc, err := LoadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "x", FindText(doc.Root(), "a"))
	})
}

func TestTreeQueries(t *testing.T) {
	doc, err := ParseDocument([]byte(`<r xmlns:s="http://example.org/s">
  <s:k>one</s:k>
  <s:k> two </s:k>
  <s:k></s:k>
  <m><b>Step 1</b> and <b>Step 2</b></m>
  <u function="information">https://example.org</u>
</r>`))
	require.NoError(t, err)
	root := doc.Root()

	assert.Equal(t, "one", FindText(root, "k"))
	assert.Equal(t, []string{"one", "two"}, FindTexts(root, "k"))
	assert.Equal(t, "Step 1 and Step 2", DeepText(Find(root, "m")))
	assert.Equal(t, "information", Attr(Find(root, "u"), "function"))
	assert.Equal(t, "", FindText(nil, "k"))
	assert.Nil(t, FindAll(nil, "k"))
}

func TestSubjectRoot(t *testing.T) {
	doc, err := ParseDocument([]byte(`<Spase>
  <Version>2.6.0</Version>
  <Instrument><ResourceID>i</ResourceID></Instrument>
  <NumericalData><ResourceID>n</ResourceID></NumericalData>
</Spase>`))
	require.NoError(t, err)

	sr := &SubjectRoot{Doc: doc, Tags: []string{"NumericalData", "Instrument"}}
	root := sr.Element()
	require.NotNil(t, root)
	assert.Equal(t, "Instrument", root.Tag)
	assert.Same(t, root, sr.Element())

	none := &SubjectRoot{Doc: doc, Tags: []string{"Collection"}}
	assert.Nil(t, none.Element())
}

type stubStrategy struct {
	Unmapped
	path string
}

func (stubStrategy) Dialect() Dialect { return DialectEML }

func (s stubStrategy) Name(context.Context) any { return s.path }

type stubFormat struct{ fail bool }

func (stubFormat) Dialect() Dialect       { return DialectEML }
func (stubFormat) Description() string    { return "stub" }
func (stubFormat) Extensions() []string   { return []string{"xml"} }
func (stubFormat) CanParse(p []byte) bool { return len(p) > 0 && p[0] == '<' }
func (f stubFormat) Open(path string, _ *Options) (Strategy, error) {
	if f.fail {
		return nil, &FormatError{Path: path, Reason: "broken"}
	}
	return stubStrategy{path: path}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, err := r.Open(DialectSPASE, "x.xml", nil)
	assert.ErrorIs(t, err, ErrUnknownDialect)

	r.Register(stubFormat{})
	assert.Equal(t, []Dialect{DialectEML}, r.List())

	s, err := r.Open(DialectEML, "x.xml", nil)
	require.NoError(t, err)
	assert.Equal(t, "x.xml", s.Name(context.Background()))
	assert.Nil(t, s.Checksum(context.Background()))

	f, err := r.DetectFormat("record.xml", []byte("  <eml/>"))
	require.NoError(t, err)
	assert.Equal(t, DialectEML, f.Dialect())

	r.Register(stubFormat{fail: true})
	_, err = r.Open(DialectEML, "x.xml", nil)
	var fe *FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestRegisterUndeclaredPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry().Register(badFormat{})
	})
}

type badFormat struct{ stubFormat }

func (badFormat) Dialect() Dialect { return Dialect(99) }

func TestOptions(t *testing.T) {
	opts := NewOptions()
	require.NotNil(t, opts.Ledger)
	assert.NotNil(t, opts.Resolver(nil, nil))

	nested := opts.NestedOptions()
	assert.True(t, nested.Nested)
	assert.Same(t, opts.Ledger, nested.Ledger)
	assert.Nil(t, nested.Resolver(nil, nil))

	var nilOpts *Options
	orphan := nilOpts.NestedOptions()
	assert.True(t, orphan.Nested)
	assert.Nil(t, orphan.Ledger)
}

func TestMemo(t *testing.T) {
	var m Memo
	calls := 0
	compute := func() any {
		calls++
		return calls
	}
	assert.Equal(t, 1, m.Get("a", compute))
	assert.Equal(t, 1, m.Get("a", compute))
	assert.Equal(t, 2, m.Get("b", compute))
	assert.Equal(t, 2, calls)

	assert.Nil(t, m.Get("absent", func() any { return nil }))
	assert.Nil(t, m.Get("absent", func() any { return "recomputed" }))

	nested := m.Get("outer", func() any {
		return m.Get("inner", func() any { return "inner" }).(string) + "+outer"
	})
	assert.Equal(t, "inner+outer", nested)
}
