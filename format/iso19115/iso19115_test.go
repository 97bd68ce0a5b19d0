package iso19115

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/soso/diag"
	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/value"
)

func open(t *testing.T, name string) (*Strategy, *format.Options) {
	t.Helper()
	opts := format.NewOptions()
	st, err := (&Format{}).Open(filepath.Join("testdata", name), opts)
	require.NoError(t, err)
	return st.(*Strategy), opts
}

func TestCanParse(t *testing.T) {
	f := &Format{}
	assert.True(t, f.CanParse([]byte(`<?xml version="1.0"?><gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd">`)))
	assert.True(t, f.CanParse([]byte(`<gmi:MI_Metadata>`)))
	assert.False(t, f.CanParse([]byte(`<eml:eml xmlns:eml="https://eml.ecoinformatics.org/eml-2.2.0">`)))
	assert.False(t, f.CanParse([]byte(`gmd:MD_Metadata`)))
}

func TestRegistered(t *testing.T) {
	f, ok := format.Get(format.DialectISO19115)
	require.True(t, ok)
	assert.IsType(t, &Format{}, f)
}

func TestOpenRejectsNonXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.txt")
	require.NoError(t, os.WriteFile(path, []byte("title: buoys"), 0o644))

	_, err := (&Format{}).Open(path, nil)
	require.Error(t, err)
	assert.True(t, format.IsFormatError(err))
}

func TestDescriptiveProperties(t *testing.T) {
	ctx := context.Background()
	s, _ := open(t, "iso.xml")
	var _ format.Strategy = s

	assert.Equal(t, "Sea surface temperature from drifting buoys in the Gulf of Maine", s.Name(ctx))
	assert.Equal(t, "Hourly sea surface temperature recorded by twelve drifting buoys.", s.Description(ctx))
	assert.Equal(t, "https://doi.org/10.7289/V5ABCDEF", s.ID(ctx))

	ids, ok := s.Identifier(ctx).([]any)
	require.True(t, ok)
	require.Len(t, ids, 3)
	assert.Equal(t, "gov.noaa.ncei:0171186", ids[0])
	assert.Equal(t, "doi:10.7289/V5ABCDEF", ids[1].(value.Map)["value"])
	assert.Equal(t, "NCEI Accession 0171186", ids[2])

	assert.Equal(t, []any{
		"sea surface temperature",
		"drifting buoys",
		value.Map{
			value.TypeKey:      "DefinedTerm",
			"name":             "OCEANS > OCEAN TEMPERATURE > SEA SURFACE TEMPERATURE",
			"url":              "https://gcmd.earthdata.nasa.gov/kms/concept/b6ee7d47",
			"inDefinedTermSet": "GCMD Science Keywords",
		},
	}, s.Keywords(ctx))
}

func TestDates(t *testing.T) {
	ctx := context.Background()
	s, opts := open(t, "iso.xml")

	assert.Equal(t, "2017-02-01", s.DateCreated(ctx))
	assert.Equal(t, "2018-03-05", s.DatePublished(ctx))
	assert.Equal(t, "2020-07-01", s.DateModified(ctx), "latest revision")
	assert.Zero(t, opts.Ledger.Len())
}

func TestDateStampFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iso.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<gmd:MD_Metadata xmlns:gmd="http://www.isotc211.org/2005/gmd" xmlns:gco="http://www.isotc211.org/2005/gco">
  <gmd:dateStamp><gco:DateTime>2021-09-09T09:09:09</gco:DateTime></gmd:dateStamp>
  <gmd:identificationInfo><gmd:MD_DataIdentification><gmd:citation><gmd:CI_Citation>
    <gmd:date><gmd:CI_Date>
      <gmd:date><gco:Date>not a date</gco:Date></gmd:date>
      <gmd:dateType><gmd:CI_DateTypeCode codeListValue="creation"/></gmd:dateType>
    </gmd:CI_Date></gmd:date>
  </gmd:CI_Citation></gmd:citation></gmd:MD_DataIdentification></gmd:identificationInfo>
</gmd:MD_Metadata>`), 0o644))

	opts := format.NewOptions()
	st, err := (&Format{}).Open(path, opts)
	require.NoError(t, err)

	ctx := context.Background()
	assert.Equal(t, "2021-09-09", st.DateModified(ctx))
	assert.Nil(t, st.DateCreated(ctx))
	assert.Nil(t, st.DateCreated(ctx))
	assert.Equal(t, []string{"CI_Date"}, opts.Ledger.Targets(diag.MalformedField))
}

func TestExtent(t *testing.T) {
	ctx := context.Background()
	s, _ := open(t, "iso.xml")

	assert.Equal(t, value.Map{
		value.TypeKey: "Place",
		"description": "Gulf of Maine",
		"geo":         value.Map{"@type": "GeoShape", "box": "41.0 -71.0 45.0 -66.0"},
	}, s.SpatialCoverage(ctx))
	assert.Equal(t, "2016-06-01T00:00:00/..", s.TemporalCoverage(ctx))
}

func TestParties(t *testing.T) {
	ctx := context.Background()
	s, _ := open(t, "iso.xml")

	creators, ok := s.Creator(ctx).(value.Map)
	require.True(t, ok)
	items := creators[value.ListKey].([]any)
	require.Len(t, items, 2, "the point of contact is not a creator")

	assert.Equal(t, value.Map{
		value.TypeKey: "Person",
		"name":        "Jane Doe",
		"givenName":   "Jane",
		"familyName":  "Doe",
		"email":       "jdoe@whoi.edu",
		"affiliation": value.Map{value.TypeKey: "Organization", "name": "Woods Hole Oceanographic Institution"},
	}, items[0])
	assert.Equal(t, value.Map{
		value.TypeKey: "Organization",
		"name":        "Gulf of Maine Research Institute",
		"url":         "https://gmri.org",
	}, items[1])

	assert.Equal(t, value.Map{
		value.TypeKey: "Organization",
		"name":        "NOAA National Centers for Environmental Information",
	}, s.Publisher(ctx))
}

func TestLicense(t *testing.T) {
	s, _ := open(t, "iso.xml")
	assert.Equal(t, []any{
		"https://creativecommons.org/licenses/by/4.0/",
		"https://spdx.org/licenses/CC0-1.0.html",
	}, s.License(context.Background()))
}

func TestDistribution(t *testing.T) {
	s, _ := open(t, "iso.xml")
	downloads, ok := s.Distribution(context.Background()).([]any)
	require.True(t, ok)
	require.Len(t, downloads, 2, "the information page is skipped")

	assert.Equal(t, value.Map{
		value.TypeKey:    "DataDownload",
		"contentUrl":     "https://www.ncei.noaa.gov/data/oceans/ncei/0171186/sst.csv",
		"encodingFormat": "text/csv",
		"name":           "Buoy SST table",
	}, downloads[0])
	assert.Equal(t, value.Map{
		value.TypeKey:    "DataDownload",
		"contentUrl":     "https://www.ncei.noaa.gov/thredds/0171186/",
		"encodingFormat": "netCDF",
		"description":    "THREDDS catalog",
	}, downloads[1])
}

func TestEmptyRecord(t *testing.T) {
	ctx := context.Background()
	s, opts := open(t, "iso_empty.xml")

	accessors := map[string]func(context.Context) any{
		"ID":                  s.ID,
		"Name":                s.Name,
		"Description":         s.Description,
		"URL":                 s.URL,
		"IsAccessibleForFree": s.IsAccessibleForFree,
		"Keywords":            s.Keywords,
		"Identifier":          s.Identifier,
		"Distribution":        s.Distribution,
		"DateCreated":         s.DateCreated,
		"DateModified":        s.DateModified,
		"DatePublished":       s.DatePublished,
		"TemporalCoverage":    s.TemporalCoverage,
		"SpatialCoverage":     s.SpatialCoverage,
		"Creator":             s.Creator,
		"Publisher":           s.Publisher,
		"License":             s.License,
		"SubjectOf":           s.SubjectOf,
	}
	for name, get := range accessors {
		assert.Nil(t, get(ctx), name)
	}
	assert.Zero(t, opts.Ledger.Len())
}
