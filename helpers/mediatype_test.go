package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaType(t *testing.T) {
	assert.Equal(t, "text/csv", MediaType("data_file.csv"))
	assert.Equal(t, "application/x-cdf", MediaType("https://cdaweb.gsfc.nasa.gov/pub/data/ac_h0_mfi.CDF"))
	assert.Equal(t, "application/netcdf", MediaType("sst.nc?version=2"))
	assert.Empty(t, MediaType("README"))
	assert.Empty(t, MediaType(""))
}

func TestLookupLicense(t *testing.T) {
	l, ok := LookupLicense("Creative Commons Zero v1.0 Universal")
	assert.True(t, ok)
	assert.Equal(t, "CC0-1.0", l.ID)
	assert.Equal(t, "https://spdx.org/licenses/CC0-1.0.html", l.URL())

	l, ok = LookupLicense("cc-by-4.0")
	assert.True(t, ok)
	assert.Equal(t, "Creative Commons Attribution 4.0 International", l.Name)

	_, ok = LookupLicense("All rights reserved")
	assert.False(t, ok)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "Solar wind data from ACE.", StripHTML("<p>Solar wind <b>data</b> from ACE.</p>"))
	assert.Equal(t, "plain text", StripHTML("  plain \n text "))
	assert.Empty(t, StripHTML(""))
}

func TestIsHTMLDocument(t *testing.T) {
	assert.True(t, IsHTMLDocument("<!DOCTYPE html><html><body>x</body></html>"))
	assert.True(t, IsHTMLDocument("<HTML lang=\"en\">\n<body></body>\n</HTML>"))
	assert.False(t, IsHTMLDocument("Smith, J. (2020). Data. Zenodo."))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Magnetic field", FirstLine("\n  Magnetic field\nin GSE coordinates"))
}
