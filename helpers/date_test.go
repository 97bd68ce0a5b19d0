package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDateTime(raw)
	require.NoError(t, err)
	return d
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2020-01-01T00:00:00Z", "2020-01-01T00:00:00"},
		{"2021-03-15T12:30:45.123Z", "2021-03-15T12:30:45"},
		{"2019-06-01", "2019-06-01T00:00:00"},
		{" 2019-06-01T10:00:00 ", "2019-06-01T10:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateTime(mustDate(t, tt.raw)))
		})
	}

	_, err := ParseDateTime("sometime in June")
	assert.Error(t, err)
	_, err = ParseDateTime("")
	assert.Error(t, err)
}

func TestParseLenient(t *testing.T) {
	d, err := ParseLenient("2019")
	require.NoError(t, err)
	assert.Equal(t, "2019-01-01", FormatDate(d))

	d, err = ParseLenient("March 3, 2019")
	require.NoError(t, err)
	assert.Equal(t, "2019-03-03", FormatDate(d))
}

func TestTrimDateTime(t *testing.T) {
	assert.Equal(t, "2021-03-15T12:30:45", TrimDateTime("2021-03-15T12:30:45.500Z"))
	assert.Equal(t, "2021-03-15", TrimDateTime("2021-03-15"))
}

func TestReconcile(t *testing.T) {
	release := mustDate(t, "2020-01-01T00:00:00Z")
	revisions := []time.Time{mustDate(t, "2019-06-01"), mustDate(t, "2021-03-15")}

	rec := Reconcile(release, revisions)
	assert.Equal(t, "2019-06-01", FormatDate(rec.Earliest))
	assert.Equal(t, "2021-03-15", FormatDate(rec.Latest))
	assert.True(t, rec.Inconsistent)

	rec = Reconcile(mustDate(t, "2022-01-01"), revisions)
	assert.False(t, rec.Inconsistent)
	assert.Equal(t, "2022-01-01", FormatDate(rec.Latest))

	rec = Reconcile(time.Time{}, revisions)
	assert.False(t, rec.Inconsistent)
	assert.Equal(t, "2019-06-01", FormatDate(rec.Earliest))

	assert.True(t, Reconcile(time.Time{}, nil).Earliest.IsZero())
}

func TestBuildInterval(t *testing.T) {
	start := Instant{Calendar: "2019-01-01T12:00:00"}
	end := Instant{Calendar: "2020-01-01T12:00:00"}

	assert.Equal(t, "2019-01-01T12:00:00/2020-01-01T12:00:00", BuildInterval(start, end))
	assert.Equal(t, "2019-01-01T12:00:00/..", BuildInterval(start, Instant{}))
	assert.Equal(t, "../2020-01-01T12:00:00", BuildInterval(Instant{}, end))
	assert.Nil(t, BuildInterval(Instant{}, Instant{}))

	geo := BuildInterval(
		Instant{Scale: "Absolute Geologic Time Scale", Age: "300", Uncertainty: "5"},
		Instant{Scale: "Absolute Geologic Time Scale", Age: "700 Ma"},
	)
	interval, ok := geo.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "time:ProperInterval", interval["@type"])

	begin := interval["time:hasBeginning"].(map[string]any)
	position := begin["time:inTimePosition"].(map[string]any)
	assert.Equal(t, map[string]any{"@value": 300, "@type": "xsd:decimal"}, position["time:numericPosition"])
	assert.Equal(t, "Age uncertainty: 5", begin["description"])

	endNode := interval["time:hasEnd"].(map[string]any)
	endPosition := endNode["time:inTimePosition"].(map[string]any)
	assert.Equal(t, "700 Ma", endPosition["time:nominalPosition"])
}

func TestCadenceContext(t *testing.T) {
	assert.Equal(t, "The time series is periodic with a 0.625 second cadence", CadenceContext("PT0.625S"))
	assert.Equal(t, "The time series is periodic with a 1 minute cadence", CadenceContext("PT1M"))
	assert.Equal(t, "The time series is periodic with a 3 hour cadence", CadenceContext("PT3H"))
	assert.Equal(t, "The time series is periodic with a 1 month cadence", CadenceContext("P1M"))
	assert.Equal(t, "The time series is periodic with a 1 day cadence", CadenceContext("P1D"))
	assert.Empty(t, CadenceContext("fast"))
}

func TestTrialWindow(t *testing.T) {
	start, end, err := TrialWindow("2019-01-01T00:00:00Z/2020-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "Use 2019-01-01T00:00:00Z as default value.", start)
	assert.Equal(t, "Data is available up to 2020-01-01T00:00:00Z. Use 2019-01-01T00:01:00 as a test end value.", end)

	_, end, err = TrialWindow("2019-01-01T00:00:30/..")
	require.NoError(t, err)
	assert.Equal(t, "Use 2019-01-01T00:01:30 as a test end value.", end)

	_, _, err = TrialWindow("unknown")
	assert.Error(t, err)
}
