package helpers

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lehigh-university-libraries/soso/value"
)

// Output layouts.
const (
	DateTimeLayout = "2006-01-02T15:04:05"
	DateLayout     = "2006-01-02"
)

var fractionRegex = regexp.MustCompile(`\.\d+`)

// TrimDateTime strips fractional seconds and a trailing "Z" from a
// timestamp: "2021-03-15T12:00:00.123Z" becomes "2021-03-15T12:00:00".
func TrimDateTime(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "Z")
	if date, clock, ok := strings.Cut(raw, "T"); ok {
		return date + "T" + fractionRegex.ReplaceAllString(clock, "")
	}
	return raw
}

// ParseDateTime parses "YYYY-MM-DDTHH:MM:SS[.fff][Z]" after stripping the
// fraction and zone marker, falling back to a date-only "YYYY-MM-DD".
// Results are in UTC.
func ParseDateTime(raw string) (time.Time, error) {
	s := TrimDateTime(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("parsing date: empty value")
	}
	if t, err := time.Parse(DateTimeLayout, s); err == nil {
		return t, nil
	}
	date, _, _ := strings.Cut(s, "T")
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return t, nil
}

// ParseLenient parses free-form dates found in hand-written records
// ("2019", "March 3, 2019", "2019/03/03") after ParseDateTime fails.
func ParseLenient(raw string) (time.Time, error) {
	if t, err := ParseDateTime(raw); err == nil {
		return t, nil
	}
	raw = strings.TrimSpace(raw)
	if len(raw) == 4 {
		if t, err := time.Parse("2006", raw); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return t, nil
}

// FormatDateTime renders t as "YYYY-MM-DDTHH:MM:SS".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateTimeLayout)
}

// FormatDate renders t as "YYYY-MM-DD".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Reconciliation is the result of comparing a release date with the dates
// of a revision history.
type Reconciliation struct {
	Earliest time.Time
	Latest   time.Time

	// Inconsistent is set when a revision is newer than the release date.
	Inconsistent bool
}

// Reconcile finds the earliest and latest of the release date and revision
// dates. A zero release date takes no part and cannot be inconsistent.
func Reconcile(release time.Time, revisions []time.Time) Reconciliation {
	var candidates []time.Time
	if !release.IsZero() {
		candidates = append(candidates, release)
	}
	for _, r := range revisions {
		if !r.IsZero() {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return Reconciliation{}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })
	rec := Reconciliation{
		Earliest: candidates[0],
		Latest:   candidates[len(candidates)-1],
	}
	rec.Inconsistent = !release.IsZero() && rec.Latest.After(release)
	return rec
}

// =============================================================================
// INTERVALS
// =============================================================================

// GeologicTRS is the temporal reference system used for geologic ages.
const GeologicTRS = "http://resource.geosciml.org/classifier/cgi/geologicage/ma"

// Instant is one bound of a temporal coverage. Either Calendar is set, or
// the bound is a geologic age on an alternative time scale.
type Instant struct {
	Calendar string

	Scale       string
	Age         string
	Uncertainty string
}

// IsZero reports whether the instant carries no value.
func (i Instant) IsZero() bool {
	return i.Calendar == "" && !i.IsGeologic()
}

// IsGeologic reports whether the instant uses an alternative time scale.
func (i Instant) IsGeologic() bool {
	return i.Scale != "" || i.Age != ""
}

// Node renders the instant as an OWL-Time instant. Numeric ages become a
// decimal numericPosition and anything else a nominalPosition.
func (i Instant) Node() value.Map {
	if !i.IsGeologic() {
		return value.Map{
			"@type":                   "time:Instant",
			"time:inXSDDateTimeStamp": i.Calendar,
		}
	}
	position := value.Map{
		"@type":       "time:TimePosition",
		"time:hasTRS": value.Map{"@id": GeologicTRS, "name": i.Scale},
	}
	if n := value.AsNumeric(i.Age); n != nil {
		position["time:numericPosition"] = value.Map{"@value": n, "@type": "xsd:decimal"}
	} else {
		position["time:nominalPosition"] = i.Age
	}
	node := value.Map{
		"@type":               "time:Instant",
		"time:inTimePosition": position,
	}
	if i.Uncertainty != "" {
		node["description"] = "Age uncertainty: " + i.Uncertainty
	}
	return node
}

// BuildInterval renders a temporal coverage. Calendar bounds give a
// "start/end" string, "start/.." when open ended and "../end" when only the
// end is known. A geologic bound on either side gives a structured
// time:ProperInterval. No bounds give nil.
func BuildInterval(start, end Instant) any {
	if start.IsZero() && end.IsZero() {
		return nil
	}
	if start.IsGeologic() || end.IsGeologic() {
		interval := value.Map{"@type": "time:ProperInterval"}
		if !start.IsZero() {
			interval["time:hasBeginning"] = start.Node()
		}
		if !end.IsZero() {
			interval["time:hasEnd"] = end.Node()
		}
		return interval
	}
	switch {
	case end.IsZero():
		return start.Calendar + "/.."
	case start.IsZero():
		return "../" + end.Calendar
	default:
		return start.Calendar + "/" + end.Calendar
	}
}

// =============================================================================
// CADENCE AND TRIAL WINDOWS
// =============================================================================

var cadenceUnits = []struct {
	designator string
	unit       string
}{
	{"H", "hour"},
	{"M", "minute"},
	{"S", "second"},
}

var dateCadenceUnits = []struct {
	designator string
	unit       string
}{
	{"D", "day"},
	{"M", "month"},
	{"Y", "year"},
}

// CadenceContext explains an ISO 8601 duration such as "PT0.625S" as
// "The time series is periodic with a 0.625 second cadence". Unrecognized
// durations give "".
func CadenceContext(cadence string) string {
	_, rest, ok := strings.Cut(strings.TrimSpace(cadence), "P")
	if !ok {
		return ""
	}
	units := dateCadenceUnits
	if _, clock, ok := strings.Cut(rest, "T"); ok {
		rest = clock
		units = cadenceUnits
	}
	for _, u := range units {
		if amount, _, ok := strings.Cut(rest, u.designator); ok && amount != "" {
			return "The time series is periodic with a " + amount + " " + u.unit + " cadence"
		}
	}
	return ""
}

// TrialWindow builds the sentences that tell a client which start and end
// values to try against a time-ranged data service. The test end is one
// minute after the start.
func TrialWindow(coverage string) (startSentence, endSentence string, err error) {
	start, end, _ := strings.Cut(coverage, "/")
	t, err := ParseDateTime(start)
	if err != nil {
		return "", "", fmt.Errorf("parsing coverage start: %w", err)
	}
	testEndText := t.Add(time.Minute).Format(DateTimeLayout)

	if end != "" && end != ".." {
		endSentence = "Data is available up to " + end + ". "
	}
	endSentence += "Use " + testEndText + " as a test end value."
	startSentence = "Use " + start + " as default value."
	return startSentence, endSentence, nil
}
