package eml

import (
	"context"
	"log/slog"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// =============================================================================
// TEMPORAL COVERAGE
// =============================================================================

// TemporalCoverage renders each temporalCoverage of the dataset. Calendar
// dates become ISO 8601 text or intervals; ages on an alternative time scale
// become OWL-Time instants and intervals.
func (s *Strategy) TemporalCoverage(context.Context) any {
	var out []any
	for _, tc := range format.FindAll(s.dataset(), "coverage/temporalCoverage") {
		if single := format.Find(tc, "singleDateTime"); single != nil {
			out = append(out, s.singleDateTime(single))
			continue
		}
		if rng := format.Find(tc, "rangeOfDates"); rng != nil {
			out = append(out, rangeOfDates(rng))
		}
	}
	return value.Single(out)
}

// singleDateTime renders a single instant. A geologic age must carry a
// numeric estimate and uncertainty; anything else is recorded as malformed
// and left out.
func (s *Strategy) singleDateTime(el *etree.Element) any {
	inst := instant(el)
	if !inst.IsGeologic() {
		return value.Normalize(inst.Calendar)
	}
	if _, ok := value.Float(inst.Age); !ok {
		s.malformed("timeScaleAgeEstimate", inst.Age)
		return nil
	}
	if _, ok := value.Float(inst.Uncertainty); !ok {
		s.malformed("timeScaleAgeUncertainty", inst.Uncertainty)
		return nil
	}
	return inst.Node()
}

func rangeOfDates(el *etree.Element) any {
	return helpers.BuildInterval(instant(format.Find(el, "beginDate")), instant(format.Find(el, "endDate")))
}

// instant reads a SingleDateTimeType: a calendarDate with an optional time,
// or an alternativeTimeScale.
func instant(el *etree.Element) helpers.Instant {
	if scale := format.Find(el, "alternativeTimeScale"); scale != nil {
		return helpers.Instant{
			Scale:       format.FindText(scale, "timeScaleName"),
			Age:         format.FindText(scale, "timeScaleAgeEstimate"),
			Uncertainty: format.FindText(scale, "timeScaleAgeUncertainty"),
		}
	}
	date := format.FindText(el, "calendarDate")
	if date == "" {
		return helpers.Instant{}
	}
	if clock := format.FindText(el, "time"); clock != "" {
		date += "T" + clock
	}
	return helpers.Instant{Calendar: date}
}

func (s *Strategy) malformed(field, detail string) {
	slog.Debug("malformed field", "path", s.path, "field", field, "value", detail)
	s.opts.Ledger.Malformed(field, detail)
}

// =============================================================================
// SPATIAL COVERAGE
// =============================================================================

// SpatialCoverage describes each geographicCoverage as a Place with a point,
// box or polygon.
func (s *Strategy) SpatialCoverage(context.Context) any {
	var places []any
	for _, gc := range format.FindAll(s.dataset(), "coverage/geographicCoverage") {
		region := helpers.ClassifyRegion(bounds(gc))
		places = append(places, value.Map{
			value.TypeKey: string(schemaorg.TypePlace),
			"description": strings.TrimSpace(format.FindText(gc, "geographicDescription")),
			"geo":         region.Node(),
		})
	}
	return value.Single(places)
}

func bounds(gc *etree.Element) helpers.Bounds {
	bc := format.Find(gc, "boundingCoordinates")
	alt := format.Find(bc, "boundingAltitudes")
	return helpers.Bounds{
		West:          format.FindText(bc, "westBoundingCoordinate"),
		East:          format.FindText(bc, "eastBoundingCoordinate"),
		South:         format.FindText(bc, "southBoundingCoordinate"),
		North:         format.FindText(bc, "northBoundingCoordinate"),
		Ring:          format.FindText(gc, "datasetGPolygon/datasetGPolygonOuterGRing/gRing"),
		MinAltitude:   format.FindText(alt, "altitudeMinimum"),
		MaxAltitude:   format.FindText(alt, "altitudeMaximum"),
		AltitudeUnits: format.FindText(alt, "altitudeUnits"),
	}
}
