package hub

import (
	"context"

	"github.com/lehigh-university-libraries/soso/format"
)

// Accessor answers one property query.
type Accessor func(ctx context.Context) any

// Accessors maps every recognized property name to the strategy method
// that answers it.
func Accessors(s format.Strategy) map[string]Accessor {
	return map[string]Accessor{
		"name":                  s.Name,
		"description":           s.Description,
		"url":                   s.URL,
		"sameAs":                s.SameAs,
		"version":               s.Version,
		"isAccessibleForFree":   s.IsAccessibleForFree,
		"keywords":              s.Keywords,
		"identifier":            s.Identifier,
		"citation":              s.Citation,
		"variableMeasured":      s.VariableMeasured,
		"includedInDataCatalog": s.IncludedInDataCatalog,
		"subjectOf":             s.SubjectOf,
		"distribution":          s.Distribution,
		"potentialAction":       s.PotentialAction,
		"dateCreated":           s.DateCreated,
		"dateModified":          s.DateModified,
		"datePublished":         s.DatePublished,
		"expires":               s.Expires,
		"temporalCoverage":      s.TemporalCoverage,
		"spatialCoverage":       s.SpatialCoverage,
		"creator":               s.Creator,
		"contributor":           s.Contributor,
		"provider":              s.Provider,
		"publisher":             s.Publisher,
		"funding":               s.Funding,
		"license":               s.License,
		"wasRevisionOf":         s.WasRevisionOf,
		"wasDerivedFrom":        s.WasDerivedFrom,
		"isBasedOn":             s.IsBasedOn,
		"wasGeneratedBy":        s.WasGeneratedBy,
		"checksum":              s.Checksum,
		"alternateName":         s.AlternateName,
		"mentions":              s.Mentions,
		"isPartOf":              s.IsPartOf,
		"measurementMethod":     s.MeasurementMethod,
		"measurementTechnique":  s.MeasurementTechnique,
		"temporal":              s.Temporal,
		"schemaVersion":         s.SchemaVersion,
	}
}
