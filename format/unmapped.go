package format

import (
	"context"
	"slices"
	"sync"

	"github.com/beevik/etree"
)

// Unmapped answers every accessor with nil. Strategies embed it and
// override the accessors their dialect can derive, so a property the dialect
// cannot express is absent rather than an error.
type Unmapped struct{}

func (Unmapped) ID(context.Context) any                    { return nil }
func (Unmapped) Name(context.Context) any                  { return nil }
func (Unmapped) Description(context.Context) any           { return nil }
func (Unmapped) URL(context.Context) any                   { return nil }
func (Unmapped) SameAs(context.Context) any                { return nil }
func (Unmapped) Version(context.Context) any               { return nil }
func (Unmapped) IsAccessibleForFree(context.Context) any   { return nil }
func (Unmapped) Keywords(context.Context) any              { return nil }
func (Unmapped) Identifier(context.Context) any            { return nil }
func (Unmapped) Citation(context.Context) any              { return nil }
func (Unmapped) VariableMeasured(context.Context) any      { return nil }
func (Unmapped) IncludedInDataCatalog(context.Context) any { return nil }
func (Unmapped) SubjectOf(context.Context) any             { return nil }
func (Unmapped) Distribution(context.Context) any          { return nil }
func (Unmapped) PotentialAction(context.Context) any       { return nil }
func (Unmapped) DateCreated(context.Context) any           { return nil }
func (Unmapped) DateModified(context.Context) any          { return nil }
func (Unmapped) DatePublished(context.Context) any         { return nil }
func (Unmapped) Expires(context.Context) any               { return nil }
func (Unmapped) TemporalCoverage(context.Context) any      { return nil }
func (Unmapped) SpatialCoverage(context.Context) any       { return nil }
func (Unmapped) Creator(context.Context) any               { return nil }
func (Unmapped) Contributor(context.Context) any           { return nil }
func (Unmapped) Provider(context.Context) any              { return nil }
func (Unmapped) Publisher(context.Context) any             { return nil }
func (Unmapped) Funding(context.Context) any               { return nil }
func (Unmapped) License(context.Context) any               { return nil }
func (Unmapped) WasRevisionOf(context.Context) any         { return nil }
func (Unmapped) WasDerivedFrom(context.Context) any        { return nil }
func (Unmapped) IsBasedOn(context.Context) any             { return nil }
func (Unmapped) WasGeneratedBy(context.Context) any        { return nil }
func (Unmapped) Checksum(context.Context) any              { return nil }
func (Unmapped) AlternateName(context.Context) any         { return nil }
func (Unmapped) Mentions(context.Context) any              { return nil }
func (Unmapped) IsPartOf(context.Context) any              { return nil }
func (Unmapped) MeasurementMethod(context.Context) any     { return nil }
func (Unmapped) MeasurementTechnique(context.Context) any  { return nil }
func (Unmapped) Temporal(context.Context) any              { return nil }
func (Unmapped) SchemaVersion(context.Context) any         { return nil }

// SubjectRoot finds the element describing the primary resource: the first
// element in document order whose tag is one of Tags. The search runs once.
type SubjectRoot struct {
	Doc  *etree.Document
	Tags []string

	once sync.Once
	root *etree.Element
}

// Element returns the subject root, or nil when the document has none.
func (s *SubjectRoot) Element() *etree.Element {
	s.once.Do(func() {
		if s.Doc == nil {
			return
		}
		s.root = firstMatch(s.Doc.Root(), s.Tags)
	})
	return s.root
}

func firstMatch(el *etree.Element, tags []string) *etree.Element {
	if el == nil {
		return nil
	}
	if slices.Contains(tags, el.Tag) {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := firstMatch(child, tags); found != nil {
			return found
		}
	}
	return nil
}
