package spase

import (
	"context"
	"log/slog"
	"slices"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/resolve"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// Association types per relation property.
var (
	revisionTypes = []string{"RevisionOf"}
	derivedTypes  = []string{"ChildEventOf", "DerivedFrom"}
	mentionTypes  = []string{"Other"}
	partOfTypes   = []string{"PartOf"}
)

func (s *Strategy) WasRevisionOf(ctx context.Context) any {
	return s.relation(ctx, "wasRevisionOf", revisionTypes)
}

func (s *Strategy) IsBasedOn(ctx context.Context) any {
	return s.relation(ctx, "isBasedOn", derivedTypes)
}

// WasDerivedFrom shares its mapping with IsBasedOn.
func (s *Strategy) WasDerivedFrom(ctx context.Context) any {
	return s.IsBasedOn(ctx)
}

func (s *Strategy) Mentions(ctx context.Context) any {
	return s.relation(ctx, "mentions", mentionTypes)
}

func (s *Strategy) IsPartOf(ctx context.Context) any {
	return s.relation(ctx, "isPartOf", partOfTypes)
}

// associations returns the ids of the Association entries whose type is
// one of types, in document order.
func (s *Strategy) associations(types []string) []string {
	var ids []string
	for _, assoc := range format.FindAll(s.root(), ".//Association") {
		id := format.FindText(assoc, "AssociationID")
		if id == "" || !slices.Contains(types, format.FindText(assoc, "AssociationType")) {
			continue
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// relation resolves the associations of the given types one hop. Entries
// that cannot be resolved are left out and recorded in the ledger.
func (s *Strategy) relation(ctx context.Context, key string, types []string) any {
	return s.cache.Get("relation:"+key, func() any {
		ids := s.associations(types)
		if len(ids) == 0 {
			return nil
		}
		resolver := s.opts.Resolver(s.loadRelated, schemaorg.CreatorsFromRemote)
		var stubs []resolve.Stub
		for _, id := range ids {
			if stub, ok := resolver.Resolve(ctx, id); ok {
				stubs = append(stubs, stub)
			}
		}
		return value.Normalize(schemaorg.RelatedList(stubs))
	})
}

// loadRelated describes a related record of the corpus. The record is read
// with nested options and therefore does not follow its own references.
func (s *Strategy) loadRelated(ctx context.Context, path string) (resolve.Stub, error) {
	related, err := s.openNested(path)
	if err != nil {
		return resolve.Stub{}, err
	}
	return resolve.Stub{
		URL:         related.url(),
		Name:        value.Text(related.Name(ctx)),
		Description: value.Text(related.Description(ctx)),
		License:     related.License(ctx),
		Creator:     related.Creator(ctx),
	}, nil
}

func (s *Strategy) openNested(path string) (*Strategy, error) {
	doc, err := format.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return newStrategy(path, doc, s.opts.NestedOptions()), nil
}

// =============================================================================
// INSTRUMENTS
// =============================================================================

// WasGeneratedBy names the instruments that produced the data. Each
// instrument record is read from the corpus for its name and landing page;
// instruments missing from the corpus are left out.
func (s *Strategy) WasGeneratedBy(ctx context.Context) any {
	if s.opts.Nested {
		return nil
	}
	return s.cache.Get("wasGeneratedBy", func() any {
		var activities []any
		var seen []string
		for _, id := range format.FindTexts(s.dataRoot(), ".//InstrumentID") {
			if slices.Contains(seen, id) {
				continue
			}
			seen = append(seen, id)
			if used := s.instrument(ctx, id); used != nil {
				activities = append(activities, value.Map{
					value.TypeKey: []any{string(schemaorg.TypeResearchProject), string(schemaorg.TypeProvActivity)},
					"prov:used":   used,
				})
			}
		}
		return value.Normalize(activities)
	})
}

func (s *Strategy) instrument(ctx context.Context, id string) value.Map {
	path, err := s.opts.Corpus.Locate(id)
	if err != nil {
		slog.Warn("instrument not in corpus", "id", id, "path", path)
		s.opts.Ledger.Unresolved(id, path)
		return nil
	}
	inst, err := s.openNested(path)
	if err != nil {
		slog.Warn("instrument record unreadable", "id", id, "path", path, "err", err)
		s.opts.Ledger.Malformed(id, err.Error())
		return nil
	}
	url := inst.url()
	if url == "" {
		return nil
	}
	return value.Map{
		schemaorg.IDKey: url,
		value.TypeKey: []any{
			string(schemaorg.TypeIndividualProduct),
			string(schemaorg.TypeProvEntity),
			string(schemaorg.TypeSosaSystem),
		},
		"identifier": value.Map{
			schemaorg.IDKey: url,
			value.TypeKey:   string(schemaorg.TypePropertyValue),
			"propertyID":    "SPASE Resource ID",
			"value":         id,
		},
		"name": inst.Name(ctx),
		"url":  url,
	}
}

// =============================================================================
// PERSON RECORDS
// =============================================================================

// personRecord holds what a Person or Repository record adds to a contact.
type personRecord struct {
	orcid       string
	affiliation string
	ror         string
}

var personTags = []string{"Person", "Repository"}

// person reads the corpus record of a contact. A contact without a record
// is noted once and contributes its name only. Without a corpus no record
// is looked up.
func (s *Strategy) person(_ context.Context, personID string) personRecord {
	if s.opts.Corpus.Root == "" {
		return personRecord{}
	}
	return s.cache.Get("person:"+personID, func() any {
		path, err := s.opts.Corpus.Locate(personID)
		if err != nil {
			slog.Debug("person not in corpus", "id", personID, "path", path)
			s.opts.Ledger.Unresolved(personID, path)
			return personRecord{}
		}
		doc, err := format.LoadDocument(path)
		if err != nil {
			slog.Warn("person record unreadable", "id", personID, "path", path, "err", err)
			s.opts.Ledger.Malformed(personID, err.Error())
			return personRecord{}
		}
		root := (&format.SubjectRoot{Doc: doc, Tags: personTags}).Element()
		return personRecord{
			orcid:       format.FindText(root, ".//ORCIdentifier"),
			affiliation: format.FindText(root, ".//OrganizationName"),
			ror:         format.FindText(root, ".//RORIdentifier"),
		}
	}).(personRecord)
}
