package eml

import (
	"context"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

var subjectTags = []string{"dataset"}

// Package identifiers of the form scope.identifier.revision.
var packageIDRegex = regexp.MustCompile(`^(.+\.\d+)\.(\d+)$`)

// Strategy answers property queries for one EML document.
//
// EML has no element for includedInDataCatalog, potentialAction, expires,
// dateCreated, wasGeneratedBy, mentions, isPartOf or measurementMethod;
// those are always absent. url, sameAs, version and citation are derived
// when the document carries them and are otherwise left to overrides.
type Strategy struct {
	format.Unmapped

	path    string
	doc     *etree.Document
	subject *format.SubjectRoot
	opts    *format.Options

	cache format.Memo
}

func newStrategy(path string, doc *etree.Document, opts *format.Options) *Strategy {
	if opts == nil {
		opts = format.NewOptions()
	}
	return &Strategy{
		path:    path,
		doc:     doc,
		subject: &format.SubjectRoot{Doc: doc, Tags: subjectTags},
		opts:    opts,
	}
}

// Dialect returns format.DialectEML.
func (s *Strategy) Dialect() format.Dialect { return format.DialectEML }

func (s *Strategy) dataset() *etree.Element {
	return s.subject.Element()
}

func (s *Strategy) packageID() string {
	if s.doc == nil {
		return ""
	}
	return format.Attr(s.doc.Root(), "packageId")
}

// namespace is the EML namespace URI of the document root, e.g.
// "https://eml.ecoinformatics.org/eml-2.2.0".
func (s *Strategy) namespace() string {
	if s.doc == nil || s.doc.Root() == nil {
		return ""
	}
	return s.doc.Root().NamespaceURI()
}

// doiURL returns the resolver URL of a "doi:" identifier or a doi.org URL,
// and "" for anything else.
func doiURL(id string) string {
	id = strings.TrimSpace(id)
	switch {
	case strings.HasPrefix(strings.ToLower(id), "doi:"):
		return "https://doi.org/" + strings.TrimSpace(id[len("doi:"):])
	case strings.Contains(id, "doi.org/"):
		return id
	}
	return ""
}

// =============================================================================
// DESCRIPTIVE PROPERTIES
// =============================================================================

func (s *Strategy) ID(ctx context.Context) any {
	if doi := doiURL(s.packageID()); doi != "" {
		return doi
	}
	return s.URL(ctx)
}

func (s *Strategy) Name(context.Context) any {
	return value.Normalize(helpers.NormalizeWhitespace(format.FindText(s.dataset(), "title")))
}

// Description is the abstract with its paragraphs joined.
func (s *Strategy) Description(context.Context) any {
	return value.Normalize(value.LimitText(paragraphs(format.Find(s.dataset(), "abstract"))))
}

// AlternateName lists the shortName and any additional titles.
func (s *Strategy) AlternateName(context.Context) any {
	names := format.FindTexts(s.dataset(), "shortName")
	titles := format.FindTexts(s.dataset(), "title")
	if len(titles) > 1 {
		names = append(names, titles[1:]...)
	}
	return value.Single(value.Strings(names))
}

// URL is the landing page given as the dataset's online distribution.
func (s *Strategy) URL(context.Context) any {
	return value.Normalize(format.FindText(s.dataset(), "distribution/online/url"))
}

// SameAs lists the alternate identifiers that are web addresses.
func (s *Strategy) SameAs(context.Context) any {
	var urls []any
	for _, id := range format.FindTexts(s.dataset(), "alternateIdentifier") {
		if value.IsURL(id) {
			urls = append(urls, id)
		}
	}
	return value.Single(urls)
}

// Version is the revision number of a scope.identifier.revision package
// identifier.
func (s *Strategy) Version(context.Context) any {
	m := packageIDRegex.FindStringSubmatch(s.packageID())
	if m == nil {
		return nil
	}
	return m[2]
}

// SchemaVersion is the EML version named by the root namespace.
func (s *Strategy) SchemaVersion(context.Context) any {
	_, version, ok := strings.Cut(s.namespace(), "eml-")
	if !ok {
		return nil
	}
	return value.Normalize(version)
}

// Keywords are the plain keywords followed by the dataset annotations as
// DefinedTerms.
func (s *Strategy) Keywords(context.Context) any {
	var keywords []any
	for _, kw := range format.FindTexts(s.dataset(), "keywordSet/keyword") {
		keywords = append(keywords, kw)
	}
	for _, uri := range format.FindAll(s.dataset(), "annotation/valueURI") {
		keywords = append(keywords, value.Map{
			value.TypeKey: string(schemaorg.TypeDefinedTerm),
			"name":        format.Attr(uri, "label"),
			"url":         strings.TrimSpace(uri.Text()),
		})
	}
	return value.Normalize(keywords)
}

// Identifier is the package identifier, described as a DOI when it is one,
// followed by the alternate identifiers.
func (s *Strategy) Identifier(context.Context) any {
	var ids []any
	if id := s.packageID(); id != "" {
		if doi := doiURL(id); doi != "" {
			ids = append(ids, schemaorg.DOIIdentifier(doi))
		} else {
			ids = append(ids, id)
		}
	}
	for _, alt := range format.FindAll(s.dataset(), "alternateIdentifier") {
		id := strings.TrimSpace(alt.Text())
		switch {
		case id == "":
		case doiURL(id) != "":
			ids = append(ids, schemaorg.DOIIdentifier(doiURL(id)))
		case format.Attr(alt, "system") != "":
			ids = append(ids, schemaorg.PropertyValue(format.Attr(alt, "system"), id))
		default:
			ids = append(ids, id)
		}
	}
	return value.Single(ids)
}

// Citation lists the cited literature that can be linked.
func (s *Strategy) Citation(context.Context) any {
	var works []any
	for _, c := range format.FindAll(s.dataset(), "literatureCited/citation") {
		url := format.FindText(c, ".//distribution/online/url")
		if url == "" {
			url = doiURL(format.FindText(c, "alternateIdentifier"))
		}
		works = append(works, schemaorg.CreativeWork(url, format.FindText(c, "title")))
	}
	return value.Single(works)
}

// MeasurementTechnique is the text of the method steps.
func (s *Strategy) MeasurementTechnique(context.Context) any {
	return value.Normalize(value.LimitText(methods(format.Find(s.dataset(), "methods"))))
}

// methods joins the descriptions of the method steps, one step per
// paragraph.
func methods(el *etree.Element) string {
	var steps []string
	for _, desc := range format.FindAll(el, "methodStep/description") {
		if text := paragraphs(desc); text != "" {
			steps = append(steps, text)
		}
	}
	return strings.Join(steps, "\n\n")
}

// paragraphs renders a TextType element: para and section children become
// paragraphs, and an element holding only text is returned trimmed.
func paragraphs(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var out []string
	for _, p := range el.FindElements(".//para") {
		if text := helpers.NormalizeWhitespace(format.DeepText(p)); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return helpers.NormalizeWhitespace(format.DeepText(el))
	}
	return strings.Join(out, "\n\n")
}

// =============================================================================
// ACCESS AND RIGHTS
// =============================================================================

// IsAccessibleForFree is true when the access rules allow the public to
// read, and false when access rules exist without such an allowance.
func (s *Strategy) IsAccessibleForFree(context.Context) any {
	if s.doc == nil {
		return nil
	}
	access := format.Find(s.doc.Root(), "access")
	if access == nil {
		return nil
	}
	for _, allow := range format.FindAll(access, "allow") {
		if !strings.EqualFold(format.FindText(allow, "principal"), "public") {
			continue
		}
		switch format.FindText(allow, "permission") {
		case "read", "all":
			return true
		}
	}
	return false
}

// License lists the licensed URLs, resolving license names through the
// license table. Without them it falls back to the intellectual rights
// statement.
func (s *Strategy) License(context.Context) any {
	var licenses []any
	for _, l := range format.FindAll(s.dataset(), "licensed") {
		if url := format.FindText(l, "url"); url != "" {
			licenses = append(licenses, url)
			continue
		}
		if known, ok := helpers.LookupLicense(format.FindText(l, "identifier")); ok {
			licenses = append(licenses, known.URL())
		} else if known, ok := helpers.LookupLicense(format.FindText(l, "licenseName")); ok {
			licenses = append(licenses, known.URL())
		}
	}
	if len(licenses) > 0 {
		return value.Single(licenses)
	}

	rights := paragraphs(format.Find(s.dataset(), "intellectualRights"))
	if known, ok := helpers.LookupLicense(rights); ok {
		return known.URL()
	}
	return value.Normalize(value.LimitText(rights))
}

// =============================================================================
// FUNDING
// =============================================================================

// Funding describes each award, or the legacy project funding paragraphs
// when there are no awards.
func (s *Strategy) Funding(context.Context) any {
	var grants []any
	for _, award := range format.FindAll(s.dataset(), ".//project/award") {
		var funderID any
		if id := format.FindText(award, "funderIdentifier"); id != "" {
			funderID = id
		}
		grants = append(grants, value.Map{
			value.TypeKey: string(schemaorg.TypeMonetaryGrant),
			"identifier":  format.FindText(award, "awardNumber"),
			"name":        format.FindText(award, "title"),
			"url":         format.FindText(award, "awardUrl"),
			"funder":      schemaorg.Organization(format.FindText(award, "funderName"), funderID),
		})
	}
	if len(grants) > 0 {
		return value.Single(grants)
	}

	for _, funding := range format.FindAll(s.dataset(), ".//project/funding") {
		grants = append(grants, value.Map{
			value.TypeKey: string(schemaorg.TypeMonetaryGrant),
			"name":        paragraphs(funding),
		})
	}
	return value.Single(grants)
}
