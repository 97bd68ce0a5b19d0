package spase

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// Record-type elements, in the order a description may present them.
var subjectTags = []string{"NumericalData", "DisplayData", "Observatory", "Instrument", "Collection"}

const (
	landingPrefix = "https://spase-metadata.org/"
	modelURL      = "https://spase-group.org/data/model/spase-latest/spase-latest_xsd.htm"

	regionSetURL      = modelURL + "#Region"
	measurementSetURL = modelURL + "#MeasurementType"
	roleSetURL        = modelURL + "#Role"
)

// Strategy answers property queries for one SPASE record.
//
// Properties SPASE has no element for (version, isAccessibleForFree,
// includedInDataCatalog, expires, provider, checksum, measurementTechnique)
// are always absent.
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

// Dialect returns format.DialectSPASE.
func (s *Strategy) Dialect() format.Dialect { return format.DialectSPASE }

// root is the subject root, nil when the record describes none of the
// supported resource types.
func (s *Strategy) root() *etree.Element {
	return s.subject.Element()
}

// dataRoot is the subject root when it describes a data product. Contacts,
// access information and measurement details only count there.
func (s *Strategy) dataRoot() *etree.Element {
	root := s.root()
	if root == nil || (root.Tag != "NumericalData" && root.Tag != "DisplayData") {
		return nil
	}
	return root
}

func (s *Strategy) header(path string) string {
	return format.FindText(s.root(), "ResourceHeader/"+path)
}

// ResourceID returns the spase:// identifier of the record.
func (s *Strategy) ResourceID() string {
	return format.FindText(s.root(), "ResourceID")
}

func landingPage(resourceID string) string {
	if resourceID == "" {
		return ""
	}
	return strings.Replace(resourceID, "spase://", landingPrefix, 1)
}

func isDOI(url string) bool {
	return strings.Contains(url, "doi.org")
}

// url is the DOI when the record has one, else the landing page.
func (s *Strategy) url() string {
	if doi := s.header("DOI"); doi != "" {
		return doi
	}
	return landingPage(s.ResourceID())
}

// =============================================================================
// DESCRIPTIVE PROPERTIES
// =============================================================================

func (s *Strategy) ID(context.Context) any { return value.Normalize(s.url()) }

func (s *Strategy) URL(context.Context) any { return value.Normalize(s.url()) }

func (s *Strategy) Name(context.Context) any {
	return value.Normalize(s.header("ResourceName"))
}

func (s *Strategy) Description(context.Context) any {
	return value.Normalize(value.LimitText(s.header("Description")))
}

func (s *Strategy) AlternateName(context.Context) any {
	return value.Normalize(s.header("AlternateName"))
}

func (s *Strategy) SameAs(context.Context) any {
	return value.Single(value.Strings(format.FindTexts(s.root(), ".//PriorID")))
}

func (s *Strategy) Keywords(context.Context) any {
	return value.Normalize(value.Strings(format.FindTexts(s.root(), ".//Keyword")))
}

// SchemaVersion is the version of the SPASE model the record was written
// against.
func (s *Strategy) SchemaVersion(context.Context) any {
	if s.doc == nil {
		return nil
	}
	return value.Normalize(format.FindText(s.doc.Root(), "Version"))
}

// Identifier lists the DOI first when there is one, then the SPASE resource
// id with its landing page. A record without a ResourceID has the DOI alone.
func (s *Strategy) Identifier(context.Context) any {
	url := s.url()
	id := s.ResourceID()
	if url == "" {
		return nil
	}
	if !isDOI(url) {
		pv := schemaorg.PropertyValue("SPASE", id)
		pv["url"] = url
		return value.Normalize(pv)
	}

	if id == "" {
		return value.Normalize(schemaorg.DOIIdentifier(url))
	}
	spaseID := schemaorg.PropertyValue("SPASE", id)
	spaseID["url"] = landingPage(id)
	return value.OrderedList([]any{schemaorg.DOIIdentifier(url), spaseID})
}

func (s *Strategy) Citation(context.Context) any {
	var works []any
	for _, info := range format.FindAll(s.root(), "ResourceHeader/InformationURL") {
		work := schemaorg.CreativeWork(format.FindText(info, "URL"), format.FindText(info, "Name"))
		if work == nil {
			continue
		}
		if desc := format.FindText(info, "Description"); desc != "" {
			work["description"] = desc
		}
		works = append(works, work)
	}
	return value.Normalize(works)
}

// VariableMeasured describes each Parameter. Only the first line of a
// parameter description is kept.
func (s *Strategy) VariableMeasured(context.Context) any {
	var vars []any
	for _, param := range format.FindAll(s.root(), ".//Parameter") {
		pv := value.Map{
			value.TypeKey:   string(schemaorg.TypePropertyValue),
			"name":          format.FindText(param, "Name"),
			"description":   helpers.FirstLine(format.FindText(param, "Description")),
			"unitText":      format.FindText(param, "Units"),
			"alternateName": format.FindText(param, "ParameterKey"),
		}
		vars = append(vars, pv)
	}
	return value.Normalize(vars)
}

// SubjectOf describes the SPASE record itself as a download.
func (s *Strategy) SubjectOf(ctx context.Context) any {
	contentURL := s.url()
	if contentURL == "" {
		return nil
	}
	doi := isDOI(contentURL)
	if doi {
		contentURL = landingPage(s.ResourceID())
	}

	entry := value.Map{
		value.TypeKey:    string(schemaorg.TypeDataDownload),
		"name":           "SPASE metadata for dataset",
		"description":    "The SPASE metadata describing the indicated dataset.",
		"encodingFormat": "application/xml",
		"contentUrl":     contentURL,
		"identifier":     contentURL,
	}
	if doi {
		entry[schemaorg.IDKey] = contentURL
	}

	if names := s.metadataLicenses(); len(names) > 0 {
		var urls []any
		for _, name := range names {
			if l, ok := helpers.LookupLicense(name); ok {
				urls = append(urls, l.URL())
			}
		}
		if len(urls) > 0 {
			entry["license"] = urls
		}
		entry["dateModified"] = s.DateModified(ctx)
	}
	return value.Normalize(entry)
}

// metadataLicenses returns the rights names that apply to the description
// rather than the data.
func (s *Strategy) metadataLicenses() []string {
	if s.doc == nil {
		return nil
	}
	return format.FindTexts(s.doc.Root(), ".//MetadataRightsList/Rights/RightsName")
}

// =============================================================================
// COVERAGE
// =============================================================================

// TemporalCoverage is "start/stop", or "start/.." when the span has no
// fixed stop date.
func (s *Strategy) TemporalCoverage(context.Context) any {
	span := format.Find(s.root(), "TemporalDescription/TimeSpan")
	start := format.FindText(span, "StartDate")
	if start == "" {
		return nil
	}
	if stop := format.FindText(span, "StopDate"); stop != "" {
		return start + "/" + stop
	}
	return start + "/.."
}

func (s *Strategy) SpatialCoverage(context.Context) any {
	var places []any
	for i, region := range format.FindTexts(s.root(), "ObservedRegion") {
		keyword := value.Map{
			value.TypeKey:      string(schemaorg.TypeDefinedTerm),
			"inDefinedTermSet": schemaorg.DefinedTermSet(regionSetURL, "SPASE Region", i == 0),
			"termCode":         region,
		}
		places = append(places, value.Map{
			value.TypeKey: string(schemaorg.TypePlace),
			"keywords":    keyword,
			"name":        strings.ReplaceAll(region, ".", " "),
		})
	}
	return value.Normalize(places)
}

// Temporal pairs the cadence with a sentence explaining it.
func (s *Strategy) Temporal(context.Context) any {
	cadence := format.FindText(s.dataRoot(), "TemporalDescription/Cadence")
	if cadence == "" {
		return nil
	}
	return value.Normalize([]any{helpers.CadenceContext(cadence), cadence})
}

func (s *Strategy) MeasurementMethod(context.Context) any {
	var terms []any
	for i, code := range format.FindTexts(s.dataRoot(), "MeasurementType") {
		set := schemaorg.DefinedTermSet(measurementSetURL, "SPASE MeasurementType", i == 0)
		terms = append(terms, schemaorg.DefinedTerm(helpers.CamelWords(code), code, set))
	}
	return value.Single(terms)
}

// =============================================================================
// FUNDING AND RIGHTS
// =============================================================================

func (s *Strategy) Funding(context.Context) any {
	var grants []any
	for _, f := range format.FindAll(s.root(), ".//Funding") {
		grants = append(grants, value.Map{
			value.TypeKey: string(schemaorg.TypeMonetaryGrant),
			"funder":      schemaorg.Organization(format.FindText(f, "Agency"), nil),
			"name":        format.FindText(f, "Project"),
			"identifier":  format.FindText(f, "AwardNumber"),
		})
	}
	return value.Single(grants)
}

// License lists the distinct rights URIs of the data. It is always a list.
func (s *Strategy) License(context.Context) any {
	var uris []any
	seen := make(map[string]bool)
	for _, rights := range format.FindAll(s.root(), "AccessInformation/RightsList/Rights") {
		uri := format.FindText(rights, ".//RightsURI")
		if uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		uris = append(uris, uri)
	}
	return value.Normalize(uris)
}
