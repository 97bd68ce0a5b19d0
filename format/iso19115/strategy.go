package iso19115

import (
	"context"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

var subjectTags = []string{"MD_Metadata", "MI_Metadata"}

var urlRegex = regexp.MustCompile(`https?://[^\s<>"]+`)

// Strategy answers property queries for one ISO 19139 record.
//
// Only the identification, extent, constraint and distribution sections are
// read. Everything the record could carry beyond them is left to overrides.
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

// Dialect returns format.DialectISO19115.
func (s *Strategy) Dialect() format.Dialect { return format.DialectISO19115 }

func (s *Strategy) metadata() *etree.Element {
	return s.subject.Element()
}

// identification is the first identificationInfo section, whichever kind
// of identification it holds.
func (s *Strategy) identification() *etree.Element {
	return format.Find(s.metadata(), "identificationInfo/*")
}

func (s *Strategy) citation() *etree.Element {
	return format.Find(s.identification(), "citation/CI_Citation")
}

// text reads a gco:CharacterString or gmx:Anchor property.
func text(el *etree.Element, path string) string {
	prop := format.Find(el, path)
	if prop == nil {
		return ""
	}
	if t := format.FindText(prop, "CharacterString"); t != "" {
		return t
	}
	return format.FindText(prop, "Anchor")
}

// codeListValue reads the codeListValue attribute of a code list property.
func codeListValue(el *etree.Element, path string) string {
	code := format.Find(el, path+"/*")
	if code == nil {
		return ""
	}
	if v := format.Attr(code, "codeListValue"); v != "" {
		return v
	}
	return strings.TrimSpace(code.Text())
}

// =============================================================================
// DESCRIPTIVE PROPERTIES
// =============================================================================

// ID is the resolver URL of a DOI among the citation identifiers.
func (s *Strategy) ID(context.Context) any {
	for _, code := range s.citationIdentifiers() {
		if doi := doiURL(code); doi != "" {
			return doi
		}
	}
	return nil
}

func (s *Strategy) Name(context.Context) any {
	return value.Normalize(helpers.NormalizeWhitespace(text(s.citation(), "title")))
}

func (s *Strategy) Description(context.Context) any {
	return value.Normalize(value.LimitText(text(s.identification(), "abstract")))
}

func (s *Strategy) citationIdentifiers() []string {
	var codes []string
	for _, id := range format.FindAll(s.citation(), "identifier/*") {
		if code := text(id, "code"); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// Identifier is the file identifier followed by the citation identifiers.
// DOIs are described as such.
func (s *Strategy) Identifier(context.Context) any {
	var ids []any
	if file := text(s.metadata(), "fileIdentifier"); file != "" {
		ids = append(ids, file)
	}
	for _, code := range s.citationIdentifiers() {
		if doi := doiURL(code); doi != "" {
			ids = append(ids, schemaorg.DOIIdentifier(doi))
			continue
		}
		ids = append(ids, code)
	}
	return value.Single(ids)
}

func doiURL(code string) string {
	code = strings.TrimSpace(code)
	switch {
	case strings.HasPrefix(strings.ToLower(code), "doi:"):
		return "https://doi.org/" + strings.TrimSpace(code[len("doi:"):])
	case strings.Contains(code, "doi.org/10."):
		return code
	case strings.HasPrefix(code, "10.") && strings.Contains(code, "/"):
		return "https://doi.org/" + code
	}
	return ""
}

// Keywords lists the descriptive keywords. Anchored keywords become
// DefinedTerms in the set named by their thesaurus.
func (s *Strategy) Keywords(context.Context) any {
	var keywords []any
	for _, group := range format.FindAll(s.identification(), "descriptiveKeywords/MD_Keywords") {
		thesaurus := text(group, "thesaurusName/CI_Citation/title")
		for _, kw := range format.FindAll(group, "keyword") {
			if anchor := format.Find(kw, "Anchor"); anchor != nil {
				term := value.Map{
					value.TypeKey: string(schemaorg.TypeDefinedTerm),
					"name":        strings.TrimSpace(anchor.Text()),
					"url":         format.Attr(anchor, "xlink:href"),
				}
				if thesaurus != "" {
					term["inDefinedTermSet"] = thesaurus
				}
				keywords = append(keywords, term)
				continue
			}
			keywords = append(keywords, format.FindText(kw, "CharacterString"))
		}
	}
	return value.Normalize(keywords)
}

// =============================================================================
// DATES
// =============================================================================

// citationDates maps each CI_DateTypeCode to the dates of that type.
func (s *Strategy) citationDates() map[string][]time.Time {
	return s.cache.Get("dates", func() any {
		dates := make(map[string][]time.Time)
		for _, d := range format.FindAll(s.citation(), "date/CI_Date") {
			kind := codeListValue(d, "dateType")
			raw := format.FindText(d, "date/Date")
			if raw == "" {
				raw = format.FindText(d, "date/DateTime")
			}
			if raw == "" {
				continue
			}
			t, err := helpers.ParseLenient(raw)
			if err != nil {
				slog.Debug("unparseable citation date", "path", s.path, "value", raw, "err", err)
				s.opts.Ledger.Malformed("CI_Date", raw)
				continue
			}
			dates[kind] = append(dates[kind], t)
		}
		return dates
	}).(map[string][]time.Time)
}

func (s *Strategy) DateCreated(context.Context) any {
	dates := s.citationDates()["creation"]
	if len(dates) == 0 {
		return nil
	}
	return helpers.FormatDate(slices.MinFunc(dates, time.Time.Compare))
}

// DateModified is the latest revision date, falling back to the record's
// date stamp.
func (s *Strategy) DateModified(context.Context) any {
	if dates := s.citationDates()["revision"]; len(dates) > 0 {
		return helpers.FormatDate(slices.MaxFunc(dates, time.Time.Compare))
	}
	stamp := format.FindText(s.metadata(), "dateStamp/Date")
	if stamp == "" {
		stamp = format.FindText(s.metadata(), "dateStamp/DateTime")
	}
	if t, err := helpers.ParseLenient(stamp); err == nil && stamp != "" {
		return helpers.FormatDate(t)
	}
	return nil
}

func (s *Strategy) DatePublished(context.Context) any {
	dates := s.citationDates()["publication"]
	if len(dates) == 0 {
		return nil
	}
	return helpers.FormatDate(slices.MinFunc(dates, time.Time.Compare))
}

// =============================================================================
// EXTENT
// =============================================================================

// SpatialCoverage describes each bounding box of the extents as a Place.
func (s *Strategy) SpatialCoverage(context.Context) any {
	var places []any
	for _, extent := range format.FindAll(s.identification(), "extent/EX_Extent") {
		description := text(extent, "description")
		for _, box := range format.FindAll(extent, "geographicElement/EX_GeographicBoundingBox") {
			region := helpers.ClassifyRegion(helpers.Bounds{
				West:  format.FindText(box, "westBoundLongitude/Decimal"),
				East:  format.FindText(box, "eastBoundLongitude/Decimal"),
				South: format.FindText(box, "southBoundLatitude/Decimal"),
				North: format.FindText(box, "northBoundLatitude/Decimal"),
			})
			places = append(places, value.Map{
				value.TypeKey: string(schemaorg.TypePlace),
				"description": description,
				"geo":         region.Node(),
			})
		}
	}
	return value.Single(places)
}

// TemporalCoverage renders each TimePeriod as an interval. An
// indeterminate "now" end leaves the interval open.
func (s *Strategy) TemporalCoverage(context.Context) any {
	var out []any
	for _, period := range format.FindAll(s.identification(), "extent/EX_Extent/temporalElement/EX_TemporalExtent/extent/TimePeriod") {
		out = append(out, helpers.BuildInterval(position(period, "beginPosition"), position(period, "endPosition")))
	}
	return value.Single(out)
}

func position(period *etree.Element, tag string) helpers.Instant {
	el := format.Find(period, tag)
	if el == nil {
		el = format.Find(period, strings.TrimSuffix(tag, "Position")+"/TimeInstant/timePosition")
	}
	if el == nil {
		return helpers.Instant{}
	}
	raw := strings.TrimSpace(el.Text())
	if raw == "" {
		return helpers.Instant{}
	}
	return helpers.Instant{Calendar: helpers.TrimDateTime(raw)}
}

// =============================================================================
// CONSTRAINTS AND DISTRIBUTION
// =============================================================================

// License lists the URLs named by the use limitations and other
// constraints. A constraint naming a known license by its identifier or
// full name gives that license's URL.
func (s *Strategy) License(context.Context) any {
	var licenses []any
	seen := make(map[string]bool)
	add := func(url string) {
		url = strings.TrimRight(url, ".,;)")
		if url != "" && !seen[url] {
			seen[url] = true
			licenses = append(licenses, url)
		}
	}
	for _, constraints := range format.FindAll(s.identification(), "resourceConstraints/*") {
		props := format.FindAll(constraints, "useLimitation")
		props = append(props, format.FindAll(constraints, "otherConstraints")...)
		for _, prop := range props {
			if anchor := format.Find(prop, "Anchor"); anchor != nil {
				add(format.Attr(anchor, "xlink:href"))
			}
			statement := strings.TrimSpace(format.DeepText(prop))
			if known, ok := helpers.LookupLicense(statement); ok {
				add(known.URL())
				continue
			}
			for _, url := range urlRegex.FindAllString(statement, -1) {
				add(url)
			}
		}
	}
	return value.Single(licenses)
}

// Distribution describes the online resources of the transfer options as
// DataDownloads. Information pages are skipped.
func (s *Strategy) Distribution(context.Context) any {
	dist := format.Find(s.metadata(), "distributionInfo/MD_Distribution")
	formatName := text(dist, "distributionFormat/MD_Format/name")

	var downloads []any
	for _, online := range format.FindAll(dist, "transferOptions/MD_DigitalTransferOptions/onLine/CI_OnlineResource") {
		if codeListValue(online, "function") == "information" {
			continue
		}
		url := format.FindText(online, "linkage/URL")
		encoding := helpers.MediaType(url)
		if encoding == "" {
			encoding = formatName
		}
		dd := schemaorg.DataDownload(url, encoding)
		if dd == nil {
			continue
		}
		dd["name"] = text(online, "name")
		dd["description"] = text(online, "description")
		downloads = append(downloads, dd)
	}
	return value.Single(downloads)
}
