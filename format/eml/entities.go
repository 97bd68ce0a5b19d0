package eml

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// Data entity elements of a dataset.
var entityTags = []string{"dataTable", "otherEntity", "spatialRaster", "spatialVector", "storedProcedure", "view"}

const checksumAlgorithmPrefix = "spdx.org/rdf/terms/#checksumAlgorithm_"

func (s *Strategy) entities() []*etree.Element {
	var out []*etree.Element
	for _, child := range childElements(s.dataset()) {
		for _, tag := range entityTags {
			if child.Tag == tag {
				out = append(out, child)
			}
		}
	}
	return out
}

func childElements(el *etree.Element) []*etree.Element {
	if el == nil {
		return nil
	}
	return el.ChildElements()
}

// contentURL is the online URL of a physical description, unless it is
// marked as an information page.
func contentURL(physical *etree.Element) string {
	url := format.Find(physical, "distribution/online/url")
	if url == nil || format.Attr(url, "function") == "information" {
		return ""
	}
	return strings.TrimSpace(url.Text())
}

// contentSize is the size with its unit, e.g. "10 kilobytes".
func contentSize(physical *etree.Element) string {
	size := format.Find(physical, "size")
	if size == nil {
		return ""
	}
	n := strings.TrimSpace(size.Text())
	if n == "" {
		return ""
	}
	if unit := format.Attr(size, "unit"); unit != "" {
		return n + " " + unit
	}
	return n
}

// encodingFormat guesses the media type from the object name, falling back
// to the declared format name.
func encodingFormat(physical *etree.Element) string {
	if mt := helpers.MediaType(format.FindText(physical, "objectName")); mt != "" {
		return mt
	}
	return format.FindText(physical, "dataFormat/externallyDefinedFormat/formatName")
}

// checksums describes the authentication values whose method is an SPDX
// checksum algorithm. Other methods are not recognized.
func checksums(physical *etree.Element) []any {
	var out []any
	for _, auth := range format.FindAll(physical, "authentication") {
		_, algorithm, ok := strings.Cut(format.Attr(auth, "method"), checksumAlgorithmPrefix)
		sum := strings.TrimSpace(auth.Text())
		if !ok || algorithm == "" || sum == "" {
			continue
		}
		out = append(out, value.Map{
			value.TypeKey:        string(schemaorg.TypeSpdxChecksum),
			"spdx:algorithm":     value.Map{schemaorg.IDKey: "spdx:checksumAlgorithm_" + algorithm},
			"spdx:checksumValue": sum,
		})
	}
	return out
}

// Distribution describes each data entity that has a downloadable object.
func (s *Strategy) Distribution(context.Context) any {
	var downloads []any
	for _, entity := range s.entities() {
		physical := format.Find(entity, "physical")
		dd := schemaorg.DataDownload(contentURL(physical), encodingFormat(physical))
		if dd == nil {
			continue
		}
		dd["name"] = format.FindText(entity, "entityName")
		dd["description"] = paragraphs(format.Find(entity, "entityDescription"))
		dd["contentSize"] = contentSize(physical)
		dd["spdx:checksum"] = value.Single(checksums(physical))
		downloads = append(downloads, dd)
	}
	return value.Single(downloads)
}

// Checksum is the checksum of the data when the dataset consists of a
// single data entity.
func (s *Strategy) Checksum(context.Context) any {
	entities := s.entities()
	if len(entities) != 1 {
		return nil
	}
	return value.Single(checksums(format.Find(entities[0], "physical")))
}

// VariableMeasured describes the attributes of every data entity.
func (s *Strategy) VariableMeasured(context.Context) any {
	var vars []any
	for _, entity := range s.entities() {
		for _, attr := range format.FindAll(entity, "attributeList/attribute") {
			vars = append(vars, variable(attr))
		}
	}
	return value.Normalize(vars)
}

func variable(attr *etree.Element) value.Map {
	unit := format.FindText(attr, ".//unit/standardUnit")
	if unit == "" {
		unit = format.FindText(attr, ".//unit/customUnit")
	}
	pv := value.Map{
		value.TypeKey:   string(schemaorg.TypePropertyValue),
		"name":          format.FindText(attr, "attributeName"),
		"alternateName": format.FindText(attr, "attributeLabel"),
		"description":   paragraphs(format.Find(attr, "attributeDefinition")),
		"unitText":      unit,
		"propertyID":    format.FindText(attr, "annotation/valueURI"),
	}
	bounds := format.Find(attr, ".//numericDomain/bounds")
	if lo := value.AsNumeric(format.FindText(bounds, "minimum")); lo != nil {
		pv["minValue"] = lo
	}
	if hi := value.AsNumeric(format.FindText(bounds, "maximum")); hi != nil {
		pv["maxValue"] = hi
	}
	if m := methods(format.Find(attr, "methods")); m != "" {
		pv["measurementTechnique"] = m
	}
	return pv
}

// SubjectOf describes the EML document itself.
func (s *Strategy) SubjectOf(ctx context.Context) any {
	encoding := s.documentFormat()
	if encoding == nil {
		return nil
	}
	return value.Normalize(value.Map{
		value.TypeKey:    string(schemaorg.TypeDataDownload),
		"name":           "EML metadata for dataset",
		"description":    "EML metadata describing the dataset",
		"encodingFormat": encoding,
		"contentUrl":     s.URL(ctx),
		"dateModified":   s.DateModified(ctx),
	})
}

// documentFormat is the media type of the document paired with the EML
// namespace.
func (s *Strategy) documentFormat() []any {
	ns := s.namespace()
	if ns == "" {
		return nil
	}
	return []any{"application/xml", ns}
}
