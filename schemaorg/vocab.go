package schemaorg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/lehigh-university-libraries/soso/value"
)

// Vocab is the default vocabulary of every output graph.
const Vocab = "https://schema.org/"

// ContextKey is the JSON-LD context member.
const ContextKey = "@context"

// IDKey is the JSON-LD node identifier member.
const IDKey = "@id"

// VocabKey is never pruned from the context.
const VocabKey = "@vocab"

// prefixes declares every vocabulary the strategies may use, in output
// order.
var prefixes = []struct{ Prefix, IRI string }{
	{"prov", "http://www.w3.org/ns/prov#"},
	{"provone", "http://purl.dataone.org/provone/2015/01/15/ontology#"},
	{"sosa", "http://www.w3.org/ns/sosa/"},
	{"time", "http://www.w3.org/2006/time#"},
	{"xsd", "http://www.w3.org/2001/XMLSchema#"},
	{"spdx", "http://spdx.org/rdf/terms#"},
}

// Context returns a fresh copy of the full context block.
func Context() value.Map {
	ctx := value.Map{VocabKey: Vocab}
	for _, p := range prefixes {
		ctx[p.Prefix] = p.IRI
	}
	return ctx
}

// Properties lists the recognized Dataset properties in the order the
// graph assembler queries them.
var Properties = []string{
	"name",
	"description",
	"url",
	"sameAs",
	"version",
	"isAccessibleForFree",
	"keywords",
	"identifier",
	"citation",
	"variableMeasured",
	"includedInDataCatalog",
	"subjectOf",
	"distribution",
	"potentialAction",
	"dateCreated",
	"dateModified",
	"datePublished",
	"expires",
	"temporalCoverage",
	"spatialCoverage",
	"creator",
	"contributor",
	"provider",
	"publisher",
	"funding",
	"license",
	"wasRevisionOf",
	"wasDerivedFrom",
	"isBasedOn",
	"wasGeneratedBy",
	"checksum",
	"alternateName",
	"mentions",
	"isPartOf",
	"measurementMethod",
	"measurementTechnique",
	"temporal",
	"schemaVersion",
}

// IsProperty reports whether name is a recognized Dataset property.
func IsProperty(name string) bool {
	return slices.Contains(Properties, name)
}

// IsGraphKey reports whether name may appear at the top level of an output
// graph: a recognized property or one of the identity members.
func IsGraphKey(name string) bool {
	switch name {
	case ContextKey, IDKey, value.TypeKey:
		return true
	}
	return IsProperty(name)
}

// PruneContext removes prefixes that nothing in the graph refers to. A
// prefix is in use when "prefix:" occurs anywhere in the serialized graph
// outside the context itself. The vocabulary entry is always kept.
func PruneContext(graph value.Map) error {
	ctx, ok := graph[ContextKey].(value.Map)
	if !ok {
		return nil
	}

	body := make(value.Map, len(graph))
	for k, v := range graph {
		if k != ContextKey {
			body[k] = v
		}
	}
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("serializing graph body: %w", err)
	}
	text := string(data)

	for key := range ctx {
		if key == VocabKey {
			continue
		}
		if !strings.Contains(text, key+":") {
			delete(ctx, key)
		}
	}
	return nil
}
