package eml

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/resolve"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// source is a dataSource of the methods: a dataset the data were derived
// from.
type source struct {
	url      string
	title    string
	revision bool
}

// sources reads the data sources of the method steps. A source whose
// identifier shares this package's scope and identifier is an earlier
// revision of it.
func (s *Strategy) sources() []source {
	var out []source
	scope := ""
	if m := packageIDRegex.FindStringSubmatch(s.packageID()); m != nil {
		scope = m[1] + "."
	}
	for _, ds := range format.FindAll(s.dataset(), "methods/methodStep/dataSource") {
		url := sourceURL(ds)
		if url == "" {
			continue
		}
		src := source{url: url, title: format.FindText(ds, "title")}
		if scope != "" {
			for _, id := range format.FindTexts(ds, "alternateIdentifier") {
				if strings.HasPrefix(id, scope) {
					src.revision = true
				}
			}
		}
		out = append(out, src)
	}
	return out
}

func sourceURL(ds *etree.Element) string {
	if url := format.FindText(ds, "distribution/online/url"); url != "" {
		return url
	}
	for _, id := range format.FindTexts(ds, "alternateIdentifier") {
		if doi := doiURL(id); doi != "" {
			return doi
		}
	}
	return ""
}

func (s *Strategy) WasRevisionOf(ctx context.Context) any {
	return s.related(ctx, "wasRevisionOf", true)
}

func (s *Strategy) WasDerivedFrom(ctx context.Context) any {
	return s.related(ctx, "wasDerivedFrom", false)
}

// IsBasedOn shares its mapping with WasDerivedFrom.
func (s *Strategy) IsBasedOn(ctx context.Context) any {
	return s.WasDerivedFrom(ctx)
}

// related describes the data sources one hop. Without a remote client the
// stub carries the source's own URL and title.
func (s *Strategy) related(ctx context.Context, key string, revisions bool) any {
	return s.cache.Get(key, func() any {
		resolver := s.opts.Resolver(nil, schemaorg.CreatorsFromRemote)
		var stubs []resolve.Stub
		for _, src := range s.sources() {
			if src.revision != revisions {
				continue
			}
			stub, ok := resolver.Resolve(ctx, src.url)
			if !ok {
				stub = resolve.Stub{ID: src.url, URL: src.url}
			}
			if stub.Name == "" {
				stub.Name = src.title
			}
			stubs = append(stubs, stub)
		}
		return value.Normalize(relatedNodes(stubs))
	})
}

// relatedNodes renders stubs. Unclassified sources keep their title.
func relatedNodes(stubs []resolve.Stub) any {
	nodes := make([]any, 0, len(stubs))
	for _, stub := range stubs {
		node := schemaorg.Related(stub)
		if node == nil {
			continue
		}
		if stub.Kind == resolve.KindUnknown && stub.Name != "" {
			node["name"] = stub.Name
		}
		nodes = append(nodes, node)
	}
	return value.Single(nodes)
}
