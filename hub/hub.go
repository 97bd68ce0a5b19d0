// Package hub assembles the schema.org Dataset graph of one metadata record.
//
// Convert opens the record with its dialect strategy, queries every
// accessor in schemaorg.Properties order, applies caller overrides, drops
// absent values and serializes the result:
//
//	res, err := hub.Convert(ctx, "record.xml", format.DialectSPASE, &hub.Options{
//	    CorpusRoot: "/data/spase",
//	    Overrides:  map[string]any{"license": "CC-BY-4.0"},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.JSON)
//	for _, e := range res.Diagnostics {
//	    fmt.Fprintln(os.Stderr, e)
//	}
package hub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/soso/diag"
	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/resolve"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// DatasetType is the @type of every graph.
const DatasetType = "Dataset"

// Options configures one conversion.
type Options struct {
	// Overrides replaces or supplies recognized properties. Keys that are
	// not Dataset properties are ignored.
	Overrides map[string]any

	// CorpusRoot is the directory local cross-references resolve against.
	// Empty disables local resolution.
	CorpusRoot string

	// Client performs remote lookups. Nil keeps the conversion offline.
	Client *resolve.Client

	// Pretty indents the serialized graph.
	Pretty bool
}

// Result is the outcome of a successful conversion.
type Result struct {
	// Graph is the assembled document, including @context, @id and @type.
	Graph value.Map

	// JSON is Graph serialized as JSON-LD.
	JSON []byte

	// Diagnostics lists the soft failures met while converting.
	Diagnostics []diag.Entry
}

// Convert reads the record at path as dialect d and returns its graph. A
// record that cannot be opened fails the whole conversion; nothing partial
// is returned.
func Convert(ctx context.Context, path string, d format.Dialect, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}

	fopts := format.NewOptions()
	fopts.Client = opts.Client
	if opts.CorpusRoot != "" {
		fopts.Corpus = resolve.Corpus{Root: opts.CorpusRoot}
	}

	strategy, err := format.Open(d, path, fopts)
	if err != nil {
		return nil, err
	}

	graph := Assemble(ctx, strategy, opts.Overrides)
	if err := schemaorg.PruneContext(graph); err != nil {
		return nil, fmt.Errorf("pruning context of %s: %w", path, err)
	}
	if res := Validate(graph); !res.IsValid() {
		return nil, fmt.Errorf("assembling %s: %w", path, res.Error())
	}

	data, err := Marshal(graph, opts.Pretty)
	if err != nil {
		return nil, fmt.Errorf("serializing %s: %w", path, err)
	}

	slog.Debug("converted record", "path", path, "dialect", d, "properties", len(graph)-3, "diagnostics", fopts.Ledger.Len())
	return &Result{
		Graph:       graph,
		JSON:        data,
		Diagnostics: fopts.Ledger.Entries(),
	}, nil
}

// Assemble builds the graph of an opened strategy. Overrides for
// recognized properties replace whatever the strategy produced.
func Assemble(ctx context.Context, s format.Strategy, overrides map[string]any) value.Map {
	graph := value.Map{
		schemaorg.ContextKey: schemaorg.Context(),
		value.TypeKey:        DatasetType,
	}

	accessors := Accessors(s)
	for _, prop := range schemaorg.Properties {
		get, ok := accessors[prop]
		if !ok {
			continue
		}
		graph[prop] = get(ctx)
	}

	for key, v := range overrides {
		if !schemaorg.IsProperty(key) {
			slog.Warn("ignoring override of unrecognized property", "key", key)
			continue
		}
		graph[key] = v
	}

	for _, prop := range schemaorg.Properties {
		v := value.Normalize(graph[prop])
		if v == nil {
			delete(graph, prop)
			continue
		}
		graph[prop] = v
	}

	graph[schemaorg.IDKey] = NodeID(s.ID(ctx))
	return graph
}
