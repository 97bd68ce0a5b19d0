// Package format defines the contract every metadata dialect strategy
// implements and the registry that opens documents by dialect.
package format

import (
	"context"

	"github.com/lehigh-university-libraries/soso/diag"
	"github.com/lehigh-university-libraries/soso/resolve"
)

// Format describes a dialect plugin.
type Format interface {
	// Dialect returns the dialect this plugin handles
	Dialect() Dialect

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if the input looks like this dialect
	CanParse(peek []byte) bool

	// Open parses the document at path into a strategy
	Open(path string, opts *Options) (Strategy, error)
}

// Strategy answers one query per output property. Every accessor returns a
// normalized property value or nil; none of them fail. Accessors may be
// called any number of times in any order.
type Strategy interface {
	Dialect() Dialect

	// ID is the node identifier of the dataset.
	ID(ctx context.Context) any

	Name(ctx context.Context) any
	Description(ctx context.Context) any
	URL(ctx context.Context) any
	SameAs(ctx context.Context) any
	Version(ctx context.Context) any
	IsAccessibleForFree(ctx context.Context) any
	Keywords(ctx context.Context) any
	Identifier(ctx context.Context) any
	Citation(ctx context.Context) any
	VariableMeasured(ctx context.Context) any
	IncludedInDataCatalog(ctx context.Context) any
	SubjectOf(ctx context.Context) any
	Distribution(ctx context.Context) any
	PotentialAction(ctx context.Context) any
	DateCreated(ctx context.Context) any
	DateModified(ctx context.Context) any
	DatePublished(ctx context.Context) any
	Expires(ctx context.Context) any
	TemporalCoverage(ctx context.Context) any
	SpatialCoverage(ctx context.Context) any
	Creator(ctx context.Context) any
	Contributor(ctx context.Context) any
	Provider(ctx context.Context) any
	Publisher(ctx context.Context) any
	Funding(ctx context.Context) any
	License(ctx context.Context) any
	WasRevisionOf(ctx context.Context) any
	WasDerivedFrom(ctx context.Context) any
	IsBasedOn(ctx context.Context) any
	WasGeneratedBy(ctx context.Context) any
	Checksum(ctx context.Context) any

	AlternateName(ctx context.Context) any
	Mentions(ctx context.Context) any
	IsPartOf(ctx context.Context) any
	MeasurementMethod(ctx context.Context) any
	MeasurementTechnique(ctx context.Context) any
	Temporal(ctx context.Context) any
	SchemaVersion(ctx context.Context) any
}

// Options configures a strategy.
type Options struct {
	// Corpus is the root of the local record tree for cross-references.
	Corpus resolve.Corpus

	// Client performs remote lookups; nil keeps the conversion offline.
	Client *resolve.Client

	// Ledger collects soft failures. It is owned by the caller and must not
	// be shared between concurrent conversions.
	Ledger *diag.Ledger

	// Nested marks a strategy opened to describe a related record. Nested
	// strategies do not follow references.
	Nested bool
}

// NewOptions creates Options with a fresh ledger.
func NewOptions() *Options {
	return &Options{Ledger: diag.New()}
}

// Resolver builds the one-hop reference resolver for these options. Nested
// options yield nil, which resolves nothing.
func (o *Options) Resolver(load resolve.Loader, creators resolve.CreatorFormatter) *resolve.Resolver {
	if o == nil || o.Nested {
		return nil
	}
	return &resolve.Resolver{
		Corpus:         o.Corpus,
		Client:         o.Client,
		Ledger:         o.Ledger,
		Load:           load,
		FormatCreators: creators,
	}
}

// NestedOptions derives the options used to read a related record.
func (o *Options) NestedOptions() *Options {
	n := &Options{Nested: true}
	if o != nil {
		n.Corpus = o.Corpus
		n.Ledger = o.Ledger
	}
	return n
}

// DefaultTimeout bounds every remote lookup of a conversion.
const DefaultTimeout = resolve.DefaultTimeout
