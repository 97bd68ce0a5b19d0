package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/soso/diag"
)

// Stub is a partial description of a related resource.
type Stub struct {
	ID          string
	URL         string
	Name        string
	Description string
	License     any
	Creator     any
	Kind        Kind
}

// Loader reads the local record at path and describes it. It is supplied
// by the dialect that owns the corpus and must not follow references of its
// own.
type Loader func(ctx context.Context, path string) (Stub, error)

// CreatorFormatter turns harvested remote creators into graph values.
type CreatorFormatter func([]Creator) any

// Resolver follows references exactly one hop. Every failure it can
// recover from is written to Ledger.
type Resolver struct {
	Corpus Corpus

	// Client performs remote lookups; nil disables them.
	Client *Client

	Ledger *diag.Ledger

	Load           Loader
	FormatCreators CreatorFormatter
}

// Resolve describes the resource an identifier names. Local identifiers are
// read from the corpus; anything else is classified remotely. The second
// result is false when nothing could be described, in which case the
// reference has been recorded in the ledger.
func (r *Resolver) Resolve(ctx context.Context, id string) (Stub, bool) {
	if r == nil || id == "" {
		return Stub{}, false
	}
	if IsLocal(id) {
		return r.resolveLocal(ctx, id)
	}
	stub := Stub{ID: id, URL: id}
	r.classify(ctx, &stub, true)
	return stub, true
}

func (r *Resolver) resolveLocal(ctx context.Context, id string) (Stub, bool) {
	path, err := r.Corpus.Locate(id)
	if err != nil {
		r.Ledger.Unresolved(id, path)
		return Stub{}, false
	}
	if r.Load == nil {
		return Stub{ID: id}, true
	}
	stub, err := r.Load(ctx, path)
	if err != nil {
		slog.Warn("related record unreadable", "id", id, "path", path, "err", err)
		r.Ledger.Malformed(id, err.Error())
		return Stub{}, false
	}
	if stub.URL == "" {
		stub.URL = id
	}
	stub.ID = stub.URL
	r.classify(ctx, &stub, false)
	return stub, true
}

// classify sets the stub kind. Harvested fields fill what a remote
// DataCite record supplies for datasets.
func (r *Resolver) classify(ctx context.Context, stub *Stub, harvest bool) {
	if strings.Contains(stub.URL, landingHost) {
		stub.Kind = landingKind(stub.URL)
		return
	}
	if r.Client == nil {
		return
	}
	remote, err := r.Client.Classify(ctx, stub.URL)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			r.Ledger.Network(stub.URL, err)
		} else {
			r.Ledger.Malformed(stub.URL, err.Error())
		}
		return
	}
	stub.Kind = remote.Kind
	if !harvest || remote.Kind != KindDataset {
		return
	}
	stub.Name = remote.Name
	stub.Description = remote.Description
	if len(remote.License) > 0 {
		stub.License = remote.License
	}
	if r.FormatCreators != nil && len(remote.Creators) > 0 {
		stub.Creator = r.FormatCreators(remote.Creators)
	}
}
