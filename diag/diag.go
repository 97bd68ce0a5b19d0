// Package diag collects the soft errors of a single conversion.
//
// A Ledger is created per conversion and handed to everything that may hit
// a recoverable problem: unresolved cross-references, inconsistent dates,
// unreachable remote services. Nothing in a Ledger aborts the conversion.
package diag

import (
	"fmt"
	"log/slog"
	"sync"
)

// Kind classifies a ledger entry.
type Kind int

const (
	// UnresolvedReference is an identifier with no record in the corpus.
	UnresolvedReference Kind = iota + 1

	// DateInconsistency is a release date older than a revision date.
	DateInconsistency

	// NetworkFailure is a remote lookup that timed out or failed.
	NetworkFailure

	// MalformedField is a value that was present but could not be used.
	MalformedField
)

func (k Kind) String() string {
	switch k {
	case UnresolvedReference:
		return "unresolved-reference"
	case DateInconsistency:
		return "date-inconsistency"
	case NetworkFailure:
		return "network-error"
	case MalformedField:
		return "malformed-field"
	default:
		return "unknown"
	}
}

// Entry is one recorded problem.
type Entry struct {
	Kind Kind `json:"-"`

	// Target is the identifier, path or URL the problem is about.
	Target string `json:"target"`

	Detail string `json:"detail,omitempty"`
}

func (e Entry) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Target)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Target, e.Detail)
}

// Ledger accumulates entries. The zero value is ready to use and a nil
// *Ledger silently drops everything.
type Ledger struct {
	mu      sync.Mutex
	entries []Entry
	seen    map[Entry]bool
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add records an entry once. Duplicate entries are ignored.
func (l *Ledger) Add(e Entry) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen == nil {
		l.seen = make(map[Entry]bool)
	}
	if l.seen[e] {
		return
	}
	l.seen[e] = true
	l.entries = append(l.entries, e)
	slog.Warn("conversion diagnostic", "kind", e.Kind.String(), "target", e.Target, "detail", e.Detail)
}

// Unresolved records an identifier that could not be found.
func (l *Ledger) Unresolved(id, path string) {
	l.Add(Entry{Kind: UnresolvedReference, Target: id, Detail: path})
}

// Inconsistent records a release date that is older than a revision.
func (l *Ledger) Inconsistent(release, latest string) {
	l.Add(Entry{Kind: DateInconsistency, Target: release, Detail: "latest revision " + latest})
}

// Network records a failed remote lookup.
func (l *Ledger) Network(target string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	l.Add(Entry{Kind: NetworkFailure, Target: target, Detail: detail})
}

// Malformed records a field that was present but unusable.
func (l *Ledger) Malformed(field, detail string) {
	l.Add(Entry{Kind: MalformedField, Target: field, Detail: detail})
}

// Entries returns a copy of all entries in the order they were added.
func (l *Ledger) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Filter returns the entries of one kind.
func (l *Ledger) Filter(k Kind) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Targets returns the targets of the entries of one kind.
func (l *Ledger) Targets(k Kind) []string {
	var out []string
	for _, e := range l.Filter(k) {
		out = append(out, e.Target)
	}
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
