package spase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/value"
)

// revision is a dated entry of the revision history. Entries recorded
// without a time of day keep that precision in the output.
type revision struct {
	at       time.Time
	dateOnly bool
}

func (r revision) String() string {
	if r.dateOnly {
		return helpers.FormatDate(r.at)
	}
	return helpers.FormatDateTime(r.at)
}

type recordDates struct {
	release   time.Time
	revisions []revision
}

// dates reads the release date and revision history once and reports a
// release date that is older than the newest revision.
func (s *Strategy) dates() recordDates {
	return s.cache.Get("dates", func() any {
		var d recordDates
		header := format.Find(s.root(), "ResourceHeader")
		if raw := format.FindText(header, "ReleaseDate"); raw != "" {
			t, err := helpers.ParseDateTime(raw)
			if err != nil {
				s.opts.Ledger.Malformed("ReleaseDate", err.Error())
			} else {
				d.release = t
			}
		}

		var times []time.Time
		for _, raw := range format.FindTexts(header, "RevisionHistory/*/ReleaseDate") {
			t, err := helpers.ParseDateTime(raw)
			if err != nil {
				slog.Debug("skipping revision date", "path", s.path, "date", raw, "err", err)
				continue
			}
			d.revisions = append(d.revisions, revision{at: t, dateOnly: !strings.Contains(raw, "T")})
			times = append(times, t)
		}

		rec := helpers.Reconcile(d.release, times)
		if rec.Inconsistent {
			slog.Warn("release date precedes revision history",
				"path", s.path,
				"release", helpers.FormatDateTime(d.release),
				"latest", helpers.FormatDateTime(rec.Latest))
			s.opts.Ledger.Inconsistent(helpers.FormatDateTime(d.release), helpers.FormatDateTime(rec.Latest))
		}
		return d
	}).(recordDates)
}

// DateModified is the release date of the description.
func (s *Strategy) DateModified(context.Context) any {
	return value.Normalize(helpers.FormatDateTime(s.dates().release))
}

// DatePublished is the publication date, else the earliest revision.
func (s *Strategy) DatePublished(ctx context.Context) any {
	if pub := s.authorship().pubDate; pub != "" {
		return helpers.TrimDateTime(strings.Replace(pub, " ", "T", 1))
	}
	revs := s.dates().revisions
	if len(revs) == 0 {
		return nil
	}
	earliest := revs[0]
	for _, r := range revs[1:] {
		if r.at.Before(earliest.at) {
			earliest = r
		}
	}
	return earliest.String()
}

// DateCreated follows DatePublished.
func (s *Strategy) DateCreated(ctx context.Context) any {
	return s.DatePublished(ctx)
}
