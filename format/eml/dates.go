package eml

import (
	"context"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/value"
)

// parsedDate is a dataset date together with the precision it was written
// in.
type parsedDate struct {
	at   time.Time
	text string
}

// parseDate accepts ISO 8601 dates and timestamps, bare years, and the
// free-form dates found in hand-written documents. The rendered text keeps
// the precision of the input.
func parseDate(raw string) (parsedDate, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return parsedDate{}, false
	}
	if t, err := helpers.ParseDateTime(raw); err == nil {
		if strings.Contains(raw, "T") {
			return parsedDate{at: t, text: helpers.FormatDateTime(t)}, true
		}
		return parsedDate{at: t, text: helpers.FormatDate(t)}, true
	}
	t, err := helpers.ParseLenient(raw)
	if err != nil {
		return parsedDate{}, false
	}
	if len(raw) == 4 {
		return parsedDate{at: t, text: raw}, true
	}
	return parsedDate{at: t, text: helpers.FormatDate(t)}, true
}

func (s *Strategy) pubDate() (parsedDate, bool) {
	d := s.cache.Get("pubDate", func() any {
		raw := format.FindText(s.dataset(), "pubDate")
		d, ok := parseDate(raw)
		if !ok && raw != "" {
			s.malformed("pubDate", raw)
		}
		return d
	}).(parsedDate)
	return d, !d.at.IsZero()
}

// DatePublished is the publication date.
func (s *Strategy) DatePublished(context.Context) any {
	d, ok := s.pubDate()
	if !ok {
		return nil
	}
	return d.text
}

// DateModified is the latest of the publication date and the dates of the
// maintenance change history.
func (s *Strategy) DateModified(context.Context) any {
	latest, _ := s.pubDate()
	for _, raw := range format.FindTexts(s.dataset(), "maintenance/changeHistory/changeDate") {
		d, ok := parseDate(raw)
		if !ok {
			continue
		}
		if d.at.After(latest.at) {
			latest = d
		}
	}
	return value.Normalize(latest.text)
}
