package spase

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"github.com/lehigh-university-libraries/soso/format"
	"github.com/lehigh-university-libraries/soso/helpers"
	"github.com/lehigh-university-libraries/soso/schemaorg"
	"github.com/lehigh-university-libraries/soso/value"
)

// File extensions of direct data downloads.
var dataExtensions = []string{
	"csv", "cdf", "fits", "txt", "nc", "jpeg", "png", "gif", "tar",
	"netcdf3", "netcdf4", "hdf5", "zarr", "asdf", "zip",
}

// dateTimePattern is the value pattern offered for HAPI time parameters.
const dateTimePattern = `(-?(?:[1-9][0-9]*)?[0-9]{4})-(1[0-2]|0[1-9])-` +
	`(3[01]|0[1-9]|[12][0-9])T(2[0-3]|[01][0-9]):([0-5][0-9])` +
	`:([0-5][0-9])(.[0-9]+)?(Z)?`

// accessURL is one AccessURL with the Format of its AccessInformation.
type accessURL struct {
	url      string
	name     string
	keys     []string
	encoding string
}

// downloadable reports whether the URL links a data file directly.
func (a accessURL) downloadable() bool {
	if len(a.keys) > 0 {
		return false
	}
	_, rest, ok := strings.Cut(a.url, "://")
	if !ok {
		rest = a.url
	}
	file := rest[strings.LastIndex(rest, "/")+1:]
	ext := file[strings.LastIndex(file, ".")+1:]
	return slices.Contains(dataExtensions, strings.ToLower(ext))
}

// accessURLs splits the access URLs of the record into direct downloads and
// service links. A URL listed twice keeps its first position and its last
// description.
func (s *Strategy) accessURLs() (downloads, services []accessURL) {
	var all []accessURL
	for _, info := range format.FindAll(s.dataRoot(), "AccessInformation") {
		encoding := format.FindText(info, "Format")
		for _, au := range format.FindAll(info, "AccessURL") {
			entry := readAccessURL(au, encoding)
			if entry.url == "" {
				continue
			}
			if i := slices.IndexFunc(all, func(a accessURL) bool { return a.url == entry.url }); i >= 0 {
				all[i] = entry
				continue
			}
			all = append(all, entry)
		}
	}

	for _, a := range all {
		if a.downloadable() {
			downloads = append(downloads, a)
		} else {
			services = append(services, a)
		}
	}
	return downloads, services
}

func readAccessURL(el *etree.Element, encoding string) accessURL {
	return accessURL{
		url:      format.FindText(el, "URL"),
		name:     format.FindText(el, "Name"),
		keys:     format.FindTexts(el, "ProductKey"),
		encoding: encoding,
	}
}

func (s *Strategy) Distribution(context.Context) any {
	downloads, _ := s.accessURLs()
	var out []any
	for _, d := range downloads {
		dd := schemaorg.DataDownload(d.url, d.encoding)
		if d.name != "" {
			dd["name"] = d.name
		}
		out = append(out, dd)
	}
	return value.Single(out)
}

// PotentialAction describes every access URL that is not a direct
// download as a search action. HAPI servers get a URL template with time
// range parameters.
func (s *Strategy) PotentialAction(ctx context.Context) any {
	_, services := s.accessURLs()
	if len(services) == 0 {
		return nil
	}

	var startSentence, endSentence string
	if coverage, ok := s.TemporalCoverage(ctx).(string); ok {
		var err error
		startSentence, endSentence, err = helpers.TrialWindow(coverage)
		if err != nil {
			slog.Debug("no trial window", "path", s.path, "coverage", coverage, "err", err)
		}
	}

	var actions []any
	for _, svc := range services {
		actions = append(actions, searchAction(svc, startSentence, endSentence))
	}
	return value.Normalize(actions)
}

func searchAction(svc accessURL, startSentence, endSentence string) value.Map {
	target := value.Map{
		value.TypeKey: string(schemaorg.TypeEntryPoint),
		"contentType": svc.encoding,
		"url":         svc.url,
		"description": "Download dataset data as " + svc.encoding + " file at this URL",
		"name":        svc.name,
	}
	action := value.Map{
		value.TypeKey: string(schemaorg.TypeSearchAction),
		"target":      target,
	}

	if len(svc.keys) > 0 {
		target["description"] = value.Text(target["description"]) + " using these product key(s): " + keyList(svc.keys)
		if strings.Contains(svc.url, "/hapi") {
			delete(target, "url")
			templates := make([]any, 0, len(svc.keys))
			for _, key := range svc.keys {
				key = strings.ReplaceAll(key, `"`, "")
				templates = append(templates, svc.url+"/data?id="+key+"&time.min={start}&time.max={end}")
			}
			target["urlTemplate"] = value.Single(templates)
			target["description"] = "Download dataset labeled by id in CSV format based on the requested start and end dates"
			target["httpMethod"] = "GET"
			action["query-input"] = []any{
				timeParameter("start", startSentence),
				timeParameter("end", endSentence),
			}
		}
	}

	if !strings.Contains(svc.url, "ftp") {
		target[schemaorg.IDKey] = svc.url
		target["identifier"] = svc.url
	}
	return action
}

func timeParameter(name, sentence string) value.Map {
	return value.Map{
		value.TypeKey:   string(schemaorg.TypePropertyValueSpecification),
		"valueName":     name,
		"description":   strings.TrimSpace("A UTC ISO DateTime. " + sentence),
		"valueRequired": false,
		"valuePattern":  dateTimePattern,
	}
}

// keyList renders product keys as a bracketed, quoted list:
// ['k1', 'k2'].
func keyList(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
