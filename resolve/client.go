package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/sethgrid/pester"

	"github.com/lehigh-university-libraries/soso/helpers"
)

// DefaultTimeout bounds every remote call.
const DefaultTimeout = 30 * time.Second

const (
	defaultDataCiteAPI = "https://api.datacite.org/application/vnd.datacite.datacite+json"
	landingHost        = "spase-metadata.org"
	maxBody            = 4 << 20
)

// NetworkError is a remote lookup that failed or timed out.
type NetworkError struct {
	Target string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error for %s: %v", e.Target, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) {
		return t.Timeout()
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ErrNoCitation is returned when a DOI produced no formatted citation.
var ErrNoCitation = errors.New("no citation available")

// Kind is the classified type of a related resource.
type Kind int

const (
	KindUnknown Kind = iota
	KindDataset
	KindArticle
)

// SchemaType returns the schema.org type for the kind, or "".
func (k Kind) SchemaType() string {
	switch k {
	case KindDataset:
		return "Dataset"
	case KindArticle:
		return "ScholarlyArticle"
	default:
		return ""
	}
}

// Creator is a person or organization harvested from a remote record.
type Creator struct {
	Name        string
	Given       string
	Family      string
	Affiliation string
}

// Remote is what a remote lookup learned about a related resource. Only
// datasets carry descriptive fields.
type Remote struct {
	Kind        Kind
	Name        string
	Description string
	License     []string
	Creators    []Creator
}

// Client performs single-attempt, time-bounded lookups.
type Client struct {
	// DataCiteAPI is the base URL of the DataCite JSON endpoint.
	DataCiteAPI string

	follow   *pester.Client
	noFollow *pester.Client
}

// NewClient returns a client whose calls give up after timeout. A zero
// timeout means DefaultTimeout. Calls are never retried.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 || timeout > DefaultTimeout {
		timeout = DefaultTimeout
	}
	return &Client{
		DataCiteAPI: defaultDataCiteAPI,
		follow:      singleAttempt(&http.Client{Timeout: timeout}),
		noFollow: singleAttempt(&http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}),
	}
}

func singleAttempt(hc *http.Client) *pester.Client {
	c := pester.NewExtendedClient(hc)
	c.Concurrency = 1
	c.MaxRetries = 1
	c.KeepLog = false
	return c
}

func (c *Client) do(ctx context.Context, pc *pester.Client, method, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	slog.Debug("remote lookup", "method", method, "url", url)
	resp, err := pc.Do(req)
	if err != nil {
		return nil, &NetworkError{Target: url, Err: err}
	}
	return resp, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(io.LimitReader(resp.Body, maxBody))
}

// Probe checks that url answers at all. Any HTTP status counts as
// reachable; only transport failures are reported.
func (c *Client) Probe(ctx context.Context, url string) error {
	resp, err := c.do(ctx, c.follow, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Classify determines whether a related URL names a dataset or a journal
// article. Landing pages on the SPASE host are classified from the URL
// alone. DOIs are first checked for a redirect to that host, then looked up
// in DataCite, which also supplies name, description, license and creators
// for datasets.
func (c *Client) Classify(ctx context.Context, url string) (Remote, error) {
	if strings.Contains(url, landingHost) {
		return Remote{Kind: landingKind(url)}, nil
	}

	resp, err := c.do(ctx, c.noFollow, http.MethodHead, url, nil)
	if err != nil {
		return Remote{}, err
	}
	location := resp.Header.Get("Location")
	resp.Body.Close()
	if strings.Contains(location, landingHost) {
		return Remote{Kind: landingKind(location)}, nil
	}

	return c.dataCite(ctx, DOIFromURL(url))
}

// DOIFromURL returns the DOI named by a resolver URL such as
// "https://doi.org/10.48322/abcd-1234". Text that is not a URL is returned
// trimmed, without any "doi:" prefix.
func DOIFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if u, err := neturl.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return strings.TrimPrefix(u.Path, "/")
	}
	return strings.TrimPrefix(strings.TrimPrefix(raw, "doi:"), "DOI:")
}

func landingKind(url string) Kind {
	if strings.Contains(url, "Data") {
		return KindDataset
	}
	return KindUnknown
}

type dataCiteRecord struct {
	Types struct {
		ResourceType        string `json:"resourceType"`
		ResourceTypeGeneral string `json:"resourceTypeGeneral"`
	} `json:"types"`
	Titles []struct {
		Title string `json:"title"`
	} `json:"titles"`
	Descriptions []struct {
		Description string `json:"description"`
	} `json:"descriptions"`
	RightsList []struct {
		RightsURI string `json:"rightsUri"`
	} `json:"rightsList"`
	Creators []struct {
		Name        string          `json:"name"`
		GivenName   string          `json:"givenName"`
		FamilyName  string          `json:"familyName"`
		Affiliation json.RawMessage `json:"affiliation"`
	} `json:"creators"`
}

func (c *Client) dataCite(ctx context.Context, doi string) (Remote, error) {
	endpoint := strings.TrimSuffix(c.DataCiteAPI, "/") + "/" + doi
	resp, err := c.do(ctx, c.follow, http.MethodGet, endpoint, nil)
	if err != nil {
		return Remote{}, err
	}
	body, err := readBody(resp)
	if err != nil {
		return Remote{}, &NetworkError{Target: endpoint, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Remote{}, &NetworkError{Target: endpoint, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var rec dataCiteRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return Remote{}, fmt.Errorf("decoding DataCite record for %s: %w", doi, err)
	}

	kind := classifyType(rec.Types.ResourceType)
	if rec.Types.ResourceType == "" {
		kind = classifyType(rec.Types.ResourceTypeGeneral)
	}
	remote := Remote{Kind: kind}
	if kind != KindDataset {
		return remote, nil
	}

	if len(rec.Titles) > 0 {
		remote.Name = rec.Titles[0].Title
	}
	if len(rec.Descriptions) > 0 && rec.Descriptions[0].Description != "" {
		remote.Description = helpers.StripHTML(rec.Descriptions[0].Description)
	} else {
		remote.Description = "No description currently available for https://doi.org/" + doi + "."
	}
	for _, r := range rec.RightsList {
		if r.RightsURI != "" {
			remote.License = append(remote.License, r.RightsURI)
		}
	}
	for _, cr := range rec.Creators {
		creator := Creator{Name: cr.Name, Given: cr.GivenName, Family: cr.FamilyName}
		if creator.Given == "" || creator.Family == "" {
			creator.Given, creator.Family = "", ""
			if family, given, ok := strings.Cut(cr.Name, ", "); ok {
				creator.Family, creator.Given = family, given
			}
		}
		creator.Affiliation = affiliationName(cr.Affiliation)
		remote.Creators = append(remote.Creators, creator)
	}
	return remote, nil
}

func classifyType(t string) Kind {
	switch t {
	case "Dataset":
		return KindDataset
	case "JournalArticle":
		return KindArticle
	default:
		return KindUnknown
	}
}

// affiliationName reads DataCite affiliations, which appear as a string, an
// object or a list of either.
func affiliationName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return affiliationName(list[0])
	}
	return ""
}

// Citation asks the DOI resolver for a formatted citation in a CSL style
// and locale, e.g. "apa" and "en-US". An HTML page in place of a citation
// means the DOI is not registered for content negotiation and gives
// ErrNoCitation.
func (c *Client) Citation(ctx context.Context, doiURL, style, locale string) (string, error) {
	header := http.Header{}
	header.Set("Accept", "text/x-bibliography; style="+style)
	header.Set("locale", locale)

	resp, err := c.do(ctx, c.follow, http.MethodGet, doiURL, header)
	if err != nil {
		return "", err
	}
	body, err := readBody(resp)
	if err != nil {
		return "", &NetworkError{Target: doiURL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned %s", ErrNoCitation, doiURL, resp.Status)
	}
	text := strings.TrimSpace(string(body))
	if text == "" || helpers.IsHTMLDocument(text) {
		return "", fmt.Errorf("%w: %s", ErrNoCitation, doiURL)
	}
	return text, nil
}
