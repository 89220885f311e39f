// Package apollo provides a client for the Apollo.io organization and people search API.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospect-cli/internal/resilience"
)

const defaultBaseURL = "https://api.apollo.io/v1"

// Client defines the Apollo search operations.
type Client interface {
	// SearchOrganizations looks up companies by domain or by name.
	SearchOrganizations(ctx context.Context, req OrganizationSearchRequest) (*OrganizationSearchResponse, error)
	// SearchPeople looks up people by title within organizations.
	SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error)
}

// OrganizationSearchRequest is the body of POST /mixed_companies/search.
type OrganizationSearchRequest struct {
	Domains []string `json:"q_organization_domains_list,omitempty"`
	Name    string   `json:"q_organization_name,omitempty"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}

// OrganizationSearchResponse lists matches. Apollo returns companies already
// in the caller's CRM under accounts rather than organizations.
type OrganizationSearchResponse struct {
	Organizations []Organization `json:"organizations"`
	Accounts      []Organization `json:"accounts"`
}

// First returns the first organization, falling back to the first account.
func (r *OrganizationSearchResponse) First() (Organization, bool) {
	if r == nil {
		return Organization{}, false
	}
	if len(r.Organizations) > 0 {
		return r.Organizations[0], true
	}
	if len(r.Accounts) > 0 {
		return r.Accounts[0], true
	}
	return Organization{}, false
}

// Organization is an Apollo company record.
type Organization struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	PrimaryDomain  string `json:"primary_domain"`
	WebsiteURL     string `json:"website_url"`
}

// EffectiveID returns the id to search people with. Accounts carry the
// organization id separately from their own id.
func (o Organization) EffectiveID() string {
	if o.OrganizationID != "" {
		return o.OrganizationID
	}
	return o.ID
}

// PeopleSearchRequest is the body of POST /mixed_people/api_search.
type PeopleSearchRequest struct {
	PersonTitles    []string `json:"person_titles"`
	Domains         []string `json:"q_organization_domains_list,omitempty"`
	OrganizationIDs []string `json:"organization_ids,omitempty"`
	Page            int      `json:"page"`
	PerPage         int      `json:"per_page"`
}

// PeopleSearchResponse lists matching people.
type PeopleSearchResponse struct {
	People []Person `json:"people"`
}

// Person is an Apollo person record. Absent or null fields decode as "".
type Person struct {
	ID          string `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
	PhotoURL    string `json:"photo_url"`
}

// Option configures the Apollo client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables it.
func WithRateLimit(perSecond float64) Option {
	return func(c *httpClient) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates an Apollo client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) SearchOrganizations(ctx context.Context, req OrganizationSearchRequest) (*OrganizationSearchResponse, error) {
	var out OrganizationSearchResponse
	if err := c.post(ctx, "/mixed_companies/search", req, &out); err != nil {
		return nil, eris.Wrap(err, "apollo: search organizations")
	}
	return &out, nil
}

func (c *httpClient) SearchPeople(ctx context.Context, req PeopleSearchRequest) (*PeopleSearchResponse, error) {
	var out PeopleSearchResponse
	if err := c.post(ctx, "/mixed_people/api_search", req, &out); err != nil {
		return nil, eris.Wrap(err, "apollo: search people")
	}
	return &out, nil
}

// post sends one request. Throttling, 5xx and network failures come back as
// resilience.TransientError so callers can retry them.
func (c *httpClient) post(ctx context.Context, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "apollo: rate limit wait")
		}
	}

	body, err := json.Marshal(in)
	if err != nil {
		return eris.Wrap(err, "apollo: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "apollo: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return resilience.NewTransientError(eris.Wrap(err, "apollo: send request"), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "apollo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("apollo: unexpected status %d: %s", resp.StatusCode, truncate(respBody, 200))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return statusErr
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return eris.Wrap(err, "apollo: unmarshal response")
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
