// Package pappers provides a client for the Pappers v2 French company registry API.
package pappers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/resilience"
)

const defaultBaseURL = "https://api.pappers.fr/v2"

// ErrNotFound is returned when Pappers has no company for the SIRET.
var ErrNotFound = eris.New("pappers: company not found")

// Client defines the Pappers operations.
type Client interface {
	// GetCompany fetches the company owning the given SIRET.
	GetCompany(ctx context.Context, siret string) (*Company, error)
}

// Company is the subset of GET /entreprise used for prospecting.
type Company struct {
	SIREN               string         `json:"siren"`
	Denomination        string         `json:"denomination"`
	CodeNAF             string         `json:"code_naf"`
	SitesInternet       []string       `json:"sites_internet"`
	Telephone           string         `json:"telephone"`
	Email               string         `json:"email"`
	LienLinkedin        string         `json:"lien_linkedin"`
	CategorieEntreprise string         `json:"categorie_entreprise"`
	Siege               Establishment  `json:"siege"`
	Representants       []Representant `json:"representants"`
	Finances            []Finance      `json:"finances"`
}

// Establishment is the registered head office.
type Establishment struct {
	SIRET        string `json:"siret"`
	SiteInternet string `json:"site_internet"`
	Telephone    string `json:"telephone"`
	Email        string `json:"email"`
	Ville        string `json:"ville"`
}

// Representant is a legal representative. Companies acting as
// representatives only carry NomComplet.
type Representant struct {
	Nom        string `json:"nom"`
	NomComplet string `json:"nom_complet"`
	Prenom     string `json:"prenom"`
	Qualite    string `json:"qualite"`
}

// Finance is one fiscal year; the most recent comes first.
type Finance struct {
	Annee           int      `json:"annee"`
	ChiffreAffaires *float64 `json:"chiffre_affaires"`
}

// Option configures the Pappers client.
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

type httpClient struct {
	apiToken string
	baseURL  string
	http     *http.Client
}

// NewClient creates a Pappers client.
func NewClient(apiToken string, opts ...Option) Client {
	c := &httpClient{
		apiToken: apiToken,
		baseURL:  defaultBaseURL,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) GetCompany(ctx context.Context, siret string) (*Company, error) {
	params := url.Values{"siret": {siret}, "api_token": {c.apiToken}}
	reqURL := c.baseURL + "/entreprise/?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "pappers: create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The URL carries the token; keep it out of the error.
		return nil, resilience.NewTransientError(eris.New("pappers: send request: "+redact(err)), 0)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "pappers: read response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		statusErr := eris.Errorf("pappers: unexpected status %d: %s", resp.StatusCode, string(body))
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return nil, statusErr
	}

	var company Company
	if err := json.Unmarshal(body, &company); err != nil {
		return nil, eris.Wrap(err, "pappers: unmarshal response")
	}
	return &company, nil
}

// redact drops the request URL from transport errors.
func redact(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Op + ": " + ue.Err.Error()
	}
	return err.Error()
}
