package search

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resilience"
)

// excludedHosts never point at a company's own site.
var excludedHosts = []string{"google.com", ".gouv.fr", "societe.com"}

// Config tunes the Adapter.
type Config struct {
	Region     string
	MaxResults int
	Timeout    time.Duration
	// Guard optionally retries transient provider failures.
	Guard *resilience.Guard
}

// Adapter runs company-website searches. It never fails: provider errors
// and timeouts produce an empty result.
type Adapter struct {
	provider Provider
	cfg      Config
}

// NewAdapter wraps provider. Zero config values fall back to fr-fr, 5
// results and a 15s timeout.
func NewAdapter(provider Provider, cfg Config) *Adapter {
	if cfg.Region == "" {
		cfg.Region = "fr-fr"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Adapter{provider: provider, cfg: cfg}
}

// FindCompanySites searches for "<name> <city>" and returns the hits left
// after dropping search-engine, government and registry pages, in rank order.
func (a *Adapter) FindCompanySites(ctx context.Context, name, city string) []model.SearchHit {
	if a == nil || a.provider == nil {
		return nil
	}
	text := strings.TrimSpace(name + " " + city)
	if text == "" {
		return nil
	}
	log := zap.L().With(zap.String("provider", a.provider.Name()), zap.String("query", text))

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
	defer cancel()

	q := Query{Text: text, Region: a.cfg.Region, MaxResults: a.cfg.MaxResults}
	hits, err := resilience.Call(ctx, a.cfg.Guard, "search", func(ctx context.Context) ([]model.SearchHit, error) {
		return a.provider.Search(ctx, q)
	})
	if err != nil {
		log.Warn("search: provider failed", zap.Error(err))
		return nil
	}
	if len(hits) > a.cfg.MaxResults {
		hits = hits[:a.cfg.MaxResults]
	}

	kept := make([]model.SearchHit, 0, len(hits))
	for _, h := range hits {
		if isExcluded(h.URL) {
			continue
		}
		kept = append(kept, h)
	}
	log.Debug("search: results", zap.Int("raw", len(hits)), zap.Int("kept", len(kept)))
	return kept
}

func isExcluded(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return true
	}
	host := strings.ToLower(u.Hostname())
	for _, ex := range excludedHosts {
		if strings.Contains(host, ex) {
			return true
		}
	}
	return false
}
