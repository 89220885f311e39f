package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/cache"
	"github.com/sells-group/prospect-cli/internal/contacts"
	"github.com/sells-group/prospect-cli/internal/enrich"
	"github.com/sells-group/prospect-cli/internal/legal"
	"github.com/sells-group/prospect-cli/internal/resilience"
	"github.com/sells-group/prospect-cli/internal/search"
	"github.com/sells-group/prospect-cli/internal/store"
	"github.com/sells-group/prospect-cli/pkg/apollo"
	"github.com/sells-group/prospect-cli/pkg/ddg"
	"github.com/sells-group/prospect-cli/pkg/jina"
	"github.com/sells-group/prospect-cli/pkg/pappers"
)

// prospectEnv holds the store, clients and services needed by the
// enrich/batch/legal/serve commands.
type prospectEnv struct {
	Store    store.Store
	Cache    *cache.Cache
	Legal    *legal.Service
	Enricher *enrich.Enricher
	Service  *enrich.Service
	Breakers *resilience.ServiceBreakers
}

// Close releases resources held by the environment.
func (pe *prospectEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initEnv validates config for mode, opens and migrates the store, and
// wires every service. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*prospectEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	env := &prospectEnv{
		Store: st,
		Cache: cache.New(st, time.Duration(cfg.Enrich.CacheTimeoutSecs)*time.Second),
		Breakers: resilience.NewServiceBreakers(resilience.NewCircuitBreakerConfig(
			cfg.Resilience.FailureThreshold, cfg.Resilience.ResetTimeoutSecs,
		)),
	}
	retry := resilience.NewRetryConfig(
		cfg.Resilience.MaxAttempts, cfg.Resilience.InitialBackoffMs, cfg.Resilience.MaxBackoffMs,
	)
	guard := func(service string) *resilience.Guard {
		return resilience.NewGuard(service, retry, env.Breakers.Get(service))
	}

	env.Legal = legal.NewService(initPappers(), st, legal.Config{
		Timeout: time.Duration(cfg.Pappers.TimeoutSecs) * time.Second,
		Guard:   guard("pappers"),
	})

	finder := contacts.NewFinder(initApollo(), contacts.Config{
		Timeout:     cfg.Apollo.Timeout(),
		OrgGuard:    guard("apollo.organizations"),
		PeopleGuard: guard("apollo.people"),
	})

	searcher := search.NewAdapter(initSearchProvider(), search.Config{
		Region:     cfg.Search.Region,
		MaxResults: cfg.Search.MaxResults,
		Timeout:    time.Duration(cfg.Search.TimeoutSecs) * time.Second,
		Guard:      guard("search." + cfg.Search.Provider),
	})

	env.Enricher = enrich.New(env.Cache, searcher, finder)
	env.Service = enrich.NewService(env.Enricher, env.Legal)
	return env, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "prospect.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initApollo returns nil when no key is configured; contact lookups then
// short-circuit to empty results.
func initApollo() apollo.Client {
	if cfg.Apollo.Key == "" {
		zap.L().Warn("PROSPECT_APOLLO_KEY not set, contact discovery disabled")
		return nil
	}
	return apollo.NewClient(cfg.Apollo.Key,
		apollo.WithBaseURL(cfg.Apollo.BaseURL),
		apollo.WithTimeout(cfg.Apollo.Timeout()),
		apollo.WithRateLimit(cfg.Apollo.RateLimit),
	)
}

func initPappers() pappers.Client {
	if cfg.Pappers.Key == "" {
		zap.L().Debug("PROSPECT_PAPPERS_KEY not set, legal lookups served from cache only")
		return nil
	}
	return pappers.NewClient(cfg.Pappers.Key,
		pappers.WithBaseURL(cfg.Pappers.BaseURL),
		pappers.WithTimeout(time.Duration(cfg.Pappers.TimeoutSecs)*time.Second),
	)
}

func initSearchProvider() search.Provider {
	if cfg.Search.Provider == "jina" {
		if cfg.Jina.Key == "" {
			zap.L().Warn("search.provider is jina but PROSPECT_JINA_KEY is not set, falling back to duckduckgo")
		} else {
			return search.NewJina(jina.NewClient(cfg.Jina.Key, jina.WithSearchBaseURL(cfg.Jina.SearchBaseURL)))
		}
	}
	var opts []ddg.Option
	if cfg.Search.BaseURL != "" {
		opts = append(opts, ddg.WithBaseURL(cfg.Search.BaseURL))
	}
	return search.NewDuckDuckGo(ddg.NewClient(opts...))
}

