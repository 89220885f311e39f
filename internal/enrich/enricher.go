// Package enrich runs the syndic enrichment pipeline: cache check, domain
// discovery from the legal profile then web search, contact discovery by
// domain then by organization, and persistence.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/domains"
	"github.com/sells-group/prospect-cli/internal/model"
)

// ErrMissingStableID is the only error Enrich returns.
var ErrMissingStableID = eris.New("enrich: missing stable id")

// Cache is the enrichment cache. Implementations never fail: a failed read
// is a miss.
type Cache interface {
	Get(ctx context.Context, stableID string) *model.EnrichmentResult
	Put(ctx context.Context, result *model.EnrichmentResult)
}

// Searcher finds candidate company websites.
type Searcher interface {
	FindCompanySites(ctx context.Context, name, city string) []model.SearchHit
}

// ContactFinder discovers decision-makers.
type ContactFinder interface {
	PeopleByDomain(ctx context.Context, domain string) []model.Contact
	FindOrgID(ctx context.Context, domain, name string) string
	PeopleByOrgID(ctx context.Context, orgID string) []model.Contact
}

// DomainValidator scores a candidate domain against a company name.
type DomainValidator interface {
	Validate(candidate, companyName string) model.ValidatedDomain
}

// Option configures an Enricher.
type Option func(*Enricher)

// WithClock overrides the clock used for enriched_at.
func WithClock(now func() time.Time) Option {
	return func(e *Enricher) { e.now = now }
}

// WithValidator overrides the domain validator.
func WithValidator(v DomainValidator) Option {
	return func(e *Enricher) { e.validator = v }
}

// Enricher runs the pipeline for one company at a time. It holds no
// per-request state and is safe for concurrent use.
type Enricher struct {
	cache     Cache
	search    Searcher
	contacts  ContactFinder
	validator DomainValidator
	now       func() time.Time
}

// New creates an Enricher. Any collaborator may be nil, in which case its
// step finds nothing.
func New(cache Cache, search Searcher, contacts ContactFinder, opts ...Option) *Enricher {
	e := &Enricher{
		cache:     cache,
		search:    search,
		contacts:  contacts,
		validator: domains.NewValidator(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run is the mutable state of one Enrich call.
type run struct {
	identity model.CompanyIdentity
	profile  *model.LegalProfile
	log      *zap.Logger

	best     model.ValidatedDomain
	source   model.DomainSource
	contacts []model.Contact
	orgID    string
	result   *model.EnrichmentResult
}

// consider replaces the running best only on a strictly higher score, so the
// earliest candidate wins ties.
func (r *run) consider(v model.ValidatedDomain, source model.DomainSource) {
	if v.Accepted() && v.Score > r.best.Score {
		r.best = v
		r.source = source
	}
}

// Enrich returns the cached result for identity, or runs the pipeline and
// caches the outcome. External failures degrade to an empty domain or empty
// contacts; they never fail the call.
func (e *Enricher) Enrich(ctx context.Context, identity model.CompanyIdentity, profile *model.LegalProfile) (*model.EnrichmentResult, error) {
	if strings.TrimSpace(identity.StableID) == "" {
		return nil, ErrMissingStableID
	}

	r := &run{
		identity: identity,
		profile:  profile,
		log: zap.L().With(
			zap.String("stable_id", identity.StableID),
			zap.String("name", identity.DisplayName),
		),
	}

	state := StateCacheCheck
	for state != StateDone {
		next := e.step(ctx, r, state)
		r.log.Debug("enrich: transition", zap.Stringer("from", state), zap.Stringer("to", next))
		state = next
	}
	return r.result, nil
}

// Cached returns the cached result for stableID, or nil on a miss or when the
// Enricher has no cache.
func (e *Enricher) Cached(ctx context.Context, stableID string) *model.EnrichmentResult {
	if e.cache == nil || strings.TrimSpace(stableID) == "" {
		return nil
	}
	return e.cache.Get(ctx, stableID)
}

func (e *Enricher) step(ctx context.Context, r *run, state State) State {
	switch state {
	case StateCacheCheck:
		return e.checkCache(ctx, r)
	case StateDomainFromProfile:
		return e.domainFromProfile(r)
	case StateDomainFromSearch:
		return e.domainFromSearch(ctx, r)
	case StateContactsByDomain:
		return e.contactsByDomain(ctx, r)
	case StateContactsByOrg:
		return e.contactsByOrg(ctx, r)
	case StatePersist:
		return e.persist(ctx, r)
	default:
		return StateDone
	}
}

func (e *Enricher) checkCache(ctx context.Context, r *run) State {
	if e.cache == nil {
		return StateDomainFromProfile
	}
	if cached := e.cache.Get(ctx, r.identity.StableID); cached != nil {
		r.log.Info("enrich: cache hit")
		r.result = cached
		return StateDone
	}
	r.log.Info("enrich: starting enrichment")
	return StateDomainFromProfile
}

func (e *Enricher) domainFromProfile(r *run) State {
	for c := range domains.Candidates(r.profile) {
		v := e.validator.Validate(c.Raw, r.identity.DisplayName)
		r.log.Debug("enrich: profile candidate",
			zap.String("candidate", c.Raw),
			zap.String("origin", string(c.Origin)),
			zap.Float64("score", v.Score),
			zap.Bool("accepted", v.Accepted()),
		)
		r.consider(v, model.SourceLegalProfile)
	}
	return StateDomainFromSearch
}

func (e *Enricher) domainFromSearch(ctx context.Context, r *run) State {
	if r.best.Accepted() {
		return StateContactsByDomain
	}
	if e.search != nil {
		for _, hit := range e.search.FindCompanySites(ctx, r.identity.DisplayName, r.identity.CityHint) {
			v := e.validator.Validate(hit.URL, r.identity.DisplayName)
			r.log.Debug("enrich: search candidate",
				zap.String("url", hit.URL),
				zap.Float64("score", v.Score),
				zap.Bool("accepted", v.Accepted()),
			)
			r.consider(v, model.SourceWebSearch)
		}
	}
	if !r.best.Accepted() {
		r.source = model.SourceNameFallback
	}
	return StateContactsByDomain
}

func (e *Enricher) contactsByDomain(ctx context.Context, r *run) State {
	if r.best.Accepted() && e.contacts != nil {
		r.contacts = e.contacts.PeopleByDomain(ctx, r.best.Domain)
	}
	if len(r.contacts) > 0 {
		return StatePersist
	}
	return StateContactsByOrg
}

func (e *Enricher) contactsByOrg(ctx context.Context, r *run) State {
	if e.contacts == nil {
		return StatePersist
	}
	r.orgID = e.contacts.FindOrgID(ctx, r.best.Domain, r.identity.DisplayName)
	if r.orgID != "" {
		r.contacts = e.contacts.PeopleByOrgID(ctx, r.orgID)
	}
	return StatePersist
}

func (e *Enricher) persist(ctx context.Context, r *run) State {
	contacts := r.contacts
	if contacts == nil {
		contacts = []model.Contact{}
	}
	r.result = &model.EnrichmentResult{
		StableID:        r.identity.StableID,
		DisplayName:     r.identity.DisplayName,
		Domain:          r.best.Domain,
		DomainSource:    r.source,
		OrgID:           r.orgID,
		Contacts:        contacts,
		EnrichedAt:      e.now().UTC(),
		ConfidenceScore: r.best.Score,
	}
	if e.cache != nil {
		e.cache.Put(ctx, r.result)
	}
	r.log.Info("enrich: completed",
		zap.String("domain", r.result.Domain),
		zap.String("domain_source", string(r.result.DomainSource)),
		zap.String("org_id", r.result.OrgID),
		zap.Int("contacts", len(r.result.Contacts)),
		zap.Float64("confidence", r.result.ConfidenceScore),
	)
	return StateDone
}
