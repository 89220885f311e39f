package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
)

// Request is one enrichment job as submitted by a user or a batch file.
type Request struct {
	Identity model.CompanyIdentity `json:"identity"`
	// Website and Email are hints supplied by the caller. When either is
	// set the legal lookup is skipped.
	Website   string `json:"website,omitempty"`
	Email     string `json:"email,omitempty"`
	SkipLegal bool   `json:"skip_legal,omitempty"`
}

// LegalLookup resolves a legal profile by SIRET.
type LegalLookup interface {
	Lookup(ctx context.Context, siret string) (*model.LegalProfile, error)
}

// Service resolves the legal profile for a request, then runs the Enricher.
type Service struct {
	enricher *Enricher
	legal    LegalLookup
}

// NewService creates a Service. legal may be nil.
func NewService(enricher *Enricher, legal LegalLookup) *Service {
	return &Service{enricher: enricher, legal: legal}
}

// Run enriches req. A cache hit is returned before any legal lookup. Legal
// lookup failures are logged and the pipeline runs without a profile.
func (s *Service) Run(ctx context.Context, req Request) (*model.EnrichmentResult, error) {
	if cached := s.enricher.Cached(ctx, req.Identity.StableID); cached != nil {
		zap.L().Debug("enrich: cache hit, legal lookup skipped",
			zap.String("stable_id", req.Identity.StableID),
		)
		return cached, nil
	}
	return s.enricher.Enrich(ctx, req.Identity, s.profile(ctx, req))
}

func (s *Service) profile(ctx context.Context, req Request) *model.LegalProfile {
	if req.Website != "" || req.Email != "" {
		return &model.LegalProfile{
			SIRET:    req.Identity.StableID,
			Websites: req.Website,
			Email:    req.Email,
		}
	}
	if req.SkipLegal || s.legal == nil || req.Identity.StableID == "" {
		return nil
	}
	p, err := s.legal.Lookup(ctx, req.Identity.StableID)
	if err != nil {
		zap.L().Warn("enrich: legal lookup failed, continuing without profile",
			zap.String("stable_id", req.Identity.StableID),
			zap.Error(err),
		)
		return nil
	}
	return p
}
