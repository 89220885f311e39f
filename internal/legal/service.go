// Package legal resolves French legal-registry profiles with a local cache.
package legal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resilience"
	"github.com/sells-group/prospect-cli/pkg/pappers"
)

var (
	// ErrInvalidSIRET is returned when the identifier has fewer than 9 digits.
	ErrInvalidSIRET = eris.New("legal: invalid siret")
	// ErrNoCredential is returned when no Pappers key is configured and
	// nothing usable is cached.
	ErrNoCredential = eris.New("legal: pappers api key not configured")
	// ErrNotFound is returned when the registry has no such company.
	ErrNotFound = pappers.ErrNotFound
)

// Store is the legal cache.
type Store interface {
	GetLegalProfile(ctx context.Context, siret string) (*model.LegalProfile, error)
	PutLegalProfile(ctx context.Context, profile *model.LegalProfile) error
}

// Config tunes the Service.
type Config struct {
	Timeout time.Duration
	Guard   *resilience.Guard
}

// Service looks up legal profiles, cache first.
type Service struct {
	client pappers.Client
	store  Store
	cfg    Config
}

// NewService creates a Service. client is nil when no key is configured;
// store may be nil to disable caching.
func NewService(client pappers.Client, store Store, cfg Config) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Service{client: client, store: store, cfg: cfg}
}

// NormalizeSIRET strips every non-digit. It fails when fewer than 9 digits
// remain.
func NormalizeSIRET(raw string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if len(clean) < 9 {
		return "", ErrInvalidSIRET
	}
	return clean, nil
}

// Lookup returns the legal profile for siret. A cached profile is used when
// it carries a phone or an email; otherwise it is refreshed from Pappers.
func (s *Service) Lookup(ctx context.Context, siret string) (*model.LegalProfile, error) {
	clean, err := NormalizeSIRET(siret)
	if err != nil {
		return nil, err
	}
	log := zap.L().With(zap.String("siret", clean))

	cached := s.cached(ctx, clean)
	if cached.HasContactDetails() {
		log.Debug("legal: cache hit")
		return cached, nil
	}

	if s.client == nil {
		if cached != nil {
			log.Debug("legal: no pappers key, serving incomplete cached profile")
			return cached, nil
		}
		return nil, ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	company, err := resilience.Call(ctx, s.cfg.Guard, "get_company", func(ctx context.Context) (*pappers.Company, error) {
		return s.client.GetCompany(ctx, clean)
	})
	if err != nil {
		if errors.Is(err, pappers.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, eris.Wrapf(err, "legal: fetch %s", clean)
	}

	profile := ProfileFromCompany(clean, company)
	if s.store != nil {
		if err := s.store.PutLegalProfile(ctx, profile); err != nil {
			log.Warn("legal: cache write failed", zap.Error(err))
		}
	}
	log.Info("legal: fetched from pappers", zap.String("denomination", profile.Denomination))
	return profile, nil
}

func (s *Service) cached(ctx context.Context, siret string) *model.LegalProfile {
	if s.store == nil {
		return nil
	}
	p, err := s.store.GetLegalProfile(ctx, siret)
	if err != nil {
		zap.L().Warn("legal: cache read failed", zap.String("siret", siret), zap.Error(err))
		return nil
	}
	return p
}

// ProfileFromCompany maps a Pappers company onto a LegalProfile.
func ProfileFromCompany(siret string, c *pappers.Company) *model.LegalProfile {
	p := &model.LegalProfile{SIRET: siret}
	if c == nil {
		return p
	}

	p.Denomination = c.Denomination
	p.CodeAPE = c.CodeNAF
	p.LinkedInURL = c.LienLinkedin
	p.Category = c.CategorieEntreprise

	if c.SitesInternet != nil {
		p.Websites = strings.Join(c.SitesInternet, ", ")
	} else {
		p.Websites = c.Siege.SiteInternet
	}
	p.Phone = firstNonEmpty(c.Telephone, c.Siege.Telephone)
	p.Email = firstNonEmpty(c.Email, c.Siege.Email)

	if len(c.Representants) > 0 {
		rep := c.Representants[0]
		p.LeaderLastName = firstNonEmpty(rep.Nom, rep.NomComplet)
		p.LeaderFirstName = rep.Prenom
	}
	if len(c.Finances) > 0 && c.Finances[0].ChiffreAffaires != nil {
		p.AnnualRevenue = *c.Finances[0].ChiffreAffaires
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
