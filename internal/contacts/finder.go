// Package contacts finds property-management decision-makers through Apollo.
package contacts

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/domains"
	"github.com/sells-group/prospect-cli/internal/model"
	"github.com/sells-group/prospect-cli/internal/resilience"
	"github.com/sells-group/prospect-cli/pkg/apollo"
)

const (
	orgPageSize    = 1
	peoplePageSize = 10
)

// TargetTitles are the job titles searched for.
var TargetTitles = []string{
	"Gestionnaire",
	"Principal",
	"Directeur copropriété",
	"Syndic",
	"Gérant",
	"Administrateur de biens",
}

// Config tunes the Finder.
type Config struct {
	Timeout     time.Duration
	OrgGuard    *resilience.Guard
	PeopleGuard *resilience.Guard
}

// Finder looks up organizations and people. Every lookup is non-fatal:
// failures are logged and yield an empty result. A Finder with a nil client
// (no API key) returns empty results without calling out.
type Finder struct {
	client apollo.Client
	cfg    Config
}

// NewFinder creates a Finder. client may be nil.
func NewFinder(client apollo.Client, cfg Config) *Finder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Finder{client: client, cfg: cfg}
}

// Enabled reports whether lookups will reach Apollo.
func (f *Finder) Enabled() bool {
	return f != nil && f.client != nil
}

// FindOrgID returns the Apollo organization id for domain, falling back to a
// name search. An empty name is derived from the domain's label. Returns ""
// when nothing matches.
func (f *Finder) FindOrgID(ctx context.Context, domain, name string) string {
	if !f.Enabled() {
		return ""
	}

	if domain != "" {
		id := f.searchOrg(ctx, apollo.OrganizationSearchRequest{Domains: []string{domain}})
		if id != "" {
			zap.L().Debug("contacts: org found by domain", zap.String("domain", domain), zap.String("org_id", id))
			return id
		}
	}

	if name == "" && domain != "" {
		name = domains.Label(domain)
	}
	if name == "" {
		return ""
	}
	id := f.searchOrg(ctx, apollo.OrganizationSearchRequest{Name: name})
	if id != "" {
		zap.L().Debug("contacts: org found by name", zap.String("name", name), zap.String("org_id", id))
	}
	return id
}

// People returns contacts for domain, or for orgID when domain is empty.
func (f *Finder) People(ctx context.Context, domain, orgID string) []model.Contact {
	if !f.Enabled() {
		return nil
	}

	req := apollo.PeopleSearchRequest{
		PersonTitles: TargetTitles,
		Page:         1,
		PerPage:      peoplePageSize,
	}
	switch {
	case domain != "":
		req.Domains = []string{domain}
	case orgID != "":
		req.OrganizationIDs = []string{orgID}
	default:
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	resp, err := resilience.Call(ctx, f.cfg.PeopleGuard, "search_people", func(ctx context.Context) (*apollo.PeopleSearchResponse, error) {
		return f.client.SearchPeople(ctx, req)
	})
	if err != nil {
		zap.L().Warn("contacts: people search failed",
			zap.String("domain", domain),
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return nil
	}
	if resp == nil {
		return nil
	}

	out := make([]model.Contact, 0, len(resp.People))
	for _, p := range resp.People {
		out = append(out, toContact(p))
	}
	return out
}

// PeopleByDomain returns contacts working at domain.
func (f *Finder) PeopleByDomain(ctx context.Context, domain string) []model.Contact {
	if domain == "" {
		return nil
	}
	return f.People(ctx, domain, "")
}

// PeopleByOrgID returns contacts of the Apollo organization orgID.
func (f *Finder) PeopleByOrgID(ctx context.Context, orgID string) []model.Contact {
	if orgID == "" {
		return nil
	}
	return f.People(ctx, "", orgID)
}

func (f *Finder) searchOrg(ctx context.Context, req apollo.OrganizationSearchRequest) string {
	req.Page = 1
	req.PerPage = orgPageSize

	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	resp, err := resilience.Call(ctx, f.cfg.OrgGuard, "search_organizations", func(ctx context.Context) (*apollo.OrganizationSearchResponse, error) {
		return f.client.SearchOrganizations(ctx, req)
	})
	if err != nil {
		zap.L().Warn("contacts: organization search failed",
			zap.Strings("domains", req.Domains),
			zap.String("name", req.Name),
			zap.Error(err),
		)
		return ""
	}
	org, ok := resp.First()
	if !ok {
		return ""
	}
	return org.EffectiveID()
}

func toContact(p apollo.Person) model.Contact {
	return model.Contact{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Title:       p.Title,
		Email:       p.Email,
		LinkedInURL: p.LinkedInURL,
		PhotoURL:    p.PhotoURL,
	}
}
