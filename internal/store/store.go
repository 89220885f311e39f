// Package store persists enrichment results and legal profiles.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/model"
)

// EnrichmentFilter narrows ListEnrichments.
type EnrichmentFilter struct {
	// WithDomain keeps only results with a validated domain.
	WithDomain bool `json:"with_domain,omitempty"`
	// Limit caps the number of rows; 0 means no limit.
	Limit int `json:"limit,omitempty"`
}

// Store defines the persistence interface for the prospecting pipeline.
type Store interface {
	// Enrichment cache. Rows are append-only; reads return the most recent
	// row per stable id. A miss is (nil, nil).
	GetEnrichment(ctx context.Context, stableID string) (*model.EnrichmentResult, error)
	PutEnrichment(ctx context.Context, result *model.EnrichmentResult) error
	ListEnrichments(ctx context.Context, filter EnrichmentFilter) ([]model.EnrichmentResult, error)

	// Legal cache, one row per SIRET. A miss is (nil, nil).
	GetLegalProfile(ctx context.Context, siret string) (*model.LegalProfile, error)
	PutLegalProfile(ctx context.Context, profile *model.LegalProfile) error

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// encodeContacts is the only place contacts become text.
func encodeContacts(contacts []model.Contact) (string, error) {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	b, err := json.Marshal(contacts)
	if err != nil {
		return "", eris.Wrap(err, "store: marshal contacts")
	}
	return string(b), nil
}

func decodeContacts(raw []byte) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if len(raw) == 0 {
		return contacts, nil
	}
	if err := json.Unmarshal(raw, &contacts); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal contacts")
	}
	return contacts, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
