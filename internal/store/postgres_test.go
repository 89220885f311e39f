package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return newPostgresWithPool(mock), mock
}

func ptr(s string) *string { return &s }

var enrichmentCols = []string{"stable_id", "display_name", "domain", "domain_source", "org_id", "contacts", "confidence_score", "enriched_at"}

func TestPostgresStore_GetEnrichment_Miss(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT stable_id, .* FROM enrichment_cache\s+WHERE stable_id = \$1 ORDER BY enriched_at DESC, seq DESC LIMIT 1`).
		WithArgs("123456789").
		WillReturnError(pgx.ErrNoRows)

	r, err := s.GetEnrichment(context.Background(), "123456789")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEnrichment_Hit(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM enrichment_cache`).
		WithArgs("123456789").
		WillReturnRows(pgxmock.NewRows(enrichmentCols).AddRow(
			"123456789", "Foncia Paris", ptr("foncia.com"), "legal_profile", (*string)(nil),
			[]byte(`[{"first_name":"Marie","last_name":"Durand","title":"Gestionnaire","email":"","linkedin_url":"","photo_url":""}]`),
			100.0, at,
		))

	r, err := s.GetEnrichment(context.Background(), "123456789")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, "foncia.com", r.Domain)
	assert.Empty(t, r.OrgID)
	assert.Equal(t, model.SourceLegalProfile, r.DomainSource)
	require.Len(t, r.Contacts, 1)
	assert.Equal(t, "Marie", r.Contacts[0].FirstName)
	assert.True(t, at.Equal(r.EnrichedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetEnrichment_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM enrichment_cache`).
		WithArgs("123456789").
		WillReturnError(errors.New("connection lost"))

	_, err := s.GetEnrichment(context.Background(), "123456789")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: get enrichment")
}

func TestPostgresStore_PutEnrichment(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	r := &model.EnrichmentResult{
		StableID:     "987654321",
		DisplayName:  "Cabinet Inconnu",
		DomainSource: model.SourceNameFallback,
		EnrichedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec(`INSERT INTO enrichment_cache \(id, stable_id, .*\) VALUES \(\$1, .*\$7::jsonb, \$8, \$9\)`).
		WithArgs(pgxmock.AnyArg(), "987654321", "Cabinet Inconnu", pgxmock.AnyArg(), "name_fallback",
			pgxmock.AnyArg(), "[]", 0.0, r.EnrichedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.PutEnrichment(context.Background(), r))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListEnrichments(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT DISTINCT ON \(stable_id\) .* WHERE domain IS NOT NULL ORDER BY stable_id, enriched_at DESC, seq DESC\) latest ORDER BY enriched_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(enrichmentCols).
			AddRow("1", "A", ptr("a.fr"), "legal_profile", ptr("org-a"), []byte(`[]`), 90.0, at).
			AddRow("2", "B", ptr("b.fr"), "web_search", (*string)(nil), []byte(`[]`), 70.0, at.Add(-time.Hour)))

	results, err := s.ListEnrichments(context.Background(), EnrichmentFilter{WithDomain: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "org-a", results[0].OrgID)
	assert.Equal(t, model.SourceWebSearch, results[1].DomainSource)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetLegalProfile_Miss(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT siret, .* FROM legal_cache WHERE siret = \$1`).
		WithArgs("12345678900012").
		WillReturnError(pgx.ErrNoRows)

	p, err := s.GetLegalProfile(context.Background(), "12345678900012")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PutLegalProfile(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	mock.ExpectExec(`INSERT INTO "legal_cache" .* ON CONFLICT \("siret"\) DO UPDATE SET`).
		WithArgs("12345678900012", "FONCIA PARIS", "", "", "68.32A", 0.0, "foncia.com", "", "", "", "", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.PutLegalProfile(context.Background(), &model.LegalProfile{
		SIRET:        "12345678900012",
		Denomination: "FONCIA PARIS",
		CodeAPE:      "68.32A",
		Websites:     "foncia.com",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_MigrateAndPing(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS enrichment_cache`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
