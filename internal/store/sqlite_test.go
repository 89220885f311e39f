package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

var t0 = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func fonciaResult(at time.Time) *model.EnrichmentResult {
	return &model.EnrichmentResult{
		StableID:     "123456789",
		DisplayName:  "Foncia Paris",
		Domain:       "foncia.com",
		DomainSource: model.SourceLegalProfile,
		Contacts: []model.Contact{
			{FirstName: "Marie", LastName: "Durand", Title: "Gestionnaire", Email: "m.durand@foncia.com"},
		},
		EnrichedAt:      at,
		ConfidenceScore: 100,
	}
}

func TestSQLite_Enrichment_Miss(t *testing.T) {
	st := newTestSQLiteStore(t)

	r, err := st.GetEnrichment(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSQLite_Enrichment_RoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	want := fonciaResult(t0)
	require.NoError(t, st.PutEnrichment(ctx, want))

	got, err := st.GetEnrichment(ctx, "123456789")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.Domain, got.Domain)
	assert.Equal(t, want.DomainSource, got.DomainSource)
	assert.Equal(t, want.Contacts, got.Contacts)
	assert.Equal(t, want.ConfidenceScore, got.ConfidenceScore)
	assert.True(t, t0.Equal(got.EnrichedAt))
}

func TestSQLite_Enrichment_EmptyFieldsRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutEnrichment(ctx, &model.EnrichmentResult{
		StableID:     "987654321",
		DisplayName:  "Cabinet Inconnu",
		DomainSource: model.SourceNameFallback,
		EnrichedAt:   t0,
	}))

	got, err := st.GetEnrichment(ctx, "987654321")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Domain)
	assert.Empty(t, got.OrgID)
	assert.NotNil(t, got.Contacts)
	assert.Empty(t, got.Contacts)
}

func TestSQLite_Enrichment_LatestWins(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	older := fonciaResult(t0)
	newer := fonciaResult(t0.Add(time.Hour))
	newer.Domain = "foncia.fr"
	require.NoError(t, st.PutEnrichment(ctx, newer))
	require.NoError(t, st.PutEnrichment(ctx, older))

	got, err := st.GetEnrichment(ctx, "123456789")
	require.NoError(t, err)
	assert.Equal(t, "foncia.fr", got.Domain)
}

func TestSQLite_Enrichment_TieBrokenByInsertionOrder(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	first := fonciaResult(t0)
	second := fonciaResult(t0)
	second.OrgID = "org-2"
	require.NoError(t, st.PutEnrichment(ctx, first))
	require.NoError(t, st.PutEnrichment(ctx, second))

	got, err := st.GetEnrichment(ctx, "123456789")
	require.NoError(t, err)
	assert.Equal(t, "org-2", got.OrgID)
}

func TestSQLite_ListEnrichments(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.PutEnrichment(ctx, fonciaResult(t0)))
	latest := fonciaResult(t0.Add(time.Minute))
	latest.ConfidenceScore = 90
	require.NoError(t, st.PutEnrichment(ctx, latest))
	require.NoError(t, st.PutEnrichment(ctx, &model.EnrichmentResult{
		StableID:     "987654321",
		DisplayName:  "Cabinet Inconnu",
		DomainSource: model.SourceNameFallback,
		EnrichedAt:   t0.Add(2 * time.Minute),
	}))

	all, err := st.ListEnrichments(ctx, EnrichmentFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "987654321", all[0].StableID)
	assert.Equal(t, "123456789", all[1].StableID)
	assert.InDelta(t, 90, all[1].ConfidenceScore, 0.001)

	withDomain, err := st.ListEnrichments(ctx, EnrichmentFilter{WithDomain: true})
	require.NoError(t, err)
	require.Len(t, withDomain, 1)
	assert.Equal(t, "foncia.com", withDomain[0].Domain)

	limited, err := st.ListEnrichments(ctx, EnrichmentFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_LegalProfile(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	got, err := st.GetLegalProfile(ctx, "12345678900012")
	require.NoError(t, err)
	assert.Nil(t, got)

	p := &model.LegalProfile{
		SIRET:         "12345678900012",
		Denomination:  "FONCIA PARIS",
		CodeAPE:       "68.32A",
		AnnualRevenue: 1.5e6,
		Websites:      "foncia.com",
	}
	require.NoError(t, st.PutLegalProfile(ctx, p))

	got, err = st.GetLegalProfile(ctx, p.SIRET)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	p.Phone = "0102030405"
	p.Email = "contact@foncia.com"
	require.NoError(t, st.PutLegalProfile(ctx, p))

	got, err = st.GetLegalProfile(ctx, p.SIRET)
	require.NoError(t, err)
	assert.Equal(t, "0102030405", got.Phone)
	assert.True(t, got.HasContactDetails())
}

func TestSQLite_Ping(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Migrate(context.Background()))
}
