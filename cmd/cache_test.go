package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestCacheShowCmd(t *testing.T) {
	cfg = testConfig(t)
	ctx := context.Background()

	st, err := initStore(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.PutEnrichment(ctx, &model.EnrichmentResult{
		StableID:     "123456789",
		DisplayName:  "Foncia Paris",
		Domain:       "foncia.com",
		DomainSource: model.SourceLegalProfile,
		Contacts:     []model.Contact{},
		EnrichedAt:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, st.Close())

	defer func() { cacheSIRET, cacheOutput = "", "json" }()
	var out bytes.Buffer
	cacheShowCmd.SetOut(&out)
	defer cacheShowCmd.SetOut(nil)
	cacheShowCmd.SetContext(ctx)

	cacheSIRET, cacheOutput = "123456789", "yaml"
	require.NoError(t, cacheShowCmd.RunE(cacheShowCmd, nil))
	assert.Contains(t, out.String(), "domain: foncia.com")

	out.Reset()
	cacheSIRET = "000000000"
	require.NoError(t, cacheShowCmd.RunE(cacheShowCmd, nil))
	assert.Equal(t, "no cached enrichment for 000000000\n", out.String())
}

func TestExportCmd(t *testing.T) {
	cfg = testConfig(t)
	ctx := context.Background()
	exportCmd.SetContext(ctx)

	defer func() { exportOutput = "prospects.xlsx" }()
	exportOutput = t.TempDir() + "/out.xlsx"
	require.NoError(t, exportCmd.RunE(exportCmd, nil))
}

func TestMigrateCmd(t *testing.T) {
	cfg = testConfig(t)
	migrateCmd.SetContext(context.Background())
	require.NoError(t, migrateCmd.RunE(migrateCmd, nil))
}
