package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/legal"
	"github.com/sells-group/prospect-cli/internal/model"
)

func TestInitEnv_NoKeysStillWires(t *testing.T) {
	cfg = testConfig(t)

	env, err := initEnv(context.Background(), "enrich")
	require.NoError(t, err)
	defer env.Close()

	assert.NotNil(t, env.Store)
	assert.NotNil(t, env.Cache)
	assert.NotNil(t, env.Legal)
	assert.NotNil(t, env.Enricher)
	assert.NotNil(t, env.Service)
	assert.Nil(t, initApollo())
	assert.Nil(t, initPappers())

	_, err = env.Legal.Lookup(context.Background(), "123456789")
	assert.ErrorIs(t, err, legal.ErrNoCredential)
}

func TestInitEnv_InvalidConfig(t *testing.T) {
	cfg = testConfig(t)
	cfg.Store.Driver = "mysql"

	_, err := initEnv(context.Background(), "enrich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
}

func TestInitEnv_EnrichWithHintOffline(t *testing.T) {
	cfg = testConfig(t)

	env, err := initEnv(context.Background(), "enrich")
	require.NoError(t, err)
	defer env.Close()

	ctx := context.Background()
	id := model.CompanyIdentity{StableID: "123456789", DisplayName: "Foncia Paris", CityHint: "Paris"}
	result, err := env.Enricher.Enrich(ctx, id, &model.LegalProfile{Websites: "foncia.com"})
	require.NoError(t, err)
	assert.Equal(t, "foncia.com", result.Domain)
	assert.Empty(t, result.Contacts)

	cached, err := env.Store.GetEnrichment(ctx, "123456789")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, "foncia.com", cached.Domain)
}

func TestInitSearchProvider(t *testing.T) {
	cfg = testConfig(t)
	assert.Equal(t, "duckduckgo", initSearchProvider().Name())

	cfg.Search.Provider = "jina"
	assert.Equal(t, "duckduckgo", initSearchProvider().Name(), "falls back without a jina key")

	cfg.Jina.Key = "jina-key"
	assert.Equal(t, "jina", initSearchProvider().Name())
}

func TestInitApollo_WithKey(t *testing.T) {
	cfg = testConfig(t)
	cfg.Apollo.Key = "apollo-key"
	assert.NotNil(t, initApollo())

	cfg.Pappers.Key = "pappers-key"
	assert.NotNil(t, initPappers())
}
