package pappers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/resilience"
)

const fonciaJSON = `{
  "siren": "123456789",
  "denomination": "FONCIA PARIS",
  "code_naf": "68.32A",
  "sites_internet": ["foncia.com", "foncia-idf.fr"],
  "telephone": null,
  "email": "",
  "lien_linkedin": "https://www.linkedin.com/company/foncia",
  "categorie_entreprise": "ETI",
  "siege": {"siret": "12345678900012", "site_internet": "", "telephone": "0102030405", "email": "contact@foncia.com", "ville": "Paris"},
  "representants": [{"nom": "DURAND", "nom_complet": "Marie DURAND", "prenom": "Marie", "qualite": "Président"}],
  "finances": [{"annee": 2024, "chiffre_affaires": 1500000}, {"annee": 2023, "chiffre_affaires": null}]
}`

func TestGetCompany_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/entreprise/", r.URL.Path)
		assert.Equal(t, "12345678900012", r.URL.Query().Get("siret"))
		assert.Equal(t, "test-token", r.URL.Query().Get("api_token"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fonciaJSON))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	c, err := client.GetCompany(context.Background(), "12345678900012")
	require.NoError(t, err)

	assert.Equal(t, "FONCIA PARIS", c.Denomination)
	assert.Equal(t, []string{"foncia.com", "foncia-idf.fr"}, c.SitesInternet)
	assert.Empty(t, c.Telephone)
	assert.Equal(t, "0102030405", c.Siege.Telephone)
	require.Len(t, c.Representants, 1)
	assert.Equal(t, "DURAND", c.Representants[0].Nom)
	require.Len(t, c.Finances, 2)
	require.NotNil(t, c.Finances[0].ChiffreAffaires)
	assert.InDelta(t, 1.5e6, *c.Finances[0].ChiffreAffaires, 0.01)
	assert.Nil(t, c.Finances[1].ChiffreAffaires)
}

func TestGetCompany_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"statusCode":404,"error":"Entreprise non trouvée"}`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	_, err := client.GetCompany(context.Background(), "00000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCompany_ServerErrorIsTransient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	_, err := client.GetCompany(context.Background(), "12345678900012")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.True(t, resilience.IsTransient(err))
}

func TestGetCompany_UnauthorizedIsPermanent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient("bad-token", WithBaseURL(srv.URL))
	_, err := client.GetCompany(context.Background(), "12345678900012")
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}

func TestGetCompany_TransportErrorHidesToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient("secret-token", WithBaseURL(srv.URL))
	_, err := client.GetCompany(context.Background(), "12345678900012")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "secret-token")
	assert.True(t, resilience.IsTransient(err))
}

func TestGetCompany_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	client := NewClient("test-token", WithBaseURL(srv.URL))
	_, err := client.GetCompany(context.Background(), "12345678900012")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}
