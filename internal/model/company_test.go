package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalProfile_LeaderName(t *testing.T) {
	p := &LegalProfile{LeaderFirstName: "Jean", LeaderLastName: "Dupont"}
	assert.Equal(t, "Jean Dupont", p.LeaderName())

	p = &LegalProfile{LeaderLastName: "SARL GESTION"}
	assert.Equal(t, "SARL GESTION", p.LeaderName())

	var nilProfile *LegalProfile
	assert.Empty(t, nilProfile.LeaderName())
}

func TestLegalProfile_HasContactDetails(t *testing.T) {
	assert.False(t, (*LegalProfile)(nil).HasContactDetails())
	assert.False(t, (&LegalProfile{}).HasContactDetails())
	assert.True(t, (&LegalProfile{Phone: "0102030405"}).HasContactDetails())
	assert.True(t, (&LegalProfile{Email: "contact@foncia.fr"}).HasContactDetails())
}

func TestContact_JSONKeysAlwaysPresent(t *testing.T) {
	data, err := json.Marshal(Contact{FirstName: "Marie"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"first_name", "last_name", "title", "email", "linkedin_url", "photo_url"} {
		v, ok := raw[key]
		assert.True(t, ok, "missing key %s", key)
		assert.NotNil(t, v, "nil value for %s", key)
	}
}

func TestValidatedDomain_Accepted(t *testing.T) {
	assert.True(t, ValidatedDomain{Domain: "foncia.com", Score: 100}.Accepted())
	assert.False(t, ValidatedDomain{Score: 40}.Accepted())
}
