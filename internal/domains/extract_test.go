package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"full url", "https://www.foncia.com/fr/syndic", "foncia.com", true},
		{"no scheme", "www.Foncia.COM", "foncia.com", true},
		{"bare domain", "foncia-idf.fr", "foncia-idf.fr", true},
		{"http with port", "http://cabinet-dupont.fr:8080/contact", "cabinet-dupont.fr", true},
		{"surrounding spaces", "  citya.com  ", "citya.com", true},
		{"upper scheme", "HTTPS://WWW.LAMY.FR", "lamy.fr", true},
		{"only www stripped once", "www.www.example.fr", "www.example.fr", true},
		{"empty", "", "", false},
		{"blank", "   ", "", false},
		{"scheme only", "https://", "", false},
		{"malformed ipv6", "http://[::1", "", false},
		{"space in host", "foncia paris.fr", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDomain(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDomain_SchemeInvariant(t *testing.T) {
	inputs := []string{
		"foncia.com",
		"www.foncia.com/fr",
		"sub.domain.cabinet-dupont.fr/path?q=1",
		"oralia.fr:443",
	}
	for _, in := range inputs {
		withoutScheme, ok1 := ExtractDomain(in)
		withScheme, ok2 := ExtractDomain("https://" + in)
		assert.Equal(t, ok1, ok2, in)
		assert.Equal(t, withScheme, withoutScheme, in)
	}
}

func TestExtractDomain_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.foncia.com/fr",
		"http://Immo-De-France.fr/agences",
		"www.citya.com",
	}
	for _, in := range inputs {
		first, ok := ExtractDomain(in)
		assert.True(t, ok, in)

		second, ok := ExtractDomain("https://" + first)
		assert.True(t, ok, in)
		assert.Equal(t, first, second, in)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"foncia.com", "foncia"},
		{"foncia-idf.fr", "foncia-idf"},
		{"paris.foncia.co.uk", "paris"},
		{"cabinet.gouv.fr", "cabinet"},
		{"localhost", "localhost"},
		{"FONCIA.FR.", "foncia"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.domain))
		})
	}
}
