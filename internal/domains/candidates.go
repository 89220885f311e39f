package domains

import (
	"iter"
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// genericMailProviders are consumer mailbox domains that say nothing about
// the company that uses them.
var genericMailProviders = map[string]bool{
	"gmail.com":   true,
	"orange.fr":   true,
	"wanadoo.fr":  true,
	"yahoo.fr":    true,
	"yahoo.com":   true,
	"outlook.com": true,
	"outlook.fr":  true,
	"hotmail.fr":  true,
	"hotmail.com": true,
	"live.fr":     true,
	"free.fr":     true,
	"sfr.fr":      true,
	"laposte.net": true,
	"icloud.com":  true,
	"gmx.fr":      true,
}

// IsGenericMailProvider reports whether domain is a free consumer mail provider.
func IsGenericMailProvider(domain string) bool {
	return genericMailProviders[strings.ToLower(strings.TrimSpace(domain))]
}

// Candidates yields domain candidates from a legal profile: one per
// comma-separated website entry, then the email domain unless it belongs to a
// generic mail provider. The company name is not used to generate candidates;
// it is scored later by the Validator.
func Candidates(profile *model.LegalProfile) iter.Seq[model.DomainCandidate] {
	return func(yield func(model.DomainCandidate) bool) {
		if profile == nil {
			return
		}

		for site := range strings.SplitSeq(profile.Websites, ",") {
			site = strings.TrimSpace(site)
			if site == "" {
				continue
			}
			if !yield(model.DomainCandidate{Raw: site, Origin: model.OriginLegalProfile}) {
				return
			}
		}

		if d := emailDomain(profile.Email); d != "" && !IsGenericMailProvider(d) {
			yield(model.DomainCandidate{Raw: d, Origin: model.OriginLegalProfile})
		}
	}
}

// emailDomain returns the part after the last "@", or "" when there is none.
func emailDomain(email string) string {
	i := strings.LastIndexByte(email, '@')
	if i < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[i+1:]))
}
