package domains

import (
	"strings"

	"github.com/sells-group/prospect-cli/internal/model"
)

// AcceptThreshold is the similarity a candidate must strictly exceed.
const AcceptThreshold = 65.0

// blacklist holds directory, social, review and search sites that never
// represent the company itself. Matched as substrings of the domain.
var blacklist = []string{
	"pagesjaunes.fr",
	"societe.com",
	"linkedin.com",
	"facebook.com",
	"verif.com",
	"meilleursyndic.com",
	"yelp.fr",
	"google.com",
}

// IsBlacklisted reports whether domain contains a blacklisted site.
func IsBlacklisted(domain string) bool {
	for _, bl := range blacklist {
		if strings.Contains(domain, bl) {
			return true
		}
	}
	return false
}

// Scorer computes a similarity in [0,100] between two cleaned strings.
type Scorer func(a, b string) float64

// Validator scores candidate domains against a company name.
type Validator struct {
	score Scorer
}

// NewValidator returns a Validator using PartialRatio.
func NewValidator() *Validator {
	return &Validator{score: PartialRatio}
}

// NewValidatorWithScorer returns a Validator using a custom similarity metric.
func NewValidatorWithScorer(s Scorer) *Validator {
	if s == nil {
		s = PartialRatio
	}
	return &Validator{score: s}
}

// Validate normalizes candidate and checks it plausibly belongs to
// companyName. Rejected candidates come back with an empty Domain; the
// computed score is still returned for diagnostics (0 for malformed or
// blacklisted input).
func (v *Validator) Validate(candidate, companyName string) model.ValidatedDomain {
	domain, ok := ExtractDomain(candidate)
	if !ok {
		return model.ValidatedDomain{}
	}
	if IsBlacklisted(domain) {
		return model.ValidatedDomain{}
	}

	ratio := v.score(CleanName(companyName), Label(domain))
	if ratio > AcceptThreshold {
		return model.ValidatedDomain{Domain: domain, Score: ratio}
	}
	return model.ValidatedDomain{Score: ratio}
}
