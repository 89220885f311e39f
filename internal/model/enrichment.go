package model

import "time"

// CandidateOrigin records where a domain candidate came from.
type CandidateOrigin string

const (
	OriginLegalProfile CandidateOrigin = "legal_profile"
	OriginWebSearch    CandidateOrigin = "web_search"
)

// DomainSource records how the selected domain was obtained.
type DomainSource string

const (
	SourceLegalProfile DomainSource = "legal_profile"
	SourceWebSearch    DomainSource = "web_search"
	// SourceNameFallback means no domain was found and the organization
	// search was attempted by name.
	SourceNameFallback DomainSource = "name_fallback"
)

// DomainCandidate is a raw domain-like string awaiting validation.
type DomainCandidate struct {
	Raw    string          `json:"raw" yaml:"raw"`
	Origin CandidateOrigin `json:"origin" yaml:"origin"`
}

// ValidatedDomain is the outcome of scoring a candidate against a company name.
// Domain is empty when the candidate was rejected; Score is kept either way.
type ValidatedDomain struct {
	Domain string  `json:"domain" yaml:"domain"`
	Score  float64 `json:"confidence_score" yaml:"confidence_score"`
}

// Accepted reports whether the candidate passed validation.
func (v ValidatedDomain) Accepted() bool {
	return v.Domain != ""
}

// SearchHit is a single web search result.
type SearchHit struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// Contact is a decision-maker returned by the contact-intelligence provider.
// Every field is always present in JSON; missing values are empty strings.
type Contact struct {
	FirstName   string `json:"first_name" yaml:"first_name"`
	LastName    string `json:"last_name" yaml:"last_name"`
	Title       string `json:"title" yaml:"title"`
	Email       string `json:"email" yaml:"email"`
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`
	PhotoURL    string `json:"photo_url" yaml:"photo_url"`
}

// EnrichmentResult is the persisted outcome of one enrichment run.
type EnrichmentResult struct {
	StableID        string       `json:"stable_id" yaml:"stable_id"`
	DisplayName     string       `json:"display_name" yaml:"display_name"`
	Domain          string       `json:"domain" yaml:"domain"` // empty when no domain was validated
	DomainSource    DomainSource `json:"domain_source" yaml:"domain_source"`
	OrgID           string       `json:"org_id" yaml:"org_id"`
	Contacts        []Contact    `json:"contacts" yaml:"contacts"`
	EnrichedAt      time.Time    `json:"enriched_at" yaml:"enriched_at"`
	ConfidenceScore float64      `json:"confidence_score" yaml:"confidence_score"`
}

// HasDomain reports whether a validated domain was found.
func (r *EnrichmentResult) HasDomain() bool {
	return r != nil && r.Domain != ""
}
