// Package model holds the data types shared across the prospecting pipeline.
package model

import "strings"

// CompanyIdentity identifies a property-management firm (syndic) to enrich.
// It is treated as immutable for the duration of an enrichment call.
type CompanyIdentity struct {
	StableID    string `json:"stable_id" yaml:"stable_id"`       // SIREN/SIRET, used as the cache key
	DisplayName string `json:"display_name" yaml:"display_name"` // legal name as found in the warehouse
	CityHint    string `json:"city_hint" yaml:"city_hint"`       // municipality of the first matching building
}

// LegalProfile is the legal-registry view of a company (Pappers).
type LegalProfile struct {
	SIRET           string  `json:"siret" yaml:"siret"`
	Denomination    string  `json:"denomination" yaml:"denomination"`
	LeaderLastName  string  `json:"leader_last_name" yaml:"leader_last_name"`
	LeaderFirstName string  `json:"leader_first_name" yaml:"leader_first_name"`
	CodeAPE         string  `json:"code_ape" yaml:"code_ape"`
	AnnualRevenue   float64 `json:"annual_revenue" yaml:"annual_revenue"`
	Websites        string  `json:"websites" yaml:"websites"` // comma-separated, as returned upstream
	Phone           string  `json:"phone" yaml:"phone"`
	Email           string  `json:"email" yaml:"email"`
	LinkedInURL     string  `json:"linkedin_url" yaml:"linkedin_url"`
	Category        string  `json:"category" yaml:"category"`
}

// LeaderName returns "First Last" for the first legal representative.
func (p *LegalProfile) LeaderName() string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p.LeaderFirstName + " " + p.LeaderLastName)
}

// HasContactDetails reports whether the profile carries a phone or an email.
func (p *LegalProfile) HasContactDetails() bool {
	return p != nil && (p.Phone != "" || p.Email != "")
}
