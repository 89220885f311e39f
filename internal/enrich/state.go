package enrich

// State is a step of the enrichment state machine.
type State int

const (
	StateCacheCheck State = iota
	StateDomainFromProfile
	StateDomainFromSearch
	StateContactsByDomain
	StateContactsByOrg
	StatePersist
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCacheCheck:
		return "cache_check"
	case StateDomainFromProfile:
		return "domain_from_profile"
	case StateDomainFromSearch:
		return "domain_from_search"
	case StateContactsByDomain:
		return "contacts_by_domain"
	case StateContactsByOrg:
		return "contacts_by_org"
	case StatePersist:
		return "persist"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
