package types

// RegulationSource identifies the authoritative publication a state's
// regulations were curated from.
type RegulationSource struct {
	Name            string `json:"name"`
	HuntingGuideURL string `json:"hunting_guide_url"`
	LicenseURL      string `json:"license_url"`
}

// StateRegulations holds a state's curated hunting regulations: season dates,
// license fees, and bag limits per species. Updated seasonally from the state
// agency's published guide, never guessed.
type StateRegulations struct {
	State       string                       `json:"state"`
	StateName   string                       `json:"state_name"`
	LastUpdated string                       `json:"last_updated"`
	Source      RegulationSource             `json:"source"`
	Seasons     map[string]map[string]string `json:"seasons"`
	Licenses    map[string]string            `json:"licenses"`
	BagLimits   map[string]string            `json:"bag_limits"`
	LegalHours  string                       `json:"legal_hours"`
	Weapons     map[string]string            `json:"weapons"`
}
