package domain

// Suggestion is the metadata proposal produced by the vision model for a
// pair of garment photos. Fields the model cannot determine come back as
// empty strings; the client treats every field as a prefill, not a fact.
type Suggestion struct {
	Brand       string `json:"brand"`
	Type        string `json:"type"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
