package models

// Profile selects how much of the pipeline runs. The market profile adds
// ticker resolution, the news search and the market snapshot on top of the
// basic website-plus-SWOT flow.
type Profile string

const (
	ProfileBasic  Profile = "basic"
	ProfileMarket Profile = "market"
)

// IdentityResult is the outcome of resolving a company name to its web
// presence. It is produced once per run and not mutated afterwards.
type IdentityResult struct {
	// CanonicalURL is the top search hit for the company's official site.
	// Empty means resolution failed and the run must stop.
	CanonicalURL string `json:"canonical_url"`

	// SearchContext is unstructured prose assembled from search results.
	// Downstream consumers embed it verbatim; there is no structure to rely on.
	SearchContext string `json:"search_context"`

	// Ticker is the exchange-qualified symbol (e.g. SHOP.TO), or empty for a
	// private company.
	Ticker string `json:"ticker,omitempty"`
}

// Public reports whether a ticker was resolved for the company.
func (r *IdentityResult) Public() bool {
	return r.Ticker != ""
}
