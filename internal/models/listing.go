package models

// Listing is one job posting found on a search results page.
// URL is canonical (query stripped) and identifies the listing.
type Listing struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
