// Describe a job site for the generic driver
// Keep site-specific selectors replaceable

package scraper

import (
	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/models"
)

// Site holds everything about the target site that is expected to drift:
// endpoints, query parameter names, filter codes and locator lists.
// The driver, collector and submitter only ever see it through this struct.
type Site struct {
	Name    string
	Origin  string
	HomeURL string

	//Search endpoint and parameters
	SearchURL       string
	QueryParam      string
	PageSizeParam   string
	PageParam       string
	FixedParams     map[string]string
	RegionParam     string
	RegionCodes     map[models.Region]string
	ExperienceParam string
	ExperienceCodes map[models.Experience]string
	RemoteParam     string
	RemoteValue     string
	SalaryParam     string
	OnlySalaryParam string
	OnlySalaryValue string

	//Search results
	ListingSelector string
	ListingPattern  string
	CardSelector    string

	//Application flow
	RespondLocators  browser.Chain
	LetterLocators   browser.Chain
	EditableFallback browser.Chain
	ConfirmLocators  browser.Chain

	//Shown when the user is not logged in
	LoginHint browser.Locator
}
