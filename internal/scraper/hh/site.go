package hh

import (
	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
)

const origin = "https://hh.ru"

// Site describes hh.ru search and vacancy pages.
func Site() *scraper.Site {
	return &scraper.Site{
		Name:    "hh.ru",
		Origin:  origin,
		HomeURL: origin,

		SearchURL:     origin + "/search/vacancy",
		QueryParam:    "text",
		PageSizeParam: "items_on_page",
		PageParam:     "page",
		FixedParams:   map[string]string{"no_magic": "true"},
		RegionParam:   "area",
		RegionCodes: map[models.Region]string{
			models.RegionMoscow:          "1",
			models.RegionSaintPetersburg: "2",
			models.RegionRussia:          "113",
		},
		ExperienceParam: "experience",
		ExperienceCodes: map[models.Experience]string{
			models.ExperienceNone:         "noExperience",
			models.ExperienceBetween1And3: "between1And3",
			models.ExperienceBetween3And6: "between3And6",
			models.ExperienceMoreThan6:    "moreThan6",
		},
		RemoteParam:     "schedule",
		RemoteValue:     "remote",
		SalaryParam:     "salary",
		OnlySalaryParam: "only_with_salary",
		OnlySalaryValue: "true",

		ListingSelector: "a[href*='/vacancy/']",
		ListingPattern:  "/vacancy/",
		CardSelector:    "div, article",

		RespondLocators: browser.Chain{
			browser.ByText("Откликнуться"),
			browser.ByControlText{Tag: "button", Text: "Откликнуться"},
			browser.ByAttr{Attr: "data-qa", Contains: "vacancy-response"},
		},
		LetterLocators: browser.Chain{
			browser.ByAttr{Attr: "data-qa", Contains: "vacancy-response-letter", Descendant: "textarea"},
			browser.ByAttr{Attr: "data-qa", Contains: "cover-letter", Descendant: "textarea"},
			browser.ByCSS("textarea"),
		},
		EditableFallback: browser.Chain{
			browser.ByCSS("[contenteditable='true']"),
		},
		ConfirmLocators: browser.Chain{
			browser.ByControlText{Tag: "button", Text: "Отправить"},
			browser.ByText("Отправить"),
		},

		LoginHint: browser.ByText("Войти"),
	}
}
