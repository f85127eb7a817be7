package browser_test

import (
	"testing"
	"time"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorSelectors(t *testing.T) {
	tests := []struct {
		name string
		loc  browser.Locator
		want string
	}{
		{"text", browser.ByText("Откликнуться"), "text=Откликнуться"},
		{"control", browser.ByControlText{Tag: "button", Text: "Отправить"}, `button:has-text("Отправить")`},
		{"attr", browser.ByAttr{Attr: "data-qa", Contains: "vacancy-response"}, "[data-qa*='vacancy-response']"},
		{"attr descendant", browser.ByAttr{Attr: "data-qa", Contains: "cover-letter", Descendant: "textarea"}, "[data-qa*='cover-letter'] textarea"},
		{"css", browser.ByCSS("textarea"), "textarea"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loc.Selector())
		})
	}
}

func TestChainClick_FallsThroughInOrder(t *testing.T) {
	page := browsertest.NewPage().With("[data-qa*='vacancy-response']")
	chain := browser.Chain{
		browser.ByText("Откликнуться"),
		browser.ByControlText{Tag: "button", Text: "Откликнуться"},
		browser.ByAttr{Attr: "data-qa", Contains: "vacancy-response"},
	}

	hit, err := chain.Click(page, time.Second)

	require.NoError(t, err)
	assert.Equal(t, chain[2], hit)
	assert.Equal(t, []string{
		"click text=Откликнуться",
		`click button:has-text("Откликнуться")`,
		"click [data-qa*='vacancy-response']",
	}, page.Calls)
}

func TestChainClick_NoMatch(t *testing.T) {
	page := browsertest.NewPage()

	_, err := browser.Chain{browser.ByCSS("button")}.Click(page, time.Second)

	reason, ok := browser.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, browser.ReasonNoMatch, reason)
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestChainFill_SkipsUnfillable(t *testing.T) {
	page := browsertest.NewPage().With("[data-qa*='cover-letter'] textarea", "textarea")
	page.Unfillable["[data-qa*='cover-letter'] textarea"] = true
	chain := browser.Chain{browser.ByAttr{Attr: "data-qa", Contains: "cover-letter", Descendant: "textarea"}, browser.ByCSS("textarea")}

	hit, err := chain.Fill(page, "hello", time.Second)

	require.NoError(t, err)
	assert.Equal(t, browser.ByCSS("textarea"), hit)
	assert.Equal(t, map[string]string{"textarea": "hello"}, page.Fills)
}

func TestClassify(t *testing.T) {
	r, _ := browser.ReasonOf(browser.Classify("wait", browser.ErrTimeout))
	assert.Equal(t, browser.ReasonTimeout, r)

	r, _ = browser.ReasonOf(browser.Classify("wait", assert.AnError))
	assert.Equal(t, browser.ReasonNoMatch, r)

	_, ok := browser.ReasonOf(assert.AnError)
	assert.False(t, ok)
}
