package scraper_test

import (
	"context"
	"testing"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/browser/browsertest"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/internal/scraper/hh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	respondSel  = "text=Откликнуться"
	letterSel   = "[data-qa*='vacancy-response-letter'] textarea"
	editableSel = "[contenteditable='true']"
	confirmSel  = `button:has-text("Отправить")`
)

var vacancy = models.Listing{Title: "Python разработчик", URL: "https://hh.ru/vacancy/101"}

func newSubmitter() *scraper.Submitter {
	cfg := config.Default()
	site := hh.Site()
	return scraper.NewSubmitter(site, cfg, scraper.NewDriver(site, cfg, quiet()), quiet())
}

func TestApply_OpenFails(t *testing.T) {
	page := browsertest.NewPage()
	page.GotoErr = browser.ErrTimeout

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", true)

	assert.False(t, out.Done)
	assert.Equal(t, scraper.StageOpen, out.Stage)
	assert.Error(t, out.Err)
	assert.Empty(t, page.Clicks)
}

func TestApply_NoRespondControl(t *testing.T) {
	page := browsertest.NewPage().With(letterSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", true)

	assert.False(t, out.Done)
	assert.Equal(t, scraper.StageRespond, out.Stage)
	reason, _ := browser.ReasonOf(out.Err)
	assert.Equal(t, browser.ReasonNoMatch, reason)
	assert.Empty(t, page.Fills)
}

func TestApply_RespondFallsThroughChain(t *testing.T) {
	page := browsertest.NewPage().With("[data-qa*='vacancy-response']", letterSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", false)

	assert.True(t, out.Done)
	assert.Equal(t, []string{"[data-qa*='vacancy-response']", letterSel}, page.Clicks)
}

func TestApply_FillWithoutSubmit(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, letterSel, confirmSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "Здравствуйте!", false)

	assert.Equal(t, scraper.Outcome{Done: true, Stage: scraper.StageFill, Filled: true}, out)
	assert.Equal(t, "Здравствуйте!", page.Fills[letterSel])
	assert.NotContains(t, page.Clicks, confirmSel)
	assert.Equal(t, "https://hh.ru/vacancy/101", page.CurURL)
}

func TestApply_EditableFallback(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, editableSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", false)

	assert.True(t, out.Done)
	assert.True(t, out.Filled)
	assert.Equal(t, "letter", page.Fills[editableSel])
}

func TestApply_UnfillableTextareaFallsBack(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, letterSel, editableSel)
	page.Unfillable[letterSel] = true

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", false)

	assert.True(t, out.Filled)
	_, filled := page.Fills[letterSel]
	assert.False(t, filled)
	assert.Equal(t, "letter", page.Fills[editableSel])
}

func TestApply_NothingFillable(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, confirmSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", true)

	assert.True(t, out.Done)
	assert.False(t, out.Filled)
	assert.False(t, out.Submitted)
	assert.Equal(t, scraper.StageFill, out.Stage)
	reason, _ := browser.ReasonOf(out.Err)
	assert.Equal(t, browser.ReasonNoMatch, reason)
	assert.NotContains(t, page.Clicks, confirmSel)
}

func TestApply_Submit(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, letterSel, confirmSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", true)

	require.NoError(t, out.Err)
	assert.Equal(t, scraper.Outcome{Done: true, Stage: scraper.StageConfirm, Filled: true, Submitted: true}, out)
	assert.Equal(t, []string{respondSel, letterSel, confirmSel}, page.Clicks)
}

func TestApply_SubmitWithoutConfirmControl(t *testing.T) {
	page := browsertest.NewPage().With(respondSel, letterSel)

	out := newSubmitter().Apply(context.Background(), page, vacancy, "letter", true)

	assert.False(t, out.Done)
	assert.True(t, out.Filled)
	assert.False(t, out.Submitted)
	assert.Equal(t, scraper.StageConfirm, out.Stage)
	assert.Error(t, out.Err)
}
