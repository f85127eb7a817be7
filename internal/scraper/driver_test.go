package scraper_test

import (
	"context"
	"io"
	"log"
	"net/url"
	"testing"
	"time"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/browser/browsertest"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/internal/scraper/hh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func newDriver(cfg *config.Config) *scraper.Driver {
	return scraper.NewDriver(hh.Site(), cfg, quiet())
}

func query(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "hh.ru", u.Host)
	assert.Equal(t, "/search/vacancy", u.Path)
	return u.Query()
}

func TestBuildURL_Minimal(t *testing.T) {
	d := newDriver(config.Default())

	q := query(t, d.BuildURL(models.SearchSpec{Query: "Python разработчик"}))

	assert.Equal(t, url.Values{
		"text":          {"Python разработчик"},
		"items_on_page": {"20"},
		"no_magic":      {"true"},
		"page":          {"0"},
	}, q)
}

func TestBuildURL_AllFilters(t *testing.T) {
	d := newDriver(config.Default())
	region := models.RegionSaintPetersburg
	band := models.ExperienceNone
	salary := 200000

	q := query(t, d.BuildURL(models.SearchSpec{
		Query:         "Django разработчик",
		Page:          3,
		Region:        &region,
		Experience:    &band,
		Remote:        true,
		SalaryFloor:   &salary,
		RequireSalary: true,
	}))

	assert.Equal(t, url.Values{
		"text":             {"Django разработчик"},
		"items_on_page":    {"20"},
		"no_magic":         {"true"},
		"area":             {"2"},
		"experience":       {"noExperience"},
		"schedule":         {"remote"},
		"salary":           {"200000"},
		"only_with_salary": {"true"},
		"page":             {"3"},
	}, q)
}

func TestBuildURL_PageParamNotOverwritten(t *testing.T) {
	site := hh.Site()
	// A filter that collides with the page parameter must lose to it.
	site.SalaryParam = "page"
	d := scraper.NewDriver(site, config.Default(), quiet())
	salary := 150000

	q := query(t, d.BuildURL(models.SearchSpec{Query: "go", Page: 2, SalaryFloor: &salary}))

	assert.Equal(t, []string{"2"}, q["page"])
}

func TestBuildURL_UnknownRegionSkipped(t *testing.T) {
	d := newDriver(config.Default())
	region := models.Region("atlantis")

	q := query(t, d.BuildURL(models.SearchSpec{Query: "go", Region: &region}))

	_, ok := q["area"]
	assert.False(t, ok)
}

func TestBuildURL_PageSizeFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.ItemsOnPage = 50

	q := query(t, newDriver(cfg).BuildURL(models.SearchSpec{Query: "go"}))

	assert.Equal(t, "50", q.Get("items_on_page"))
}

func TestRun_SettleTimeoutSwallowed(t *testing.T) {
	cfg := config.Default()
	page := browsertest.NewPage()
	page.LoadErr = browser.ErrTimeout

	err := newDriver(cfg).Run(context.Background(), page, models.SearchSpec{Query: "go"})

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(page.Calls), 2)
	assert.Contains(t, page.Calls[0], "goto https://hh.ru/search/vacancy?")
	assert.Equal(t, "wait-load", page.Calls[1])
	assert.Equal(t, cfg.SettleDelay, page.Paused)
}

func TestRun_NavigationFailureDegrades(t *testing.T) {
	page := browsertest.NewPage()
	page.GotoErr = browser.ErrTimeout

	err := newDriver(config.Default()).Run(context.Background(), page, models.SearchSpec{Query: "go"})

	reason, ok := browser.ReasonOf(err)
	require.True(t, ok)
	assert.Equal(t, browser.ReasonTimeout, reason)
	assert.Zero(t, page.Paused)
}

func TestNavigate_RateLimitedRespectsContext(t *testing.T) {
	cfg := config.Default()
	cfg.MinNavigationInterval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	page := browsertest.NewPage()

	err := newDriver(cfg).Navigate(ctx, page, "https://hh.ru")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, page.Calls)
}

func TestCheckLogin(t *testing.T) {
	d := newDriver(config.Default())
	page := browsertest.NewPage()
	assert.False(t, d.CheckLogin(page))

	page.Visible["text=Войти"] = true
	assert.True(t, d.CheckLogin(page))
}

func TestReload(t *testing.T) {
	page := browsertest.NewPage()
	require.NoError(t, newDriver(config.Default()).Reload(context.Background(), page))
	assert.Equal(t, []string{"reload", "wait-load"}, page.Calls)

	page.ReloadErr = assert.AnError
	err := newDriver(config.Default()).Reload(context.Background(), page)
	reason, _ := browser.ReasonOf(err)
	assert.Equal(t, browser.ReasonNoMatch, reason)
}
