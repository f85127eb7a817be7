package scraper

import (
	"context"
	"log"
	"net/url"
	"strconv"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/models"
	"go-hh-agent/utils"

	"golang.org/x/time/rate"
)

// Driver builds listing URLs and navigates the session page to them.
type Driver struct {
	site    *Site
	cfg     *config.Config
	limiter *rate.Limiter
	logger  *log.Logger
}

func NewDriver(site *Site, cfg *config.Config, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.Default()
	}
	d := &Driver{site: site, cfg: cfg, logger: logger}
	if cfg.MinNavigationInterval > 0 {
		d.limiter = rate.NewLimiter(rate.Every(cfg.MinNavigationInterval), 1)
	}
	return d
}

// BuildURL renders spec as a search URL. Only filters present in spec are
// set, and the page index is always set last.
func (d *Driver) BuildURL(spec models.SearchSpec) string {
	s := d.site
	q := url.Values{}
	q.Set(s.QueryParam, spec.Query)
	q.Set(s.PageSizeParam, strconv.Itoa(d.cfg.ItemsOnPage))
	for k, v := range s.FixedParams {
		q.Set(k, v)
	}
	u := s.SearchURL + "?" + q.Encode()

	set := func(key, value string) {
		if key == "" {
			return
		}
		if out, err := utils.SetQueryParam(u, key, value); err == nil {
			u = out
		}
	}

	if spec.Region != nil {
		if code, ok := s.RegionCodes[*spec.Region]; ok {
			set(s.RegionParam, code)
		}
	}
	if spec.Experience != nil {
		if code, ok := s.ExperienceCodes[*spec.Experience]; ok {
			set(s.ExperienceParam, code)
		}
	}
	if spec.Remote {
		set(s.RemoteParam, s.RemoteValue)
	}
	if spec.SalaryFloor != nil {
		set(s.SalaryParam, strconv.Itoa(*spec.SalaryFloor))
	}
	if spec.RequireSalary {
		set(s.OnlySalaryParam, s.OnlySalaryValue)
	}

	set(s.PageParam, strconv.Itoa(spec.Page))
	return u
}

// Run navigates to the listing URL for spec and waits for the page to settle.
func (d *Driver) Run(ctx context.Context, page browser.Page, spec models.SearchSpec) error {
	u := d.BuildURL(spec)
	d.logger.Printf("🔍 Searching: %s", u)
	return d.Navigate(ctx, page, u)
}

// Home opens the site landing page.
func (d *Driver) Home(ctx context.Context, page browser.Page) error {
	return d.Navigate(ctx, page, d.site.HomeURL)
}

// Open navigates to a single listing.
func (d *Driver) Open(ctx context.Context, page browser.Page, l models.Listing) error {
	return d.Navigate(ctx, page, l.URL)
}

// Navigate goes to u, settles and checks the login hint. The only error is a
// failed navigation, reported as Degraded.
func (d *Driver) Navigate(ctx context.Context, page browser.Page, u string) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := page.Goto(u, d.cfg.NavigationTimeout); err != nil {
		d.logger.Printf("⚠️ Error navigating to %s: %v", u, err)
		return browser.Classify("goto", err)
	}
	d.Settle(page)
	d.CheckLogin(page)
	return nil
}

// Reload refreshes the current page and settles it.
func (d *Driver) Reload(ctx context.Context, page browser.Page) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := page.Reload(d.cfg.NavigationTimeout); err != nil {
		return browser.Classify("reload", err)
	}
	d.Settle(page)
	d.CheckLogin(page)
	return nil
}

// Settle waits for DOM-ready (a timeout here is ignored, the page may still
// be usable) and then for the fixed render delay.
func (d *Driver) Settle(page browser.Page) {
	if err := page.WaitForLoad(d.cfg.SettleTimeout); err != nil {
		d.logger.Printf("⏳ Page not settled in %v, continuing: %v", d.cfg.SettleTimeout, err)
	}
	page.Pause(d.cfg.SettleDelay)

	if d.cfg.Humanize {
		utils.MouseJiggle(page, d.cfg.ViewportWidth, d.cfg.ViewportHeight)
		utils.SmoothScroll(page)
	}
}

// CheckLogin reports whether the login control is visible, which usually
// means the profile is not authenticated.
func (d *Driver) CheckLogin(page browser.Page) bool {
	if d.site.LoginHint == nil {
		return false
	}
	visible, err := page.IsVisible(d.site.LoginHint.Selector())
	if err != nil || !visible {
		return false
	}
	d.logger.Printf("ℹ️ Похоже, вы не авторизованы на %s. Войдите вручную в открывшемся браузере и продолжайте работу.", d.site.Name)
	return true
}
