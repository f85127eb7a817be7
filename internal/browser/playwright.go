package browser

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightEngine drives Chromium (or a compatible binary) through playwright.
type PlaywrightEngine struct {
	pw *playwright.Playwright
}

// NewPlaywrightEngine starts the playwright driver.
func NewPlaywrightEngine() (*PlaywrightEngine, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	return &PlaywrightEngine{pw: pw}, nil
}

// LaunchPersistent opens a persistent context on profileDir with automation
// markers disabled and returns its first page.
func (e *PlaywrightEngine) LaunchPersistent(profileDir string, opts LaunchOptions) (Session, error) {
	launch := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:          playwright.Bool(opts.Headless),
		Viewport:          &playwright.Size{Width: opts.ViewportWidth, Height: opts.ViewportHeight},
		Timeout:           playwright.Float(millis(opts.Timeout)),
		Args:              launchArgs,
		IgnoreDefaultArgs: ignoredDefaultArgs,
	}
	if opts.ExecutablePath != "" {
		launch.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	bctx, err := e.pw.Chromium.LaunchPersistentContext(profileDir, launch)
	if err != nil {
		return nil, err
	}

	if err := bctx.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		bctx.Close()
		return nil, fmt.Errorf("add stealth script: %w", err)
	}

	if len(opts.Cookies) > 0 {
		cookies := make([]playwright.OptionalCookie, len(opts.Cookies))
		for i, c := range opts.Cookies {
			cookies[i] = c.toPlaywright()
		}
		if err := bctx.AddCookies(cookies); err != nil {
			bctx.Close()
			return nil, fmt.Errorf("add cookies: %w", err)
		}
	}

	var page playwright.Page
	if pages := bctx.Pages(); len(pages) > 0 {
		page = pages[0]
	} else if page, err = bctx.NewPage(); err != nil {
		bctx.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}

	return &pwSession{bctx: bctx, page: &pwPage{page: page}}, nil
}

// Stop shuts the playwright driver down.
func (e *PlaywrightEngine) Stop() error {
	return e.pw.Stop()
}

type pwSession struct {
	bctx     playwright.BrowserContext
	page     *pwPage
	once     sync.Once
	closeErr error
}

func (s *pwSession) Page() Page { return s.page }

func (s *pwSession) Close() error {
	s.once.Do(func() {
		s.closeErr = s.bctx.Close()
	})
	return s.closeErr
}

// NewPage adapts a bare playwright page, e.g. one from a test browser.
func NewPage(page playwright.Page) Page {
	return &pwPage{page: page}
}

type pwPage struct {
	page playwright.Page
}

func (p *pwPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(timeout)),
	})
	return wrap(err)
}

func (p *pwPage) Reload(timeout time.Duration) error {
	_, err := p.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(millis(timeout)),
	})
	return wrap(err)
}

func (p *pwPage) WaitForLoad(timeout time.Duration) error {
	return wrap(p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateDomcontentloaded,
		Timeout: playwright.Float(millis(timeout)),
	}))
}

func (p *pwPage) WaitForSelector(selector string, timeout time.Duration) error {
	return wrap(p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(timeout)),
	}))
}

func (p *pwPage) Content() (string, error) {
	html, err := p.page.Content()
	return html, wrap(err)
}

func (p *pwPage) Click(selector string, timeout time.Duration) error {
	return wrap(p.page.Locator(selector).First().Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(millis(timeout)),
	}))
}

func (p *pwPage) Fill(selector, value string, timeout time.Duration) error {
	return wrap(p.page.Locator(selector).First().Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(millis(timeout)),
	}))
}

// IsVisible checks the first match as the page is now, without waiting.
func (p *pwPage) IsVisible(selector string) (bool, error) {
	visible, err := p.page.Locator(selector).First().IsVisible()
	return visible, wrap(err)
}

func (p *pwPage) Title() (string, error) {
	t, err := p.page.Title()
	return t, wrap(err)
}

func (p *pwPage) URL() string { return p.page.URL() }

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return wrap(err)
}

func (p *pwPage) MouseMove(x, y float64) error {
	return wrap(p.page.Mouse().Move(x, y))
}

func (p *pwPage) Wheel(dy float64) error {
	return wrap(p.page.Mouse().Wheel(0, dy))
}

func (p *pwPage) Pause(d time.Duration) {
	p.page.WaitForTimeout(millis(d))
}

// wrap maps playwright timeouts onto ErrTimeout so callers stay engine-agnostic.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func millis(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
