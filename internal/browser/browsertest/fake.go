// Package browsertest provides in-memory fakes of browser.Page, Session and Engine.
package browsertest

import (
	"fmt"
	"sync"
	"time"

	"go-hh-agent/internal/browser"
)

// Page is a scripted browser.Page. Selectors listed in Present resolve,
// everything else times out.
type Page struct {
	mu sync.Mutex

	// HTML served per URL after Goto; Current is what Content returns otherwise.
	Sites   map[string]string
	Current string
	CurURL  string

	Present map[string]bool
	Visible map[string]bool
	// Unfillable selectors resolve for Click but reject Fill.
	Unfillable map[string]bool

	GotoErr    error
	ReloadErr  error
	LoadErr    error
	ContentErr error
	TitleText  string

	Calls  []string
	Clicks []string
	Fills  map[string]string
	Paused time.Duration
	Shots  []string
}

func NewPage() *Page {
	return &Page{
		Sites:      map[string]string{},
		Present:    map[string]bool{},
		Visible:    map[string]bool{},
		Unfillable: map[string]bool{},
		Fills:      map[string]string{},
	}
}

// With marks selectors as present.
func (p *Page) With(selectors ...string) *Page {
	for _, s := range selectors {
		p.Present[s] = true
	}
	return p
}

func (p *Page) record(format string, args ...any) {
	p.Calls = append(p.Calls, fmt.Sprintf(format, args...))
}

func timeout(what string) error {
	return fmt.Errorf("%w: %s", browser.ErrTimeout, what)
}

func (p *Page) Goto(url string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("goto %s", url)
	if p.GotoErr != nil {
		return p.GotoErr
	}
	p.CurURL = url
	if html, ok := p.Sites[url]; ok {
		p.Current = html
	}
	return nil
}

func (p *Page) Reload(_ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("reload")
	return p.ReloadErr
}

func (p *Page) WaitForLoad(_ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("wait-load")
	return p.LoadErr
}

func (p *Page) WaitForSelector(selector string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("wait %s", selector)
	if p.Present[selector] {
		return nil
	}
	return timeout(selector)
}

func (p *Page) Content() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Current, p.ContentErr
}

func (p *Page) Click(selector string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("click %s", selector)
	if !p.Present[selector] {
		return timeout(selector)
	}
	p.Clicks = append(p.Clicks, selector)
	return nil
}

func (p *Page) Fill(selector, value string, _ time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("fill %s", selector)
	if !p.Present[selector] || p.Unfillable[selector] {
		return timeout(selector)
	}
	p.Fills[selector] = value
	return nil
}

func (p *Page) IsVisible(selector string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Visible[selector], nil
}

func (p *Page) Title() (string, error) { return p.TitleText, nil }

func (p *Page) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.CurURL
}

func (p *Page) Screenshot(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Shots = append(p.Shots, path)
	return nil
}

func (p *Page) MouseMove(x, y float64) error { return nil }

func (p *Page) Wheel(dy float64) error { return nil }

func (p *Page) Pause(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Paused += d
}

// Session wraps a fake page.
type Session struct {
	P      *Page
	Closed int
}

func (s *Session) Page() browser.Page { return s.P }

func (s *Session) Close() error {
	s.Closed++
	return nil
}

// Engine fails launches according to Errs, indexed by call order.
// Calls past the end of Errs succeed.
type Engine struct {
	Errs     []error
	Launched []string
	Opts     []browser.LaunchOptions
	// OnLaunch runs before each launch, e.g. to inspect the profile directory.
	OnLaunch func(profileDir string)
}

func (e *Engine) LaunchPersistent(profileDir string, opts browser.LaunchOptions) (browser.Session, error) {
	if e.OnLaunch != nil {
		e.OnLaunch(profileDir)
	}
	i := len(e.Launched)
	e.Launched = append(e.Launched, profileDir)
	e.Opts = append(e.Opts, opts)
	if i < len(e.Errs) && e.Errs[i] != nil {
		return nil, e.Errs[i]
	}
	return &Session{P: NewPage()}, nil
}
