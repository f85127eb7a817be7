// Package browser owns the live browser session: acquiring it, adapting
// playwright to the small Page surface the agent drives, and the ranked
// locator strategies used against markup we do not control.
package browser

import "time"

// Page is the subset of page operations the agent uses.
// Every call is bounded by the timeout it is given.
type Page interface {
	Goto(url string, timeout time.Duration) error
	Reload(timeout time.Duration) error
	WaitForLoad(timeout time.Duration) error
	WaitForSelector(selector string, timeout time.Duration) error
	Content() (string, error)
	Click(selector string, timeout time.Duration) error
	Fill(selector, value string, timeout time.Duration) error
	IsVisible(selector string) (bool, error)
	Title() (string, error)
	URL() string
	Screenshot(path string) error
	MouseMove(x, y float64) error
	Wheel(dy float64) error
	Pause(d time.Duration)
}

// Session is a launched browser bound to one profile directory and its active page.
type Session interface {
	Page() Page
	Close() error
}
