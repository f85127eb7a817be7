package browser

import (
	"fmt"
	"time"
)

// Locator is one strategy for finding an element.
type Locator interface {
	Selector() string
}

// ByText matches an element by its visible text.
type ByText string

func (t ByText) Selector() string { return "text=" + string(t) }

// ByControlText matches a control element (button, a, ...) containing text.
type ByControlText struct {
	Tag  string
	Text string
}

func (c ByControlText) Selector() string {
	return fmt.Sprintf("%s:has-text(%q)", c.Tag, c.Text)
}

// ByAttr matches an attribute containing a value, optionally narrowed to a descendant.
type ByAttr struct {
	Attr       string
	Contains   string
	Descendant string
}

func (a ByAttr) Selector() string {
	sel := fmt.Sprintf("[%s*='%s']", a.Attr, a.Contains)
	if a.Descendant != "" {
		sel += " " + a.Descendant
	}
	return sel
}

// ByCSS is a raw selector.
type ByCSS string

func (c ByCSS) Selector() string { return string(c) }

// Chain is a ranked list of locators tried in order.
type Chain []Locator

// Click activates the first locator that clicks within timeout.
func (c Chain) Click(p Page, timeout time.Duration) (Locator, error) {
	var last error
	for _, l := range c {
		if err := p.Click(l.Selector(), timeout); err != nil {
			last = err
			continue
		}
		return l, nil
	}
	return nil, Degrade("click", ReasonNoMatch, last)
}

// Fill focuses and fills the first locator that accepts value within timeout.
func (c Chain) Fill(p Page, value string, timeout time.Duration) (Locator, error) {
	var last error
	for _, l := range c {
		sel := l.Selector()
		if err := p.Click(sel, timeout); err != nil {
			last = err
			continue
		}
		if err := p.Fill(sel, value, timeout); err != nil {
			last = err
			continue
		}
		return l, nil
	}
	return nil, Degrade("fill", ReasonNoMatch, last)
}
