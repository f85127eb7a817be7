package scraper

import (
	"log"
	"net/url"
	"strings"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/dedup"
	"go-hh-agent/internal/models"
	"go-hh-agent/utils"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Collector extracts listings from a settled search results page.
type Collector struct {
	site   *Site
	cfg    *config.Config
	origin *url.URL
	logger *log.Logger
}

func NewCollector(site *Site, cfg *config.Config, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	origin, err := url.Parse(site.Origin)
	if err != nil {
		origin = &url.URL{}
	}
	return &Collector{site: site, cfg: cfg, origin: origin, logger: logger}
}

// Collect waits for listing anchors and extracts them in page order.
// It never fails: when nothing can be collected the slice is empty and the
// error is a browser.Degraded saying why.
func (c *Collector) Collect(page browser.Page) ([]models.Listing, error) {
	if err := page.WaitForSelector(c.site.ListingSelector, c.cfg.ListingWait); err != nil {
		c.logger.Println("⚠️ Listing anchors did not appear")
		return []models.Listing{}, browser.Classify("wait listings", err)
	}

	content, err := page.Content()
	if err != nil {
		return []models.Listing{}, browser.Classify("read page", err)
	}

	listings := c.Parse(content)
	if len(listings) == 0 {
		return listings, browser.Degrade("collect", browser.ReasonEmpty, nil)
	}
	c.logger.Printf("📦 Collected %d listings", len(listings))
	return listings, nil
}

// Parse extracts listings from rendered HTML. At most MaxLinksScan anchors
// are examined and at most ItemsOnPage listings returned; the first anchor
// for a canonical URL claims it, even when it carries no title.
func (c *Collector) Parse(content string) []models.Listing {
	listings := []models.Listing{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		c.logger.Printf("⚠️ Could not parse page: %v", err)
		return listings
	}

	seen := dedup.NewSet()
	doc.Find(c.site.ListingSelector).EachWithBreak(func(i int, a *goquery.Selection) bool {
		if i >= c.cfg.MaxLinksScan {
			return false
		}

		href, _ := a.Attr("href")
		if !strings.Contains(href, c.site.ListingPattern) {
			return true
		}
		canonical, ok := c.canonical(href)
		if !ok || seen.IsSeen(canonical) {
			return true
		}
		seen.Add(canonical)

		title := visibleText(a)
		if title == "" {
			return true
		}

		listings = append(listings, models.Listing{
			Title:   title,
			URL:     canonical,
			Snippet: c.snippet(a),
		})
		return len(listings) < c.cfg.ItemsOnPage
	})
	return listings
}

// canonical resolves href against the site origin and strips the query.
func (c *Collector) canonical(href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	abs := c.origin.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	return utils.StripQuery(abs), true
}

// snippet is the text of the nearest card container around the anchor.
// A missing container leaves the snippet empty.
func (c *Collector) snippet(a *goquery.Selection) string {
	card := a.Parent().Closest(c.site.CardSelector)
	if card.Length() == 0 {
		return ""
	}
	return utils.Truncate(visibleText(card.First()), c.cfg.SnippetLimit)
}

var blockElements = map[string]bool{
	"article": true, "aside": true, "blockquote": true, "br": true, "dd": true,
	"div": true, "dl": true, "dt": true, "footer": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "ol": true, "p": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true,
}

// visibleText approximates rendered text: block elements are separated by
// spaces, inline ones are not, script and style are skipped.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		}
		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			b.WriteByte(' ')
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return utils.NormText(b.String())
}
