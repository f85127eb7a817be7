package utils

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`\s+`)

// NormText collapses every whitespace run to a single space and trims the ends.
// Input is NFC-composed first so "ё" typed as е+U+0308 matches keyword lists.
func NormText(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Truncate cuts s to at most limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// SetQueryParam sets key=value on rawURL, replacing any existing values of key.
// Other parameters keep their values; the query is re-encoded in key order.
func SetQueryParam(rawURL, key, value string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// StripQuery drops the query string and fragment, leaving the canonical form
// used as a listing identity.
func StripQuery(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.ForceQuery = false
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}
