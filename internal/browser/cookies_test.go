package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "hhtoken", "value": "abc", "domain": ".hh.ru", "path": "/", "expires": 1893456000, "httpOnly": true, "secure": true, "sameSite": "Lax"},
		{"name": "_xsrf", "value": "q", "domain": "hh.ru"}
	]`), 0644))

	cookies, err := LoadCookies(path)

	require.NoError(t, err)
	require.Len(t, cookies, 2)
	assert.Equal(t, "hhtoken", cookies[0].Name)
	assert.True(t, cookies[0].HTTPOnly)
	assert.Equal(t, "Lax", cookies[0].SameSite)
}

func TestLoadCookies_EmptyPath(t *testing.T) {
	cookies, err := LoadCookies("")

	assert.NoError(t, err)
	assert.Nil(t, cookies)
}

func TestLoadCookies_Errors(t *testing.T) {
	_, err := LoadCookies(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read cookies")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0644))
	_, err = LoadCookies(bad)
	assert.ErrorContains(t, err, "parse cookies")
}

func TestCookieToPlaywright(t *testing.T) {
	full := Cookie{Name: "a", Value: "1", Domain: ".hh.ru", Path: "/applicant", Expires: 10, HTTPOnly: true, Secure: true, SameSite: "Strict"}.toPlaywright()

	assert.Equal(t, "/applicant", *full.Path)
	assert.Equal(t, ".hh.ru", *full.Domain)
	assert.Equal(t, float64(10), *full.Expires)
	assert.True(t, *full.HttpOnly)
	assert.True(t, *full.Secure)
	assert.Equal(t, playwright.SameSiteAttributeStrict, full.SameSite)

	bare := Cookie{Name: "b", Value: "2", Domain: "hh.ru"}.toPlaywright()

	assert.Equal(t, "/", *bare.Path)
	assert.Nil(t, bare.Expires)
	assert.Nil(t, bare.HttpOnly)
	assert.Nil(t, bare.SameSite)
}
