package browser_test

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/browser/browsertest"
	"go-hh-agent/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.ProfileDir = filepath.Join(dir, "main")
	cfg.FallbackProfileDir = filepath.Join(dir, "fallback")
	cfg.AlternateBrowserPath = ""
	cfg.LaunchRetryPause = time.Millisecond
	return cfg
}

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func TestAcquire_FirstSuccessStops(t *testing.T) {
	cfg := testConfig(t)
	engine := &browsertest.Engine{}

	session, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(context.Background())

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, []string{cfg.ProfileDir}, engine.Launched)
	assert.DirExists(t, cfg.ProfileDir)
	assert.NoDirExists(t, cfg.FallbackProfileDir)
}

func TestAcquire_TriesInOrder(t *testing.T) {
	cfg := testConfig(t)
	engine := &browsertest.Engine{Errs: []error{errors.New("profile locked")}}

	session, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(context.Background())

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, []string{cfg.ProfileDir, cfg.FallbackProfileDir}, engine.Launched)
}

func TestAcquire_FreshProfileWipedBeforeLaunch(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.FallbackProfileDir, 0755))
	stale := filepath.Join(cfg.FallbackProfileDir, "Local State")
	require.NoError(t, os.WriteFile(stale, []byte("corrupt"), 0644))

	var staleAtLaunch bool
	engine := &browsertest.Engine{
		Errs: []error{errors.New("boom")},
		OnLaunch: func(dir string) {
			if dir == cfg.FallbackProfileDir {
				_, err := os.Stat(stale)
				staleAtLaunch = err == nil
			}
		},
	}

	_, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(context.Background())

	require.NoError(t, err)
	assert.False(t, staleAtLaunch, "fallback profile must be wiped before its launch")
	assert.DirExists(t, cfg.FallbackProfileDir)
}

func TestAcquire_AllFail(t *testing.T) {
	cfg := testConfig(t)
	last := errors.New("executable doesn't exist")
	engine := &browsertest.Engine{Errs: []error{errors.New("first"), last}}

	session, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(context.Background())

	assert.Nil(t, session)
	var acqErr *browser.AcquisitionError
	require.ErrorAs(t, err, &acqErr)
	assert.Len(t, acqErr.Failures, 2)
	assert.ErrorIs(t, err, last)
	assert.Contains(t, err.Error(), "Chromium fresh fallback")
}

func TestAcquire_AlternateBrowserAttempt(t *testing.T) {
	cfg := testConfig(t)
	bin := filepath.Join(t.TempDir(), "browser.exe")
	require.NoError(t, os.WriteFile(bin, []byte{}, 0755))
	cfg.AlternateBrowserPath = bin

	attempts := browser.Attempts(cfg)
	require.Len(t, attempts, 3)
	assert.True(t, attempts[2].UseAlternateBrowser)
	assert.True(t, attempts[2].FreshProfile)

	engine := &browsertest.Engine{Errs: []error{errors.New("a"), errors.New("b")}}
	_, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(context.Background())

	require.NoError(t, err)
	require.Len(t, engine.Opts, 3)
	assert.Empty(t, engine.Opts[0].ExecutablePath)
	assert.Empty(t, engine.Opts[1].ExecutablePath)
	assert.Equal(t, bin, engine.Opts[2].ExecutablePath)
}

func TestAttempts_SkipsMissingAlternateBrowser(t *testing.T) {
	cfg := testConfig(t)
	cfg.AlternateBrowserPath = filepath.Join(t.TempDir(), "missing.exe")

	assert.Len(t, browser.Attempts(cfg), 2)
}

func TestAcquire_NoAttempts(t *testing.T) {
	cfg := testConfig(t)
	engine := &browsertest.Engine{}

	_, err := browser.NewLauncher(engine, cfg, quiet()).WithAttempts(nil).Acquire(context.Background())

	var acqErr *browser.AcquisitionError
	require.ErrorAs(t, err, &acqErr)
	assert.Empty(t, engine.Launched)
}

func TestAcquire_CancelledBetweenAttempts(t *testing.T) {
	cfg := testConfig(t)
	cfg.LaunchRetryPause = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	engine := &browsertest.Engine{
		Errs:     []error{errors.New("first")},
		OnLaunch: func(string) { cancel() },
	}

	_, err := browser.NewLauncher(engine, cfg, quiet()).Acquire(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, engine.Launched, 1)
}

func TestLaunchOptionsFromConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Headless = true
	engine := &browsertest.Engine{}
	cookies := []browser.Cookie{{Name: "hhtoken", Value: "x", Domain: ".hh.ru"}}

	_, err := browser.NewLauncher(engine, cfg, quiet()).WithCookies(cookies).Acquire(context.Background())

	require.NoError(t, err)
	opts := engine.Opts[0]
	assert.True(t, opts.Headless)
	assert.Equal(t, 1280, opts.ViewportWidth)
	assert.Equal(t, 900, opts.ViewportHeight)
	assert.Equal(t, 180*time.Second, opts.Timeout)
	assert.Equal(t, cookies, opts.Cookies)
}

func TestPrepareProfile_MissingDirIsFine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	require.NoError(t, browser.PrepareProfile(dir, true))
	assert.DirExists(t, dir)
}
