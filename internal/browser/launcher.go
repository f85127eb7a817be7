package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-hh-agent/internal/config"
)

// Attempt is one (profile, browser binary) combination tried during acquisition.
type Attempt struct {
	Label               string
	ProfileDir          string
	UseAlternateBrowser bool
	FreshProfile        bool
}

// LaunchOptions are passed to the engine for every attempt.
type LaunchOptions struct {
	ExecutablePath string
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	Timeout        time.Duration
	Cookies        []Cookie
}

// Engine launches a persistent browser session bound to a profile directory.
type Engine interface {
	LaunchPersistent(profileDir string, opts LaunchOptions) (Session, error)
}

// AttemptFailure records why one attempt did not produce a session.
type AttemptFailure struct {
	Attempt Attempt
	Err     error
}

// AcquisitionError is returned once every configured attempt has failed.
type AcquisitionError struct {
	Failures []AttemptFailure
}

func (e *AcquisitionError) Error() string {
	if len(e.Failures) == 0 {
		return "browser launch failed: no launch attempts configured"
	}
	last := e.Failures[len(e.Failures)-1]
	return fmt.Sprintf("browser launch failed after %d attempts, last (%s): %v", len(e.Failures), last.Attempt.Label, last.Err)
}

// Unwrap exposes the last underlying error.
func (e *AcquisitionError) Unwrap() error {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[len(e.Failures)-1].Err
}

// Attempts builds the fixed launch order: primary profile, fresh fallback
// profile, then fresh fallback profile on the alternate browser when its
// binary is installed.
func Attempts(cfg *config.Config) []Attempt {
	attempts := []Attempt{
		{Label: "Chromium main profile", ProfileDir: cfg.ProfileDir},
		{Label: "Chromium fresh fallback", ProfileDir: cfg.FallbackProfileDir, FreshProfile: true},
	}
	if cfg.AlternateBrowserPath != "" {
		if _, err := os.Stat(cfg.AlternateBrowserPath); err == nil {
			attempts = append(attempts, Attempt{
				Label:               "Alternate browser fresh fallback",
				ProfileDir:          cfg.FallbackProfileDir,
				UseAlternateBrowser: true,
				FreshProfile:        true,
			})
		}
	}
	return attempts
}

// Launcher acquires a working session by trying attempts strictly in order.
type Launcher struct {
	engine     Engine
	attempts   []Attempt
	opts       LaunchOptions
	altBrowser string
	pause      time.Duration
	logger     *log.Logger
}

func NewLauncher(engine Engine, cfg *config.Config, logger *log.Logger) *Launcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Launcher{
		engine:   engine,
		attempts: Attempts(cfg),
		opts: LaunchOptions{
			Headless:       cfg.Headless,
			ViewportWidth:  cfg.ViewportWidth,
			ViewportHeight: cfg.ViewportHeight,
			Timeout:        cfg.LaunchTimeout,
		},
		altBrowser: cfg.AlternateBrowserPath,
		pause:      cfg.LaunchRetryPause,
		logger:     logger,
	}
}

// WithAttempts replaces the attempt list.
func (l *Launcher) WithAttempts(attempts []Attempt) *Launcher {
	l.attempts = attempts
	return l
}

// WithCookies imports cookies into whichever session gets launched.
func (l *Launcher) WithCookies(cookies []Cookie) *Launcher {
	l.opts.Cookies = cookies
	return l
}

// Acquire returns the first session that launches. Profile preparation for an
// attempt always completes before that attempt's launch. Context cancellation
// is only observed between attempts.
func (l *Launcher) Acquire(ctx context.Context) (Session, error) {
	acqErr := &AcquisitionError{}

	for i, a := range l.attempts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.logger.Printf("🚀 Launch attempt: %s | profile=%s", a.Label, a.ProfileDir)
		session, err := l.try(a)
		if err == nil {
			l.logger.Println("✅ Browser context launched.")
			return session, nil
		}

		l.logger.Printf("⚠️ Launch failed: %s: %v", a.Label, err)
		acqErr.Failures = append(acqErr.Failures, AttemptFailure{Attempt: a, Err: err})

		if i < len(l.attempts)-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(l.pause):
			}
		}
	}

	return nil, acqErr
}

func (l *Launcher) try(a Attempt) (Session, error) {
	if err := PrepareProfile(a.ProfileDir, a.FreshProfile); err != nil {
		return nil, err
	}
	opts := l.opts
	if a.UseAlternateBrowser {
		opts.ExecutablePath = l.altBrowser
	}
	return l.engine.LaunchPersistent(a.ProfileDir, opts)
}

// PrepareProfile ensures dir exists; when fresh it is wiped and recreated first.
// A missing directory is not an error.
func PrepareProfile(dir string, fresh bool) error {
	if fresh {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("wipe profile %s: %w", dir, err)
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create profile %s: %w", dir, err)
	}
	return nil
}
