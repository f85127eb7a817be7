package main

import (
	"context"
	"fmt"
	"log"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
)

// openSession starts playwright and acquires a browser session. The returned
// closer shuts both down.
func openSession(ctx context.Context, cfg *config.Config) (browser.Session, func(), error) {
	engine, err := browser.NewPlaywrightEngine()
	if err != nil {
		return nil, nil, err
	}

	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
	} else if len(cookies) > 0 {
		log.Printf("🍪 Loaded %d cookies", len(cookies))
	}

	session, err := browser.NewLauncher(engine, cfg, nil).WithCookies(cookies).Acquire(ctx)
	if err != nil {
		_ = engine.Stop()
		return nil, nil, fmt.Errorf("acquire browser session: %w", err)
	}
	log.Println("✅ Browser initialized successfully!")

	closer := func() {
		if err := session.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
		if err := engine.Stop(); err != nil {
			log.Printf("⚠️ Failed to stop playwright: %v", err)
		}
	}
	return session, closer, nil
}
