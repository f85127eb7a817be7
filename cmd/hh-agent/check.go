package main

import (
	"fmt"
	"log"
	"path/filepath"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/internal/scraper/hh"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Smoke checks for config, cookies and the browser",
}

var checkConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Load and print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("🔧 Testing config loading...")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Config loaded successfully!\n")
		fmt.Printf("   Profile dir: %s\n", cfg.ProfileDir)
		fmt.Printf("   Fallback profile dir: %s\n", cfg.FallbackProfileDir)
		fmt.Printf("   Alternate browser: %s\n", cfg.AlternateBrowserPath)
		fmt.Printf("   Headless: %t, viewport %dx%d\n", cfg.Headless, cfg.ViewportWidth, cfg.ViewportHeight)
		fmt.Printf("   Items on page: %d (scan %d links)\n", cfg.ItemsOnPage, cfg.MaxLinksScan)
		fmt.Printf("   Submit: %t\n", cfg.Submit)
		fmt.Printf("   Telegram notifications: %t\n", cfg.NotificationsEnabled())
		fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
		return nil
	},
}

var checkCookiesCmd = &cobra.Command{
	Use:   "cookies",
	Short: "Parse the cookie export named by cookies_path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("🍪 Testing cookie loading...")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cfg.CookiesPath == "" {
			return fmt.Errorf("cookies_path is not set")
		}
		cookies, err := browser.LoadCookies(cfg.CookiesPath)
		if err != nil {
			return fmt.Errorf("failed to load cookies: %w", err)
		}
		fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

		if len(cookies) > 0 {
			c := cookies[0]
			fmt.Printf("\nExample cookie:\n")
			fmt.Printf("Name: %s\n", c.Name)
			fmt.Printf("Domain: %s\n", c.Domain)
			fmt.Printf("Secure: %t\n", c.Secure)
		}
		return nil
	},
}

var checkBrowserCmd = &cobra.Command{
	Use:   "browser",
	Short: "Acquire a session, open hh.ru and save a screenshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("🌐 Testing browser session...")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		session, closeSession, err := openSession(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeSession()

		page := session.Page()
		site := hh.Site()
		if err := scraper.NewDriver(site, cfg, nil).Home(cmd.Context(), page); err != nil {
			return fmt.Errorf("failed to navigate: %w", err)
		}

		title, _ := page.Title()
		fmt.Printf("✅ Page title: %s\n", title)

		shot := filepath.Join(cfg.ScreenshotDir, "check-browser.png")
		if err := page.Screenshot(shot); err != nil {
			log.Printf("Failed to take screenshot: %v", err)
		} else {
			fmt.Printf("📸 Screenshot saved: %s\n", shot)
		}
		fmt.Println("✨ Test complete!")
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkConfigCmd, checkCookiesCmd, checkBrowserCmd)
	rootCmd.AddCommand(checkCmd)
}
