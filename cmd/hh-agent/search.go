package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go-hh-agent/internal/browser"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/intent"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/internal/scraper/hh"

	"github.com/spf13/cobra"
)

var (
	searchPage int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <goal>",
	Short: "Run one search and print the collected listings",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchPage, "page", 0, "Result page index (0-based)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print listings as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	it := intent.New(cfg).Interpret(strings.Join(args, " "))
	spec := it.Spec.WithPage(searchPage)

	session, closeSession, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSession()

	site := hh.Site()
	page := session.Page()
	if err := scraper.NewDriver(site, cfg, nil).Run(ctx, page, spec); err != nil {
		return err
	}
	listings, err := scraper.NewCollector(site, cfg, nil).Collect(page)
	if reason, ok := browser.ReasonOf(err); ok {
		log.Printf("⚠️ Collection degraded (%s): %v", reason, err)
	}
	if it.DesiredCount != nil && *it.DesiredCount < len(listings) {
		listings = listings[:max(*it.DesiredCount, 1)]
	}

	return printListings(os.Stdout, listings, searchJSON)
}

func printListings(w io.Writer, listings []models.Listing, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(listings)
	}
	for i, l := range listings {
		fmt.Fprintf(w, "%2d. %s\n    %s\n", i+1, l.Title, l.URL)
	}
	return nil
}
