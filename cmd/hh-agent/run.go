package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"go-hh-agent/internal/agent"
	"go-hh-agent/internal/config"
	"go-hh-agent/internal/scraper/hh"
	"go-hh-agent/internal/telegram"

	"github.com/spf13/cobra"
)

var runSubmit bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive session",
	Long:  "Launch the browser, ask for a goal, run the search and serve commands (list, open, apply, next, prev, refresh, submit, ai, exit).",
	RunE:  runInteractive,
}

func init() {
	runCmd.Flags().BoolVar(&runSubmit, "submit", false, "Start with submit mode on (responses are sent, not only filled)")
	rootCmd.AddCommand(runCmd)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("submit") {
		cfg.Submit = runSubmit
	}
	log.Printf("🔧 Config loaded. Profile: %s", cfg.ProfileDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session, closeSession, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSession()

	a := agent.New(cfg, hh.Site(), session.Page(), os.Stdin, os.Stdout, nil)
	if cfg.NotificationsEnabled() {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			log.Println("🤖 Telegram Bot initialized.")
			a.WithNotifier(bot)
		}
	}

	return a.Run(ctx)
}
