package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go-hh-agent/internal/config"
	"go-hh-agent/internal/intent"
	"go-hh-agent/internal/models"
	"go-hh-agent/internal/scraper"
	"go-hh-agent/internal/scraper/hh"

	"github.com/spf13/cobra"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret <goal>",
	Short: "Show how a goal is interpreted, without a browser",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)
}

func runInterpret(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	it := intent.New(cfg).Interpret(strings.Join(args, " "))
	printIntent(os.Stdout, it, scraper.NewDriver(hh.Site(), cfg, nil).BuildURL(it.Spec))
	return nil
}

func printIntent(w io.Writer, it models.Intent, searchURL string) {
	s := it.Spec
	fmt.Fprintf(w, "query:            %s\n", s.Query)
	if it.DesiredCount != nil {
		fmt.Fprintf(w, "desired count:    %d\n", *it.DesiredCount)
	} else {
		fmt.Fprintln(w, "desired count:    не задано")
	}
	fmt.Fprintf(w, "region:           %s\n", models.RegionName(s.Region))
	if s.Experience != nil {
		fmt.Fprintf(w, "experience:       %s\n", *s.Experience)
	} else {
		fmt.Fprintln(w, "experience:       не задано")
	}
	fmt.Fprintf(w, "remote:           %t\n", s.Remote)
	fmt.Fprintf(w, "salary:           %s\n", models.SalaryLabel(s.SalaryFloor))
	fmt.Fprintf(w, "only with salary: %t\n", s.RequireSalary)
	fmt.Fprintf(w, "url:              %s\n", searchURL)
}
