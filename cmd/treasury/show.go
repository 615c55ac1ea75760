package main

import (
	"errors"
	"strings"

	"github.com/newthinker/treasury/internal/client"
	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/dashboard"
	"github.com/newthinker/treasury/internal/logger"
	"github.com/newthinker/treasury/internal/render"
	"github.com/spf13/cobra"
)

var (
	showCategory string
	showSections []string
)

var showCmd = &cobra.Command{
	Use:   "show [ticker]",
	Short: "Print a company's dashboard as tables",
	Long: `Fetch a snapshot from the backend and print it as terminal tables.
The ticker defaults to dashboard.default_ticker.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showCategory, "category", string(core.CategoryValuation),
		"ratio category ("+joinCategories()+")")
	showCmd.Flags().StringSliceVar(&showSections, "section", nil,
		"sections to print ("+strings.Join(render.TableSections, ", ")+")")
	rootCmd.AddCommand(showCmd)
}

func joinCategories() string {
	names := make([]string, len(core.Categories))
	for i, c := range core.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func runShow(cmd *cobra.Command, args []string) error {
	boot := logger.Must(debug, "")
	cfg, err := loadConfig(boot)
	if err != nil {
		return err
	}

	log, err := logger.New(development(cfg), logLevel(cfg))
	if err != nil {
		return err
	}
	defer log.Sync()

	category, err := core.ParseCategory(showCategory)
	if err != nil {
		return err
	}

	ticker := cfg.Dashboard.DefaultTicker
	if len(args) == 1 {
		ticker = args[0]
	}

	c := dashboard.New(
		client.New(cfg.Backend.BaseURL, client.WithTimeout(cfg.Backend.Timeout)),
		render.Must(),
		dashboard.Options{Logger: log},
	)
	if err := c.Submit(cmd.Context(), ticker); err != nil {
		return errors.New(core.UserMessage(err))
	}

	return render.WriteTables(cmd.OutOrStdout(), c.State().Snapshot, render.TableOptions{
		Category: category,
		Sections: showSections,
	})
}
