package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gitref/examples"
	"gitref/filter"
	"gitref/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	listNameStyle  = lipgloss.NewStyle().Bold(true)
	listMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newListCmd(opts *options) *cobra.Command {
	var (
		tier   string
		search string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the commands matching a tier and search text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			view := filter.Apply(s.catalog, model.FilterCriteria{
				Tier:   model.ParseTier(tier),
				Search: search,
			})

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			printView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().StringVar(&tier, "tier", "all", "tier: all, essential, intermediate, advanced, technical, specific")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text to look for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the filtered view as JSON")
	return cmd
}

func printView(w io.Writer, view model.FilteredView) {
	for _, rec := range view.Records {
		fmt.Fprintf(w, "#%03d  %s\n", rec.Rank, listNameStyle.Render(rec.Name))
		if rec.Description != "" {
			fmt.Fprintf(w, "      %s\n", rec.Description)
		}
		for _, ex := range examples.Split(rec.Usage) {
			fmt.Fprintf(w, "      %s\n", listMutedStyle.Render("$ "+ex))
		}
	}

	counts := make([]string, len(model.Tiers))
	for i, t := range model.Tiers {
		counts[i] = fmt.Sprintf("%s: %d", t.Label(), view.Counts[t])
	}
	fmt.Fprintf(w, "\n%d of %d commands\n", view.Matched(), view.Total)
	fmt.Fprintln(w, listMutedStyle.Render(strings.Join(counts, " · ")))
}
