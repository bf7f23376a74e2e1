package main

import (
	"fmt"

	"gitref/catalog"
	"gitref/db"
	"gitref/log"

	"github.com/spf13/cobra"
)

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv> <db>",
		Short: "Validate a catalog CSV and store it in a SQLite catalog",
		Long: `Import reads a catalog CSV (columns comando, descrição, ordem_importância,
como_pode_ser_usado), validates it and replaces the contents of the SQLite
catalog at <db>, creating it when needed. Browse it with --data <db>.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			c, err := catalog.Load(ctx, log.NewLoggingSource(catalog.CSVSource{Path: args[0]}, s.logger))
			if err != nil {
				return err
			}

			d, err := db.Open(args[1])
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Replace(ctx, c.Records()); err != nil {
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			s.logger.Info("import catalog", "from", args[0], "to", args[1], "records", c.Len())
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d commands into %s\n", c.Len(), args[1])
			return nil
		},
	}
}
