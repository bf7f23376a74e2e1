package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gitref/catalog"
	"gitref/config"
	"gitref/log"
	"gitref/model"
	"gitref/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var dfe *catalog.DataFormatError
		if errors.As(err, &dfe) {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	configPath string
	dataPath   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var tier, search string

	cmd := &cobra.Command{
		Use:   "gitref",
		Short: "Browse a reference of Git commands",
		Long: `gitref opens an interactive reference of Git commands grouped by how
commonly they are used. Filter by importance tier in the sidebar, search
names, descriptions and examples, and copy an example to the clipboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer s.Close()

			criteria := model.FilterCriteria{Tier: s.cfg.Tier(), Search: search}
			if cmd.Flags().Changed("tier") {
				criteria.Tier = model.ParseTier(tier)
			}

			app := ui.NewApp(s.catalog, criteria, ui.WithLogger(s.logger))
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				s.logger.Error("browser exited", "err", err)
				return fmt.Errorf("running browser: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	cmd.PersistentFlags().StringVar(&opts.dataPath, "data", "", "catalog CSV or SQLite file (default: bundled catalog)")
	cmd.Flags().StringVar(&tier, "tier", "", "initial tier: all, essential, intermediate, advanced, technical, specific")
	cmd.Flags().StringVar(&search, "search", "", "initial search text")

	cmd.AddCommand(newListCmd(opts), newImportCmd(opts))
	return cmd
}

// session is what every command needs: settings, a logger and, for the
// browsing commands, the loaded catalog.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile io.Closer
	catalog *catalog.Catalog
}

func (s *session) Close() error {
	return s.logFile.Close()
}

func setup(opts *options) (*session, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, closer, err := log.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	return &session{cfg: cfg, logger: logger, logFile: closer}, nil
}

// openSession loads the catalog named by --data, the config file or, when
// neither sets one, the bundled catalog.
func openSession(ctx context.Context, opts *options) (*session, error) {
	s, err := setup(opts)
	if err != nil {
		return nil, err
	}

	path := opts.dataPath
	if path == "" {
		path = s.cfg.DataPath
	}
	c, err := catalog.Load(ctx, log.NewLoggingSource(catalog.Open(path), s.logger))
	if err != nil {
		s.Close()
		return nil, err
	}
	s.catalog = c
	return s, nil
}
