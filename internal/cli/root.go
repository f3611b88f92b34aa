// Package cli implements the jobboard command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/jobboard/internal/app"
	"github.com/fr4nk3nst1ner/jobboard/internal/config"
	"github.com/fr4nk3nst1ner/jobboard/internal/logger"
	"github.com/fr4nk3nst1ner/jobboard/internal/ui"
)

// globals holds the persistent flags and what PersistentPreRunE builds from them.
type globals struct {
	configPath   string
	provider     string
	board        string
	dataDir      string
	storage      string
	offline      bool
	serverSearch bool
	debug        bool
	silence      bool
	hyperlinks   bool

	session  *app.Session
	renderer *ui.Renderer
	log      logger.Logger
}

// NewRootCmd builds the jobboard command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "jobboard",
		Short: "Browse, filter and bookmark job listings from the terminal",
		Long: `jobboard browses the Arbeitnow job board (or a single company's Greenhouse
or Lever board), filters listings locally and keeps bookmarks and filter
preferences between runs.

Available subcommands:
  list       List jobs matching the saved filters
  show       Show one job in detail
  bookmarks  Manage bookmarked jobs
  filters    Show or reset the saved filters
  tags       List the tags used by the loaded jobs
  types      List the job types and remote options`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return g.teardown()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "Path to a YAML config file (default $"+config.PathEnv+")")
	flags.StringVar(&g.provider, "provider", "", "Job source: arbeitnow, greenhouse or lever")
	flags.StringVar(&g.board, "board", "", "Company board slug for the greenhouse and lever providers")
	flags.StringVar(&g.dataDir, "data-dir", "", "Directory for saved bookmarks and filters")
	flags.StringVar(&g.storage, "storage", "", "Storage backend: file, redis or memory")
	flags.BoolVar(&g.offline, "offline", false, "Use the bundled sample jobs instead of the API")
	flags.BoolVar(&g.serverSearch, "server-search", false, "Also send the search term to the API (matches company, description and tags)")
	flags.BoolVar(&g.debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&g.silence, "silence", false, "Silence the banner")
	flags.BoolVar(&g.silence, "nobanner", false, "Silence the banner (alias for --silence)")
	flags.BoolVar(&g.hyperlinks, "hyperlinks", false, "Render apply links as clickable terminal hyperlinks")

	cmd.AddCommand(newListCmd(g))
	cmd.AddCommand(newShowCmd(g))
	cmd.AddCommand(newBookmarksCmd(g))
	cmd.AddCommand(newFiltersCmd(g))
	cmd.AddCommand(newTagsCmd(g))
	cmd.AddCommand(newTypesCmd(g))

	return cmd
}

// Execute runs the command tree until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (g *globals) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.provider != "" {
		cfg.API.Provider = g.provider
	}
	if g.board != "" {
		cfg.API.Board = g.board
	}
	if g.dataDir != "" {
		cfg.Storage.DataDir = g.dataDir
	}
	if g.storage != "" {
		cfg.Storage.Backend = g.storage
	}
	if g.debug {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Display.NoColor {
		pterm.DisableColor()
	}

	g.log, err = logger.New(cfg.Log)
	if err != nil {
		return err
	}

	g.session, err = app.NewSession(cmd.Context(), cfg, g.log, app.Options{
		Offline:      g.offline,
		ServerSearch: g.serverSearch,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g.renderer = ui.NewRenderer(out, cfg.Display.TruncateLength)
	g.renderer.Hyperlinks = g.hyperlinks

	ui.PrintBanner(out, g.silence || !isTerminal(out))
	g.log.Debug("Session ready",
		logger.String("storage", cfg.Storage.Backend),
		logger.String("provider", cfg.API.Provider),
		logger.Bool("offline", g.offline),
	)
	return nil
}

func (g *globals) teardown() error {
	var err error
	if g.session != nil {
		err = g.session.Close()
	}
	if g.log != nil {
		_ = g.log.Sync()
	}
	return err
}

// isTerminal reports whether w is a character device; the banner is skipped
// when output is piped or captured.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func notFound(id string) error {
	return fmt.Errorf("job %q not found", id)
}
