package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/blob"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/app"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/internal/metrics"
	"github.com/rustyeddy/tradejournal/internal/ui"
	"github.com/rustyeddy/tradejournal/journal"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	cfgFile   string
	assumeYes bool
	now       func() time.Time
}

// session is everything a journal command needs, opened per invocation.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	blob    blob.Store
	app     *app.App
	metrics *metrics.Metrics
	detach  func()
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{now: time.Now}

	root := &cobra.Command{
		Use:   "tradejournal",
		Short: "A trade journal with derived P/L, R-multiple and equity curve",
		Long: `Tradejournal logs individual trades, derives profit/loss, R-multiple and
result for each one, and keeps the journal in a local blob store.

It provides tools for:
  - Adding, editing and deleting trades
  - Listing the journal as a table or Org-mode entries
  - Exporting and importing CSV
  - Projecting the cumulative equity curve

Storage backends: file (default), sqlite, redis, memory.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.cfgFile, "config", "c", "", "config file (YAML or JSON); TRADEJOURNAL_* env vars override it")
	root.PersistentFlags().BoolVarP(&c.assumeYes, "yes", "y", false, "answer yes to every confirmation")

	root.AddCommand(
		newAddCmd(c),
		newEditCmd(c),
		newShowCmd(c),
		newListCmd(c),
		newDeleteCmd(c),
		newClearCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newEquityCmd(c),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// run opens a session around fn and flushes metrics once fn succeeds.
func (c *cli) run(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
			cmd.SetContext(ctx)
		}
		s, err := c.open(ctx)
		if err != nil {
			return err
		}
		defer s.close()

		if err := fn(cmd, args, s); err != nil {
			return err
		}
		if path := s.cfg.Metrics.Textfile; path != "" {
			if err := s.metrics.WriteTextfile(path); err != nil {
				s.log.Warn("metrics not written", zap.Error(err))
			}
		}
		return nil
	}
}

func (c *cli) open(ctx context.Context) (*session, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Load(c.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	b, err := blob.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}

	store := journal.Open(ctx, b,
		journal.WithLogger(log),
		journal.WithKey(cfg.Storage.Key),
		journal.WithClock(c.now),
	)
	m := metrics.New()
	detach := m.Attach(store)

	var confirm ui.Confirmer = ui.SurveyConfirmer{}
	if c.assumeYes {
		confirm = ui.AssumeYes{}
	}

	return &session{
		cfg:     cfg,
		log:     log,
		blob:    b,
		app:     app.New(store, app.WithConfirmer(confirm), app.WithLogger(log), app.WithClock(c.now)),
		metrics: m,
		detach:  detach,
	}, nil
}

func (s *session) close() {
	s.detach()
	if err := s.blob.Close(); err != nil {
		s.log.Warn("close storage", zap.Error(err))
	}
	_ = s.log.Sync()
}
