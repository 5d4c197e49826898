package main

import (
	"fmt"
	"os"

	"library-lending/config"
	"library-lending/library"
	"library-lending/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configFile string
	seedFile   string
	finePerDay float64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "library-lending",
		Short:        "Catalog and lending desk for a small library",
		Long:         "Tracks books, members and staff in memory and records issues, returns and fines.\nAll data is discarded when the program exits.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			interactive := cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd()))
			return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), a, interactive)
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "CSV of title,author,isbn,year,category to load at start")
	root.PersistentFlags().Float64Var(&opts.finePerDay, "fine-per-day", library.DefaultFinePerDay, "late fee per day")

	root.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walk through cataloguing, lending and returns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runDemo(cmd.OutOrStdout(), a)
		},
	})

	return root
}

// app wires one catalog, its ledger and the staff member at the desk.
type app struct {
	lib     *library.Library
	desk    *library.Librarian
	history *library.SQLiteHistory
	logger  *zap.Logger
}

func newApp(cmd *cobra.Command, opts *options) (*app, error) {
	cfg, err := config.NewConfig(opts.configFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("fine-per-day") {
		cfg.Fines.PerDay = opts.finePerDay
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("can not initialize logger: %w", err)
	}

	history, err := library.NewSQLiteHistory("")
	if logger.CheckError(err, log, "can not open loan history") {
		return nil, err
	}

	lib := library.NewLibrary(cfg.Library.Name, cfg.Library.Address,
		library.WithFinePerDay(cfg.Fines.PerDay),
		library.WithLogger(log),
		library.WithHistory(history),
	)

	desk := &library.Librarian{
		EmployeeID: cfg.Librarian.ID,
		Name:       cfg.Librarian.Name,
		Email:      cfg.Librarian.Email,
	}
	if _, err := lib.AddLibrarian(desk); err != nil {
		history.Close()
		return nil, err
	}

	a := &app{lib: lib, desk: desk, history: history, logger: log}
	if opts.seedFile != "" {
		if err := a.seed(cmd.OutOrStdout(), opts.seedFile); err != nil {
			a.Close()
			return nil, err
		}
	}
	logger.MakeInfo(log, "library open", zap.String("name", lib.Name), zap.Float64("fine_per_day", lib.FinePerDay()))
	return a, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.history.Close()
}
