package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/frederic-klein/py3wiki/internal/config"
	"github.com/frederic-klein/py3wiki/internal/logging"
	"github.com/frederic-klein/py3wiki/internal/pymodules"
	"github.com/frederic-klein/py3wiki/internal/repoquery"
	"github.com/frederic-klein/py3wiki/internal/update"
	"github.com/frederic-klein/py3wiki/internal/wiki"
)

var configFile string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "py3wiki",
		Short:        "Propose updates to the Fedora \"Python 3 already in Fedora\" wiki table",
		Long:         "py3wiki merges packages that require Python 3 into the wiki table and prints a unified diff plus the full new table for pasting into the wiki editor.",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ./.py3wiki.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Print a diff and the new table text",
		Args:  cobra.NoArgs,
		RunE:  runUpdate,
	}

	modulesCmd := &cobra.Command{
		Use:   "modules SUBPACKAGE...",
		Short: "Print the Python modules the given subpackages install",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runModules,
	}

	rootCmd.AddCommand(updateCmd, modulesCmd)
	return rootCmd
}

func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(config.New(), configFile, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("configuring logging: %w", err)
	}
	return cfg, log, nil
}

func newExtractorDeps(cfg *config.Config, log zerolog.Logger) (*repoquery.Client, pymodules.Overrides, error) {
	overrides, err := pymodules.LoadOverrides(cfg.Overrides)
	if err != nil {
		return nil, nil, err
	}

	client, err := repoquery.NewClient(cfg.Repoquery, nil, log)
	if err != nil {
		return nil, nil, err
	}
	return client, overrides, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	client, overrides, err := newExtractorDeps(cfg, log)
	if err != nil {
		return err
	}

	log.Info().Str("url", cfg.URL).Msg("Fetching wiki table")
	fetcher := wiki.NewFetcher(cfg.URL, cfg.Textarea, cfg.HTTPTimeout, cfg.HTTPRetries)

	res, err := update.Run(cmd.Context(), update.Deps{
		Fetcher:    fetcher,
		Candidates: client,
		Files:      client,
		Overrides:  overrides,
		Log:        log,
	}, update.Options{Capability: cfg.Capability})
	if err != nil {
		return err
	}

	return update.Print(cmd.OutOrStdout(), res)
}

func runModules(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	client, overrides, err := newExtractorDeps(cfg, log)
	if err != nil {
		return err
	}

	ext := pymodules.NewExtractor(client, overrides)
	modules, err := ext.Modules(cmd.Context(), args)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(modules, " "))
	return err
}
