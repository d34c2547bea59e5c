/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/suparena/cfstress"
	"github.com/suparena/cfstress/config"
	cferrors "github.com/suparena/cfstress/errors"
	"github.com/suparena/cfstress/logging"
	"github.com/suparena/cfstress/metrics"
	"github.com/suparena/cfstress/registry"
)

// app holds the flag values and output streams of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configFile  string
	envFile     string
	backend     string
	hosts       []string
	keyspace    string
	consistency string
	fetchRate   float64
	reportPath  string
	metricsAddr string
	logLevel    string
	command     string

	rows     int
	columns  int
	sessions int
	threads  int

	cfg       config.Config
	helpShown bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfstress",
		Short: "Stress test a wide-column store",
		Long: `cfstress seeds a wide-column store with one index row and N data rows,
then replays concurrent sessions that scan the index and fetch every
referenced data row.

Run "populate" once, then "load" with the same row and column counts.`,
		Version:           cfstress.GetVersionInfo().String(),
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.prepare,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.command != "" {
				return fmt.Errorf("unknown command %q, expected populate or load", a.command)
			}
			return fmt.Errorf("a command is required: populate or load")
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		a.helpShown = true
		defaultHelp(cmd, args)
	})

	d := config.Default()
	f := root.PersistentFlags()
	f.StringVar(&a.configFile, "config", "", "YAML or JSON configuration file")
	f.StringVar(&a.envFile, "env-file", ".env", "dotenv file with store credentials")
	f.StringVar(&a.backend, "backend", d.Store.Backend, "store backend: "+strings.Join(registry.Backends(), "|"))
	f.StringSliceVar(&a.hosts, "hosts", d.Store.Hosts, "comma separated store hosts")
	f.StringVar(&a.keyspace, "keyspace", d.Store.Keyspace, "keyspace holding the index and data collections")
	f.StringVar(&a.consistency, "consistency", d.Store.Consistency, "default read and write consistency level")
	f.Float64Var(&a.fetchRate, "fetchRate", 0, "maximum fetches per second across all sessions (0 = unlimited)")
	f.StringVar(&a.reportPath, "report", "", "write the run report as JSON to this file")
	f.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	f.StringVar(&a.logLevel, "log-level", d.Output.LogLevel, "log level: debug, info, warn, error")

	root.Flags().StringVarP(&a.command, "command", "c", "", "command to run: populate or load")

	root.AddCommand(a.populateCommand(), a.loadCommand())
	return root
}

// shapeFlags registers the dataset shape flags shared by both commands.
func (a *app) shapeFlags(f *pflag.FlagSet) {
	f.IntVarP(&a.rows, "numberOfRows", "n", 0, "number of data rows (required)")
	f.IntVarP(&a.columns, "numberOfColumns", "x", 0, "number of columns per data row (required)")
}

// requireFlags reports the first required flag the user did not set.
func requireFlags(cmd *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !cmd.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return nil
}

// prepare resolves the configuration: defaults, then the config file, then
// the environment, then explicitly set flags.
func (a *app) prepare(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if a.configFile != "" {
		loaded, err := config.LoadFile(a.configFile)
		if err != nil {
			return err
		}
		cfg = *loaded
	}

	if err := config.LoadEnvFile(a.envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Store.Backend = strings.ToLower(a.backend)
	}
	if flags.Changed("hosts") {
		cfg.Store.Hosts = a.hosts
	}
	if flags.Changed("keyspace") {
		cfg.Store.Keyspace = a.keyspace
	}
	if flags.Changed("consistency") {
		cfg.Store.Consistency = strings.ToUpper(a.consistency)
	}
	if flags.Changed("fetchRate") {
		cfg.Workload.FetchRate = a.fetchRate
	}
	if flags.Changed("report") {
		cfg.Output.ReportPath = a.reportPath
	}
	if flags.Changed("metrics-addr") {
		cfg.Output.MetricsAddr = a.metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Output.LogLevel = a.logLevel
	}
	if flags.Changed("numberOfConcurrentSessions") {
		cfg.Workload.Sessions = a.sessions
	}
	if flags.Changed("numberOfGetThreads") {
		cfg.Workload.FetchConcurrency = a.threads
	}

	a.cfg = cfg
	return cfg.Validate()
}

// harness opens the store and hands it to fn, with logging and metrics
// wired from the resolved configuration.
func (a *app) harness(ctx context.Context, fn func(h *cfstress.Harness) error) error {
	logger, err := logging.New(a.cfg.Output.LogLevel, a.cfg.Output.LogEncoding)
	if err != nil {
		return cferrors.NewConfigurationError("output.log_level", err.Error())
	}
	defer func() { _ = logger.Sync() }()

	var collector *metrics.Collector
	if addr := a.cfg.Output.MetricsAddr; addr != "" {
		collector = metrics.NewCollector()
		srv := metrics.Serve(ctx, addr, collector, logger)
		defer func() {
			if err := srv.Shutdown(); err != nil {
				logger.Warn("metrics server shutdown", zap.Error(err))
			}
		}()
	}

	h, err := cfstress.New(ctx, a.cfg,
		cfstress.WithLogger(logger),
		cfstress.WithMetrics(collector),
		cfstress.WithOutput(a.stdout),
	)
	if err != nil {
		return &runtimeError{err: err}
	}
	defer func() {
		if err := h.Close(); err != nil {
			logger.Warn("closing store", zap.Error(err))
		}
	}()

	if err := fn(h); err != nil {
		return &runtimeError{err: err}
	}
	return nil
}
