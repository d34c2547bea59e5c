/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/cfstress"
	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/workload"
)

func (a *app) loadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Run concurrent scan-then-fetch sessions",
		Long: `Run numberOfConcurrentSessions sessions at once. Each session scans up to
numberOfRows index columns and fetches the referenced data rows with
numberOfGetThreads fetches in flight.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireFlags(cmd, "numberOfRows", "numberOfColumns")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := workload.LoadParams{
				Rows:             a.rows,
				Columns:          a.columns,
				Sessions:         a.cfg.Workload.Sessions,
				FetchConcurrency: a.cfg.Workload.FetchConcurrency,
			}
			if err := p.Validate(); err != nil {
				return err
			}
			return a.harness(cmd.Context(), func(h *cfstress.Harness) error {
				_, err := h.Load(cmd.Context(), p)
				return err
			})
		},
	}

	d := config.Default().Workload
	f := cmd.Flags()
	a.shapeFlags(f)
	f.IntVarP(&a.sessions, "numberOfConcurrentSessions", "t", d.Sessions, "number of sessions run at once")
	f.IntVarP(&a.threads, "numberOfGetThreads", "g", d.FetchConcurrency, "fetches in flight per session")
	return cmd
}
