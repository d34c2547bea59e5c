/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/cfstress"
)

func (a *app) populateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Write the data rows and the index row",
		Long: `Write numberOfRows data rows of numberOfColumns columns each, then one
index row whose columns reference every data row.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireFlags(cmd, "numberOfRows", "numberOfColumns")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.harness(cmd.Context(), func(h *cfstress.Harness) error {
				_, err := h.Populate(cmd.Context(), a.rows, a.columns)
				return err
			})
		},
	}
	a.shapeFlags(cmd.Flags())
	return cmd
}
