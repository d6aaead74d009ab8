// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/scalerfx/cache"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the effect cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "prune",
			Short: "Remove every cached effect",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := cache.New(cache.Options{Dir: a.cfg.CacheDir})
				if err != nil {
					return err
				}
				n, err := c.Prune()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d cache files from %s\n", n, c.Dir())
				return nil
			},
		},
		&cobra.Command{
			Use:   "dir",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.CacheDir)
				return nil
			},
		},
	)
	return cmd
}
