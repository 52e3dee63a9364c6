// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command substtree drives the substitution tree node layer: random
// stress workloads over independent indexes and dumps of small trees.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "substtree",
		Short:        "Exercise the substitution tree node layer",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log node promotions and conversions")

	root.AddCommand(
		newStressCmd(&verbose),
		newDumpCmd(&verbose),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
