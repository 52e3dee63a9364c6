// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/gaissmai/substtree"
	"github.com/gaissmai/substtree/term"
)

func newDumpCmd(verbose *bool) *cobra.Command {
	var (
		asJSON    bool
		withSorts bool
	)

	cmd := &cobra.Command{
		Use:   "dump term...",
		Short: "Index the given terms and print the tree",
		Example: `  substtree dump 'f(a,X0)' 'f(b,X0)' 'X1(a)'
  substtree dump --json 'g(c)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig := term.NewSignature()
			f, err := substtree.NewFactory(substtree.CompareLeafData,
				substtree.WithSignature(sig),
				substtree.WithLogger(newLogger(cmd.ErrOrStderr(), *verbose)),
			)
			if err != nil {
				return err
			}

			ix := newIndex(f, withSorts)
			defer ix.destroy()

			for i, src := range args {
				tl, err := term.Parse(sig, src)
				if err != nil {
					return errors.Wrapf(err, "argument %d", i+1)
				}
				ix.insert(ld{Clause: uint64(i), Term: tl})
			}

			out := cmd.OutOrStdout()
			if !asJSON {
				return substtree.Fprint[ld](out, ix.root)
			}

			buf, err := substtree.DumpJSON[ld](ix.root)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(buf))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")
	cmd.Flags().BoolVar(&withSorts, "with-sorts", false, "create nodes with sort discrimination")
	return cmd
}
