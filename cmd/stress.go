// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gaissmai/substtree"
	"github.com/gaissmai/substtree/term"
)

func newStressCmd(verbose *bool) *cobra.Command {
	var (
		configPath string
		workers    int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Insert, remove and destroy random terms in independent indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := defaultWorkload()
			if configPath != "" {
				var err error
				if w, err = loadWorkload(configPath); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("workers") {
				w.Workers = workers
			}
			if cmd.Flags().Changed("seed") {
				w.Seed = seed
			}
			if err := w.validate(); err != nil {
				return err
			}

			log := newLogger(cmd.ErrOrStderr(), *verbose)
			return runStress(cmd.Context(), cmd.OutOrStdout(), log, w)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "workload YAML file")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "number of independent indexes, overrides the config")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, overrides the config")
	return cmd
}

// workerResult is the outcome of one worker.
type workerResult struct {
	id       int
	inserted int
	removed  int
	stats    substtree.TreeStats
}

// runStress runs one index per worker. The indexes share nothing but the
// metrics, a failing worker cancels the others.
func runStress(ctx context.Context, out io.Writer, log *slog.Logger, w Workload) error {
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	log = log.With(slog.String("run", runID))

	reg := prometheus.NewRegistry()
	metrics := substtree.NewMetrics(reg)

	results := make([]workerResult, w.Workers)
	g, gCtx := errgroup.WithContext(ctx)
	for id := range w.Workers {
		g.Go(func() error {
			res, err := runWorker(gCtx, id, w, metrics, log.With(slog.Int("worker", id)))
			if err != nil {
				return errors.Wrapf(err, "worker %d", id)
			}
			results[id] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("stress run finished", slog.Int("workers", w.Workers), slog.Int("terms", w.Terms))

	fmt.Fprintf(out, "run %s\n", runID)
	for _, r := range results {
		fmt.Fprintf(out, "worker %d: inserted=%d removed=%d nodes=%d leaves=%d payloads=%d depth=%d skiplists=%d higher-order=%d\n",
			r.id, r.inserted, r.removed, r.stats.Nodes, r.stats.Leaves, r.stats.Payloads,
			r.stats.MaxDepth, r.stats.SkipLists, r.stats.HigherOrder)
	}
	return printMetrics(out, reg)
}

func runWorker(ctx context.Context, id int, w Workload, m *substtree.Metrics, log *slog.Logger) (workerResult, error) {
	prng := rand.New(rand.NewPCG(w.Seed, uint64(id)))
	sig := term.NewSignature()
	gen := newGenerator(sig, prng, w)

	f, err := substtree.NewFactory(substtree.CompareLeafData,
		substtree.WithSignature(sig),
		substtree.WithLogger(log),
		substtree.WithMetrics(m),
		substtree.WithConfig(w.Index),
	)
	if err != nil {
		return workerResult{}, err
	}

	ix := newIndex(f, w.WithSorts)
	res := workerResult{id: id}

	var payloads []ld
	for i := range w.Terms {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		d := ld{Clause: uint64(i), Literal: uint32(prng.IntN(4)), Term: gen.term()}
		if ix.insert(d) {
			payloads = append(payloads, d)
		}
	}
	res.inserted = len(payloads)

	prng.Shuffle(len(payloads), func(i, j int) { payloads[i], payloads[j] = payloads[j], payloads[i] })
	for _, d := range payloads[:int(float64(len(payloads))*w.RemoveRatio)] {
		if err := ix.remove(d); err != nil {
			return res, err
		}
		res.removed++
	}

	res.stats = substtree.SubtreeStats[ld](ix.root)
	if res.stats.Payloads != res.inserted-res.removed {
		return res, errors.Newf("index holds %d payloads, want %d", res.stats.Payloads, res.inserted-res.removed)
	}

	ix.destroy()
	if s := f.Stats(); s.Leaves.Live+s.Nodes.Live != 0 {
		return res, errors.Newf("%d leaves and %d nodes still live after destroy", s.Leaves.Live, s.Nodes.Live)
	}

	log.Debug("worker done", slog.Int("inserted", res.inserted), slog.Int("removed", res.removed))
	return res, nil
}

// printMetrics writes the counters of reg, one line per series.
func printMetrics(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
