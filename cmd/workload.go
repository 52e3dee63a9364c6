// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gaissmai/substtree"
)

// Workload describes a stress run. Every worker builds its own index
// from the same parameters and a worker specific random stream.
type Workload struct {
	Workers     int     `yaml:"workers" validate:"gte=1,lte=256"`
	Terms       int     `yaml:"terms" validate:"gte=1"`
	MaxDepth    int     `yaml:"max_depth" validate:"gte=1,lte=64"`
	Functions   int     `yaml:"functions" validate:"gte=1,lte=1000"`
	HeadVars    int     `yaml:"head_vars" validate:"gte=0,lte=100"`
	RemoveRatio float64 `yaml:"remove_ratio" validate:"gte=0,lte=1"`
	WithSorts   bool    `yaml:"with_sorts"`
	Seed        uint64  `yaml:"seed"`

	Index substtree.Config `yaml:"index"`
}

func defaultWorkload() Workload {
	return Workload{
		Workers:     4,
		Terms:       10_000,
		MaxDepth:    6,
		Functions:   12,
		HeadVars:    3,
		RemoveRatio: 0.5,
		Seed:        42,
		Index:       substtree.DefaultConfig(),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (w Workload) validate() error {
	if err := validate.Struct(w); err != nil {
		return errors.Wrap(err, "invalid workload")
	}
	return w.Index.Validate()
}

// loadWorkload reads a YAML workload, missing fields keep their defaults.
func loadWorkload(path string) (Workload, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Workload{}, errors.Wrap(err, "open workload")
	}
	defer fh.Close()

	return decodeWorkload(fh)
}

func decodeWorkload(r io.Reader) (Workload, error) {
	w := defaultWorkload()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return Workload{}, errors.Wrap(err, "decode workload")
	}

	if err := w.validate(); err != nil {
		return Workload{}, err
	}
	return w, nil
}
