// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by all config validation errors.
var ErrInvalidConfig = errors.New("substtree: invalid config")

// Config holds the promotion thresholds of a Factory. A node using the
// unsorted strategy is promoted to a skip list once its size exceeds
// the threshold.
type Config struct {
	LeafThreshold int `yaml:"leaf_threshold" validate:"gte=0"`

	// NodeThreshold must stay below the array capacity of intermediate nodes.
	NodeThreshold int `yaml:"node_threshold" validate:"gte=0,lt=4"`
}

// DefaultConfig returns the thresholds 5 for leaves and 3 for
// intermediate nodes.
func DefaultConfig() Config {
	return Config{
		LeafThreshold: leafPromoteThreshold,
		NodeThreshold: nodePromoteThreshold,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the thresholds.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.WithSecondaryError(errors.Wrapf(ErrInvalidConfig, "validate config: %v", err), err)
	}
	return nil
}

// LoadConfig decodes a YAML document into a Config. Missing fields keep
// their default values, unknown fields are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
