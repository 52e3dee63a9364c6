// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package substtree

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr error
	}{
		{"empty", "", DefaultConfig(), nil},
		{"leaf only", "leaf_threshold: 8\n", Config{LeafThreshold: 8, NodeThreshold: 3}, nil},
		{"both", "leaf_threshold: 0\nnode_threshold: 1\n", Config{LeafThreshold: 0, NodeThreshold: 1}, nil},
		{"node at capacity", "node_threshold: 4\n", Config{}, ErrInvalidConfig},
		{"negative", "leaf_threshold: -2\n", Config{}, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadConfig(strings.NewReader(tt.yaml))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigDecodeErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"bogus: 1\n", "leaf_threshold: many\n", "[1, 2]\n"} {
		_, err := LoadConfig(strings.NewReader(src))
		require.Error(t, err, src)
		assert.NotErrorIs(t, err, ErrInvalidConfig, src)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, leafPromoteThreshold, cfg.LeafThreshold)
	assert.Equal(t, nodePromoteThreshold, cfg.NodeThreshold)
}

func TestValidateKeepsCause(t *testing.T) {
	t.Parallel()

	err := Config{NodeThreshold: maxArrayNodeSize}.Validate()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrInvalidConfig))
	assert.ErrorContains(t, err, "NodeThreshold")
}
