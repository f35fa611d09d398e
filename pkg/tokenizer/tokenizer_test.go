/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

func TestHeuristicCounter(t *testing.T) {
	c, err := New(StrategyHeuristic, "")
	require.NoError(t, err)
	assert.Equal(t, "heuristic", c.Name())

	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abcd", 1},
		{"abcde", 2},
		{"The quick brown fox jumps over the lazy dog", 11},
		// Multibyte input counts runes, not bytes.
		{"日本語テキスト", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Count(tt.text), "text %q", tt.text)
	}
}

func TestNew_UnknownStrategy(t *testing.T) {
	_, err := New(Strategy("mistral"), "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTokenizerUnavailable, errors.CodeOf(err))
}

func TestHeuristicCounter_NeverNegative(t *testing.T) {
	c, err := New(StrategyHeuristic, "")
	require.NoError(t, err)

	for _, text := range []string{"", " ", "\n", "a"} {
		assert.GreaterOrEqual(t, c.Count(text), 0)
	}
}
