// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tokenizer

import (
	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

// Counter is the capability interface for token counting. Implementations
// must return 0 for the empty string and must not fail on any valid UTF-8
// input.
type Counter interface {
	// Count returns the number of tokens in text.
	Count(text string) int

	// Name identifies the counting strategy that produced the numbers.
	// Thresholds are calibrated per strategy, so reports carry this name.
	Name() string
}

// Strategy selects a token-counting implementation.
type Strategy string

const (
	// StrategyTiktoken counts tokens with a BPE encoding (the default).
	StrategyTiktoken Strategy = "tiktoken"

	// StrategyHeuristic estimates tokens from character length. Useful where
	// the BPE vocabulary files are unavailable, at the cost of precision.
	StrategyHeuristic Strategy = "heuristic"
)

// DefaultEncoding is the BPE encoding used by StrategyTiktoken unless
// overridden.
const DefaultEncoding = "cl100k_base"

// New resolves a Strategy to a Counter. Resolution happens once, at
// configuration time: an unavailable strategy is a fatal
// TOKENIZER_UNAVAILABLE error, never a silent substitution, because callers
// must know which strategy produced the numbers.
func New(strategy Strategy, encoding string) (Counter, error) {
	switch strategy {
	case StrategyTiktoken, "":
		if encoding == "" {
			encoding = DefaultEncoding
		}
		return newTiktokenCounter(encoding)
	case StrategyHeuristic:
		return heuristicCounter{}, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeTokenizerUnavailable,
			"unknown tokenizer strategy", map[string]any{"strategy": string(strategy)})
	}
}
