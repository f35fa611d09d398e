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

// Package tokenizer provides pluggable token counting for the validation
// pipeline.
//
// Token counts are approximations: the selected strategy will not exactly
// match every downstream consumer's tokenizer. Reports record the strategy
// name so numbers are never compared across strategies by accident.
//
// Strategy selection is resolved once at configuration-build time:
//
//	counter, err := tokenizer.New(tokenizer.StrategyTiktoken, "cl100k_base")
//	if err != nil {
//	    // TOKENIZER_UNAVAILABLE: abort before analyzing anything.
//	}
//	n := counter.Count(example.Context)
package tokenizer
