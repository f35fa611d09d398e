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

// Package thresholds defines the tunable numeric ranges that gate Q&A dataset
// submissions, and the layered configuration that produces them.
//
// # Precedence
//
// Thresholds are merged field by field from three layers, highest precedence
// first:
//
//  1. CLI overrides (e.g. --context-range 250,600)
//  2. JSON config file (--config thresholds.json)
//  3. Built-in defaults
//
// Partial overrides are allowed at every level: a file that only sets
// section_max leaves all other defaults intact.
//
// # Validation
//
// Build validates the merged result before any file is analyzed. A range with
// min > max, a negative bound, or a line-match fraction outside [0, 1] is a
// fatal INVALID_CONFIG error, never a per-file finding.
//
// # Defaults
//
//	context tokens        300–500   (advisory)
//	pair tokens           200–300   (advisory)
//	section tokens        <= 750    (hard ceiling)
//	seed examples         5–15      (advisory)
//	line match min length 30 chars
//	line match fraction   >= 0.85
//
// The number of evaluated pairs per example is fixed at 3 (MaxEvaluatedPairs)
// and cannot be configured.
package thresholds
