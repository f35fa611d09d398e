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

// Package analyzer is the validation pipeline: it orchestrates token
// counting, threshold evaluation, text containment, schema conformance, and
// format lint over one document and aggregates everything into an Analysis
// Report.
//
// # Severity model
//
// Only three conditions are errors and flip a report's OK flag: a YAML parse
// failure (or unreadable file), a schema conformance violation, and an
// example's section token total exceeding the configured ceiling. Every other
// check, including all advisory token ranges, containment checks, ignored
// extra pairs, and lint defects, is a warning and never affects OK.
//
// # Determinism
//
// A Report is a pure function of its inputs. Findings are emitted in a fixed
// order as each check runs: parse, schema, source patterns, document
// structure, then per example (context range, ignored pairs, per-pair checks,
// source containment, section ceiling), the example count check, and finally
// lint. No list in the output depends on map iteration, wall-clock time, or
// randomness.
package analyzer
