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

// Package match implements the approximate text-containment checks used to
// verify provenance: question-in-context, answer-in-context, and
// context-in-source-document.
//
// The matcher is deliberately not a single fuzzy-match score. The two tiers
// (normalized substring, then line-fraction fallback) stay explicit and
// independently testable because their failure policies differ: the length
// filter guards against short-line false positives, and the zero-survivor
// guard keeps the fallback from vacuously succeeding.
package match
