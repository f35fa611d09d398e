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

// Package schema performs JSON Schema conformance checking of parsed
// documents against the bundled "knowledge v3" artifact.
//
// # Applicability
//
// Schema validation fires only for files residing under a path segment
// designated for knowledge-type datasets (a "knowledge" segment anywhere in
// the path). For all other paths the Result is explicitly skipped
// (validated_against: null), which is distinct from both passed and failed.
//
// # Engine
//
// The underlying engine (gojsonschema) is treated as an opaque validation
// oracle: every violation it reports is surfaced with its message verbatim
// and a JSON-pointer-like path. Messages are never paraphrased because
// downstream consumers match on them.
package schema
