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

// Package errors provides structured error types with classification codes.
//
// The analyzer distinguishes fatal configuration errors (invalid thresholds,
// unavailable tokenizer strategy, unreadable schema artifact) from per-file
// input problems. Only the former are raised as errors from this package;
// per-file conditions are recorded as report findings and never escape the
// pipeline.
//
// Usage:
//
//	if cfg.ContextMin > cfg.ContextMax {
//	    return errors.NewWithContext(errors.ErrCodeInvalidConfig,
//	        "context range min exceeds max",
//	        map[string]any{"min": cfg.ContextMin, "max": cfg.ContextMax})
//	}
package errors
