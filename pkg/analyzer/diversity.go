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

package analyzer

import (
	"strings"

	"github.com/NVIDIA/qna-analyzer/pkg/qna"
)

// measureDiversity applies cheap shape heuristics across all example
// contexts: markdown tables, bullet or numbered lists, long narrative lines,
// and equation or theorem markers. The flags are informational only.
func measureDiversity(doc *qna.Document) *Diversity {
	texts := make([]string, 0, len(doc.SeedExamples))
	for _, ex := range doc.SeedExamples {
		if ex.Context != "" {
			texts = append(texts, ex.Context)
		}
	}
	combined := strings.Join(texts, "\n")

	d := &Diversity{
		Table: strings.Contains(combined, "|") && strings.Contains(combined, "---"),
		EquationOrTheorem: strings.Contains(combined, "$") ||
			strings.Contains(combined, "∑") ||
			strings.Contains(strings.ToLower(combined), "theorem"),
	}

	for _, line := range strings.Split(combined, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || isNumberedItem(trimmed) {
			d.List = true
		}
		if len(trimmed) > 120 {
			d.Narrative = true
		}
	}
	return d
}

// isNumberedItem reports whether the line starts with digits followed by a
// dot, like a numbered list entry.
func isNumberedItem(line string) bool {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i < len(line) && line[i] == '.'
}
