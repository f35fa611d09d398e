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

package lint

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// maxListedItems caps the line numbers and duplicate keys quoted in a note.
const maxListedItems = 10

// Result holds the outcome of every lint check for one file. All checks are
// advisory; none of them affects whether the file parses or validates.
type Result struct {
	TrailingWhitespaceLines []int    `json:"trailing_whitespace_lines" yaml:"trailing_whitespace_lines"`
	MissingFinalNewline     bool     `json:"missing_final_newline" yaml:"missing_final_newline"`
	HasTabs                 bool     `json:"has_tabs" yaml:"has_tabs"`
	MixedIndentation        bool     `json:"mixed_indentation" yaml:"mixed_indentation"`
	HasCRLF                 bool     `json:"has_crlf" yaml:"has_crlf"`
	DuplicateKeys           []string `json:"duplicate_keys" yaml:"duplicate_keys"`
}

// Check runs all format checks against the raw bytes of a YAML file. It
// operates on bytes rather than a parsed document so that formatting defects
// are reported even for files the YAML parser rejects; only duplicate-key
// detection needs a successful parse and is silently skipped without one.
func Check(raw []byte) Result {
	res := Result{
		TrailingWhitespaceLines: []int{},
		DuplicateKeys:           []string{},
	}

	text := string(raw)
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	sawSpaceIndent := false
	sawTabIndent := false
	for i, line := range lines {
		if strings.HasSuffix(line, "\r\n") {
			res.HasCRLF = true
		}
		body := strings.TrimRight(line, "\r\n")
		if n := len(body); n > 0 && (body[n-1] == ' ' || body[n-1] == '\t') {
			res.TrailingWhitespaceLines = append(res.TrailingWhitespaceLines, i+1)
		}
		indent := body[:len(body)-len(strings.TrimLeft(body, " \t"))]
		if strings.ContainsRune(indent, '\t') {
			sawTabIndent = true
		}
		if strings.ContainsRune(indent, ' ') {
			sawSpaceIndent = true
		}
	}

	if len(lines) > 0 && !strings.HasSuffix(lines[len(lines)-1], "\n") {
		res.MissingFinalNewline = true
	}
	res.HasTabs = strings.ContainsRune(text, '\t')
	res.MixedIndentation = sawSpaceIndent && sawTabIndent

	res.DuplicateKeys = duplicateKeys(raw)

	return res
}

// Clean reports whether no check found anything to note.
func (r Result) Clean() bool {
	return len(r.TrailingWhitespaceLines) == 0 &&
		!r.MissingFinalNewline &&
		!r.HasTabs &&
		!r.MixedIndentation &&
		!r.HasCRLF &&
		len(r.DuplicateKeys) == 0
}

// Notes renders the checks that fired as human-readable messages, in a fixed
// order. Tab presence is subsumed by the mixed-indentation note when both hold.
func (r Result) Notes() []string {
	notes := []string{}
	if r.MissingFinalNewline {
		notes = append(notes, "Missing final newline at end of file")
	}
	if len(r.TrailingWhitespaceLines) > 0 {
		notes = append(notes, fmt.Sprintf("Trailing whitespace on lines: %s",
			capInts(r.TrailingWhitespaceLines)))
	}
	if r.HasCRLF {
		notes = append(notes, "CRLF line endings detected; prefer LF")
	}
	if r.MixedIndentation {
		notes = append(notes, "Mixed indentation (tabs and spaces) detected")
	} else if r.HasTabs {
		notes = append(notes, "Tab characters present; prefer spaces for YAML indentation")
	}
	if len(r.DuplicateKeys) > 0 {
		notes = append(notes, fmt.Sprintf("Duplicate YAML keys detected (first few): %s",
			capStrings(dedupe(r.DuplicateKeys))))
	}
	return notes
}

// duplicateKeys walks the parsed node tree and collects mapping keys that
// repeat within the same mapping, in document order. The node decoder does
// not enforce key uniqueness, which is exactly what makes the walk possible.
func duplicateKeys(raw []byte) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		// Parse failures are reported elsewhere; without a node tree there
		// is nothing to inspect.
		return []string{}
	}
	dups := []string{}
	walkNode(&root, &dups)
	return dups
}

func walkNode(n *yaml.Node, dups *[]string) {
	if n.Kind == yaml.MappingNode {
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.ScalarNode {
				if seen[key.Value] {
					*dups = append(*dups, key.Value)
				}
				seen[key.Value] = true
			}
		}
	}
	for _, child := range n.Content {
		walkNode(child, dups)
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func capInts(values []int) string {
	parts := make([]string, 0, maxListedItems)
	for i, v := range values {
		if i == maxListedItems {
			break
		}
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return capJoin(parts, len(values))
}

func capStrings(values []string) string {
	if len(values) > maxListedItems {
		return capJoin(values[:maxListedItems], len(values))
	}
	return capJoin(values, len(values))
}

func capJoin(parts []string, total int) string {
	s := "[" + strings.Join(parts, ", ") + "]"
	if total > maxListedItems {
		s += "..."
	}
	return s
}
