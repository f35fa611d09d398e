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

package match

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/NVIDIA/qna-analyzer/pkg/thresholds"
)

// Normalize prepares text for loose containment comparison: Unicode NFC,
// lowercase, runs of whitespace collapsed to a single space, leading and
// trailing whitespace stripped.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFC.String(s))), " ")
}

// Contains reports whether needle is adequately present in haystack.
//
// Two tiers are tried in order; the first success wins:
//
//  1. Normalized substring: the normalized haystack includes the normalized
//     needle as a contiguous substring.
//  2. Line fraction: the needle is split into lines, lines shorter than
//     cfg.LineMatchMinLength characters (after trimming) are discarded as
//     unreliable signals, and the needle is contained when the fraction of surviving
//     lines found in the haystack is >= cfg.LineMatchFractionMin. When zero
//     lines survive the filter, the fallback reports no match.
func Contains(needle, haystack string, cfg thresholds.Config) bool {
	normHaystack := Normalize(haystack)
	if strings.Contains(normHaystack, Normalize(needle)) {
		return true
	}

	matched, survived := lineMatches(needle, normHaystack, cfg.LineMatchMinLength)
	if survived == 0 {
		return false
	}
	return float64(matched)/float64(survived) >= cfg.LineMatchFractionMin
}

// LineFraction exposes the tier-2 measurement for reporting: how many needle
// lines survived the length filter and what fraction of them matched. The
// fraction is 0 when no lines survive.
func LineFraction(needle, haystack string, cfg thresholds.Config) (matched, survived int, fraction float64) {
	matched, survived = lineMatches(needle, Normalize(haystack), cfg.LineMatchMinLength)
	if survived == 0 {
		return 0, 0, 0
	}
	return matched, survived, float64(matched) / float64(survived)
}

func lineMatches(needle, normHaystack string, minLength int) (matched, survived int) {
	for _, line := range strings.Split(needle, "\n") {
		trimmed := strings.TrimSpace(line)
		// Character count, not bytes, so multi-byte text is filtered the
		// same way as ASCII.
		if utf8.RuneCountInString(trimmed) < minLength {
			continue
		}
		survived++
		if strings.Contains(normHaystack, Normalize(trimmed)) {
			matched++
		}
	}
	return matched, survived
}
