/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/qna-analyzer/pkg/thresholds"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  Hello   World  ", "hello world"},
		{"Tabs\tand\nnewlines", "tabs and newlines"},
		{"MIXED Case", "mixed case"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestContains_NormalizedSubstring(t *testing.T) {
	cfg := thresholds.Default()

	haystack := "The mitochondrion is the powerhouse of the cell.\nIt produces ATP."

	// Verbatim needle always matches under tier 1.
	assert.True(t, Contains("powerhouse of the cell", haystack, cfg))
	// Case and whitespace differences are normalized away.
	assert.True(t, Contains("POWERHOUSE   of the\ncell", haystack, cfg))

	assert.False(t, Contains("chloroplast", haystack, cfg))
}

func TestContains_LineFractionFallback(t *testing.T) {
	cfg := thresholds.Default()
	cfg.LineMatchMinLength = 10
	cfg.LineMatchFractionMin = 0.75

	haystack := strings.Join([]string{
		"alpha line one is present in the source",
		"alpha line two is present in the source",
		"alpha line three is present in the source",
	}, " ")

	// 3 of 4 surviving lines match: exactly at the 0.75 threshold.
	needle := strings.Join([]string{
		"alpha line one is present in the source",
		"alpha line two is present in the source",
		"alpha line three is present in the source",
		"this line appears nowhere in the haystack",
	}, "\n")
	assert.True(t, Contains(needle, haystack, cfg))

	// 2 of 4: one matching line below the threshold count.
	needle = strings.Join([]string{
		"alpha line one is present in the source",
		"alpha line two is present in the source",
		"this line appears nowhere in the haystack",
		"another line that is also entirely absent",
	}, "\n")
	assert.False(t, Contains(needle, haystack, cfg))
}

func TestContains_AllLinesBelowLengthFilter(t *testing.T) {
	cfg := thresholds.Default()

	// Every line is shorter than the 30-char filter and the needle is absent
	// verbatim: the fallback must report no match, not divide by zero or
	// vacuously succeed.
	needle := "short\nlines\nonly"
	assert.False(t, Contains(needle, "entirely unrelated haystack text", cfg))
}

func TestLineFraction(t *testing.T) {
	cfg := thresholds.Default()
	cfg.LineMatchMinLength = 10

	needle := "a line that is long enough to count\nshort\nanother line that is long enough"
	haystack := "prefix a line that is long enough to count suffix"

	matched, survived, fraction := LineFraction(needle, haystack, cfg)
	assert.Equal(t, 1, matched)
	assert.Equal(t, 2, survived)
	assert.InDelta(t, 0.5, fraction, 1e-9)
}

func TestLineFraction_FilterCountsCharactersNotBytes(t *testing.T) {
	cfg := thresholds.Default()

	// 20 three-byte characters: 60 bytes but only 20 characters, under the
	// 30-character filter, so the line must not survive.
	short := strings.Repeat("細", 20)
	matched, survived, fraction := LineFraction(short, "unrelated text", cfg)
	assert.Zero(t, matched)
	assert.Zero(t, survived)
	assert.Zero(t, fraction)

	// 35 characters survives the filter regardless of byte width.
	long := strings.Repeat("細", 35)
	matched, survived, fraction = LineFraction(long, long, cfg)
	assert.Equal(t, 1, matched)
	assert.Equal(t, 1, survived)
	assert.InDelta(t, 1.0, fraction, 1e-9)
}

func TestLineFraction_NoSurvivors(t *testing.T) {
	cfg := thresholds.Default()

	matched, survived, fraction := LineFraction("tiny", "haystack", cfg)
	assert.Zero(t, matched)
	assert.Zero(t, survived)
	assert.Zero(t, fraction)
}
