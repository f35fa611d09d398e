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

package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func hasName(flag cli.Flag, name string) bool {
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func hasFlag(cmd *cli.Command, name string) bool {
	for _, f := range cmd.Flags {
		if hasName(f, name) {
			return true
		}
	}
	return false
}

func TestParseRange(t *testing.T) {
	lo, hi, err := parseRange("300,500")
	require.NoError(t, err)
	assert.Equal(t, 300, lo)
	assert.Equal(t, 500, hi)

	lo, hi, err = parseRange(" 5 , 15 ")
	require.NoError(t, err)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 15, hi)

	for _, bad := range []string{"", "300", "a,b", "1,2,3"} {
		_, _, err = parseRange(bad)
		assert.Error(t, err, "value %q", bad)
	}
}

func TestAnalyzeCmd_Shape(t *testing.T) {
	cmd := analyzeCmd()
	assert.Equal(t, "analyze", cmd.Name)
	require.NotNil(t, cmd.Action)
	for _, name := range []string{
		"file", "source-doc", "yaml-lint", "ai", "output", "format",
		"config", "context-range", "pair-range", "examples-range",
		"section-max", "line-match-min-length", "line-match-fraction-min",
		"tokenizer", "encoding",
	} {
		assert.True(t, hasFlag(cmd, name), "missing flag %q", name)
	}
}

func TestCrawlCmd_Shape(t *testing.T) {
	cmd := crawlCmd()
	assert.Equal(t, "crawl", cmd.Name)
	require.NotNil(t, cmd.Action)
	assert.True(t, hasFlag(cmd, "taxonomy-root"))
	assert.True(t, hasFlag(cmd, "data-dir"))
}

func TestCrawlCmd_RequiresExactlyOneRoot(t *testing.T) {
	err := crawlCmd().Run(context.Background(), []string{"crawl"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")

	err = crawlCmd().Run(context.Background(),
		[]string{"crawl", "--taxonomy-root", "a", "--data-dir", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestAnalyzeCmd_FailsOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "thresholds.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"context_min": 600, "context_max": 100}`), 0o644))
	file := filepath.Join(dir, "qna.yaml")
	require.NoError(t, os.WriteFile(file, []byte("version: 3\nseed_examples: []\n"), 0o644))

	err := analyzeCmd().Run(context.Background(), []string{
		"analyze", "--file", file, "--config", cfg, "--tokenizer", "heuristic",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min exceeds max")
}

func TestAnalyzeCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "qna.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`version: 3
seed_examples:
  - context: some short context text
    questions_and_answers:
      - question: q
        answer: a
`), 0o644))
	out := filepath.Join(dir, "report.json")

	err := analyzeCmd().Run(context.Background(), []string{
		"analyze", "--file", file, "--tokenizer", "heuristic",
		"--ai", "--output", out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ok": true`)
	assert.Contains(t, string(data), `"seed_examples_count": 1`)
}

func TestAnalyzeCmd_NonZeroOnSectionCeiling(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "qna.yaml")
	// The heuristic strategy counts about one token per four characters, so
	// a context this long sails past the 750-token ceiling.
	doc := "version: 3\nseed_examples:\n  - context: " +
		strings.Repeat("abcd ", 1000) +
		"\n    questions_and_answers:\n      - question: q\n        answer: a\n"
	require.NoError(t, os.WriteFile(file, []byte(doc), 0o644))
	out := filepath.Join(dir, "report.json")

	err := analyzeCmd().Run(context.Background(), []string{
		"analyze", "--file", file, "--tokenizer", "heuristic",
		"--ai", "--output", out,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error(s)")
}
