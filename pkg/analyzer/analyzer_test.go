/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/qna-analyzer/pkg/schema"
	"github.com/NVIDIA/qna-analyzer/pkg/thresholds"
)

// wordCounter counts whitespace-separated words, which makes token totals in
// tests trivially constructible.
type wordCounter struct{}

func (wordCounter) Count(text string) int { return len(strings.Fields(text)) }
func (wordCounter) Name() string          { return "words" }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	checker, err := schema.NewChecker()
	require.NoError(t, err)
	return New(wordCounter{}, checker, thresholds.Default(), "test")
}

// docYAML builds a minimal document with one-line scalars sized in words.
func docYAML(contextWords int, pairSizes [][2]int) []byte {
	var b strings.Builder
	b.WriteString("version: 3\ncreated_by: tester\nseed_examples:\n")
	b.WriteString("  - context: " + words(contextWords) + "\n")
	b.WriteString("    questions_and_answers:\n")
	for _, p := range pairSizes {
		b.WriteString("      - question: " + words(p[0]) + "\n")
		b.WriteString("        answer: " + words(p[1]) + "\n")
	}
	return []byte(b.String())
}

func findingCodes(r *Report) []FindingCode {
	codes := make([]FindingCode, 0, len(r.Findings))
	for _, f := range r.Findings {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestAnalyze_SmallSectionOnlyWarns(t *testing.T) {
	a := newAnalyzer(t)

	// Context of 50 tokens plus one 56-token pair: everything below the
	// advisory ranges, nothing near the hard ceiling.
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(50, [][2]int{{28, 28}})})

	require.Len(t, r.Examples, 1)
	ex := r.Examples[0]
	require.NotNil(t, ex.TotalSectionTokens)
	assert.Equal(t, 106, *ex.TotalSectionTokens)
	assert.False(t, ex.Constraints.ContextTokensRangeOK)
	assert.True(t, ex.Constraints.TotalSectionTokensMaxOK)

	assert.True(t, r.OK)
	assert.Empty(t, r.Errors)
	assert.Contains(t, findingCodes(r), CodeContextTokenRange)
	assert.Contains(t, findingCodes(r), CodePairTokenRange)
}

func TestAnalyze_SectionCeilingExceeded(t *testing.T) {
	a := newAnalyzer(t)

	// Context 400 plus three pairs of 250 totals 1150, past the 750 ceiling.
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(400, [][2]int{
		{125, 125}, {125, 125}, {125, 125},
	})})

	require.Len(t, r.Examples, 1)
	ex := r.Examples[0]
	assert.Equal(t, 1150, *ex.TotalSectionTokens)
	assert.False(t, ex.Constraints.TotalSectionTokensMaxOK)

	assert.False(t, r.OK)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "Example 1: total section tokens 1150 exceed maximum 750", r.Errors[0])
}

func TestAnalyze_SectionCeilingBoundary(t *testing.T) {
	a := newAnalyzer(t)

	pairs := [][2]int{{100, 100}, {100, 100}, {100, 100}}

	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(150, pairs)})
	require.Len(t, r.Examples, 1)
	assert.Equal(t, 750, *r.Examples[0].TotalSectionTokens)
	assert.True(t, r.Examples[0].Constraints.TotalSectionTokensMaxOK)
	assert.True(t, r.OK)

	r = a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(151, pairs)})
	assert.Equal(t, 751, *r.Examples[0].TotalSectionTokens)
	assert.False(t, r.Examples[0].Constraints.TotalSectionTokensMaxOK)
	assert.False(t, r.OK)
}

func TestAnalyze_ExtraPairsIgnored(t *testing.T) {
	a := newAnalyzer(t)

	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(100, [][2]int{
		{10, 10}, {10, 10}, {10, 10}, {10, 10},
	})})

	require.Len(t, r.Examples, 1)
	ex := r.Examples[0]
	assert.Equal(t, 1, ex.Constraints.PairsIgnored)
	assert.False(t, ex.Constraints.QnaPairsCountOK)
	require.Len(t, ex.Pairs, 3)

	// Only the first three pairs contribute to the sums.
	assert.Equal(t, 100+60, *ex.TotalSectionTokens)
	assert.Equal(t, 30, *ex.QuestionTokensTotal)
	assert.Equal(t, 30, *ex.AnswerTokensTotal)

	assert.Contains(t, findingCodes(r), CodePairsIgnored)
}

func TestAnalyze_SectionTotalIsContextPlusEvaluatedPairs(t *testing.T) {
	a := newAnalyzer(t)

	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(42, [][2]int{
		{5, 7}, {11, 13},
	})})

	require.Len(t, r.Examples, 1)
	ex := r.Examples[0]
	sum := *ex.ContextTokens
	for _, p := range ex.Pairs {
		sum += *p.PairTokensTotal
	}
	assert.Equal(t, sum, *ex.TotalSectionTokens)
}

func TestAnalyze_ContextInSource(t *testing.T) {
	a := newAnalyzer(t)
	raw := []byte(`version: 3
seed_examples:
  - context: The quick brown fox jumps over the lazy dog near the river bank today.
    questions_and_answers:
      - question: What jumps?
        answer: The fox.
`)

	t.Run("verbatim in source", func(t *testing.T) {
		src := "Intro text. The quick brown fox jumps over the lazy dog near the river bank today. Outro."
		r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw, SourceDoc: &src})
		require.Len(t, r.Examples, 1)
		require.Len(t, r.Examples[0].Pairs, 1)
		cis := r.Examples[0].Pairs[0].Constraints.ContextInSource
		require.NotNil(t, cis)
		assert.True(t, *cis)
		assert.NotContains(t, findingCodes(r), CodeContextNotInSource)
	})

	t.Run("absent from source", func(t *testing.T) {
		src := "An entirely unrelated document about medieval shipbuilding techniques and rigging."
		r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw, SourceDoc: &src})
		cis := r.Examples[0].Pairs[0].Constraints.ContextInSource
		require.NotNil(t, cis)
		assert.False(t, *cis)
		assert.Contains(t, findingCodes(r), CodeContextNotInSource)
		// Advisory only.
		assert.True(t, r.OK)
	})

	t.Run("no source supplied", func(t *testing.T) {
		r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw})
		assert.Nil(t, r.Examples[0].Pairs[0].Constraints.ContextInSource)
		assert.NotContains(t, findingCodes(r), CodeContextNotInSource)
	})
}

func TestAnalyze_SchemaViolationOnKnowledgePath(t *testing.T) {
	a := newAnalyzer(t)

	// Valid in every respect except the missing version field.
	var b strings.Builder
	b.WriteString("created_by: tester\ndomain: d\ndocument_outline: o\n")
	b.WriteString("document:\n  repo: r\n  commit: c\n  patterns: [\"*.md\"]\n")
	b.WriteString("seed_examples:\n")
	for i := 0; i < 5; i++ {
		b.WriteString("  - context: " + words(10) + "\n")
		b.WriteString("    questions_and_answers:\n")
		for j := 0; j < 3; j++ {
			b.WriteString("      - question: " + words(3) + "\n")
			b.WriteString("        answer: " + words(3) + "\n")
		}
	}

	r := a.Analyze(Input{Path: "taxonomy/knowledge/science/qna.yaml", Raw: []byte(b.String())})

	require.NotNil(t, r.Schema)
	require.NotNil(t, r.Schema.ValidatedAgainst)
	assert.False(t, r.OK)
	assert.Contains(t, r.Errors, "version is required")
	assert.Contains(t, findingCodes(r), CodeSchemaViolation)
}

func TestAnalyze_SchemaSkippedOffKnowledgePath(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(10, [][2]int{{2, 2}})})
	require.NotNil(t, r.Schema)
	assert.Nil(t, r.Schema.ValidatedAgainst)
	assert.Empty(t, r.Schema.Errors)
}

func TestAnalyze_ParseFailure(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: []byte("key: [unclosed\n"), Lint: true})

	assert.False(t, r.OK)
	require.NotEmpty(t, r.Findings)
	assert.Equal(t, CodeParseFailure, r.Findings[0].Code)
	assert.Contains(t, r.Errors[0], "YAML parse error")
	// Lint still runs on unparseable input.
	assert.NotNil(t, r.Lint)
}

func TestAnalyze_ScalarRoot(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: []byte("just a string\n")})
	assert.False(t, r.OK)
	assert.Contains(t, findingCodes(r), CodeParseFailure)
}

func TestAnalyze_StructuralDefects(t *testing.T) {
	a := newAnalyzer(t)
	raw := []byte(`version: 3
seed_examples:
  - questions_and_answers:
      - question: q
        answer: a
  - context: some context text here
  - context: more context text here
    questions_and_answers:
      - question: only a question
`)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw})

	assert.True(t, r.OK, "structural defects are warnings, not errors")
	require.Len(t, r.Examples, 3)

	assert.Nil(t, r.Examples[0].ContextTokens)
	assert.Contains(t, findingCodes(r), CodeMissingContext)
	assert.Contains(t, findingCodes(r), CodeMissingPairs)
	assert.Contains(t, findingCodes(r), CodeMissingQuestionOrAnswer)

	// The defective pair stays in place with nil counts.
	require.Len(t, r.Examples[2].Pairs, 1)
	assert.Nil(t, r.Examples[2].Pairs[0].QuestionTokens)
	assert.Equal(t, 0, *r.Examples[2].QuestionTokensTotal)
}

func TestAnalyze_DuplicateKeyStillAnalyzes(t *testing.T) {
	a := newAnalyzer(t)

	// A repeated top-level key must not abort analysis: the document decodes,
	// the example is scored, and the duplicate surfaces as a lint note only.
	raw := []byte("version: 3\n" +
		"domain: first\n" +
		"domain: second\n" +
		"seed_examples:\n" +
		"  - context: " + words(400) + "\n" +
		"    questions_and_answers:\n" +
		"      - question: " + words(100) + "\n" +
		"        answer: " + words(150) + "\n")
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw, Lint: true})

	assert.True(t, r.OK)
	assert.NotContains(t, findingCodes(r), CodeParseFailure)

	require.Len(t, r.Examples, 1)
	require.NotNil(t, r.Examples[0].ContextTokens)
	assert.Equal(t, 400, *r.Examples[0].ContextTokens)
	require.Len(t, r.Examples[0].Pairs, 1)

	assert.Contains(t, findingCodes(r), CodeLintDefect)
	require.NotNil(t, r.Lint)
	assert.Contains(t, r.Lint.DuplicateKeys, "domain")
}

func TestAnalyze_MissingContextAndPairs(t *testing.T) {
	a := newAnalyzer(t)

	// Both the context and the Q&A section are absent. The missing context
	// wins: the example is reported as unscoreable, not scored at zero
	// tokens with a spurious range warning.
	raw := []byte("version: 3\nseed_examples:\n  - domain: oops\n")
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw})

	require.Len(t, r.Examples, 1)
	ex := r.Examples[0]
	assert.Nil(t, ex.ContextTokens)
	assert.Nil(t, ex.TotalSectionTokens)
	assert.Empty(t, ex.Pairs)

	codes := findingCodes(r)
	assert.Contains(t, codes, CodeMissingContext)
	assert.NotContains(t, codes, CodeContextTokenRange)
	assert.NotContains(t, codes, CodeMissingPairs)
	assert.True(t, r.OK)
}

func TestAnalyze_InvalidPattern(t *testing.T) {
	a := newAnalyzer(t)
	raw := []byte(`version: 3
document:
  repo: r
  commit: c
  patterns:
    - "docs/**/*.md"
    - "bad[pattern"
seed_examples:
  - context: some context
    questions_and_answers:
      - question: q
        answer: a
`)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw})

	var patternFindings []Finding
	for _, f := range r.Findings {
		if f.Code == CodeInvalidPattern {
			patternFindings = append(patternFindings, f)
		}
	}
	require.Len(t, patternFindings, 1)
	assert.Contains(t, patternFindings[0].Message, "bad[pattern")
	assert.True(t, r.OK)
}

func TestAnalyze_ExamplesCountRange(t *testing.T) {
	a := newAnalyzer(t)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(10, [][2]int{{2, 2}})})

	assert.Equal(t, 1, r.SeedExamplesCount)
	assert.False(t, r.Constraints.NumExamplesRecommended.OK)
	assert.Equal(t, 5, r.Constraints.NumExamplesRecommended.Min)
	assert.Equal(t, 15, r.Constraints.NumExamplesRecommended.Max)
	assert.Contains(t, findingCodes(r), CodeExamplesCountRange)
	assert.True(t, r.OK, "example count is advisory")
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := newAnalyzer(t)
	src := "Some source material for the containment check to chew on."
	in := Input{
		Path:      "taxonomy/knowledge/qna.yaml",
		Raw:       docYAML(320, [][2]int{{120, 130}, {5, 5}}),
		SourceDoc: &src,
		Lint:      true,
	}

	first, err := json.Marshal(a.Analyze(in))
	require.NoError(t, err)
	second, err := json.Marshal(a.Analyze(in))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAnalyze_FindingEmissionOrder(t *testing.T) {
	a := newAnalyzer(t)

	// One example that trips the context range, the ignored-pairs cap, the
	// pair range, and the section ceiling, followed by the count check.
	pairs := make([][2]int, 4)
	for i := range pairs {
		pairs[i] = [2]int{150, 150}
	}
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: docYAML(10, pairs), Lint: true})

	var sequence []FindingCode
	for _, f := range r.Findings {
		switch f.Code {
		case CodeContextTokenRange, CodePairsIgnored, CodeSectionCeiling,
			CodeExamplesCountRange:
			sequence = append(sequence, f.Code)
		}
	}
	assert.Equal(t, []FindingCode{
		CodeContextTokenRange,
		CodePairsIgnored,
		CodeSectionCeiling,
		CodeExamplesCountRange,
	}, sequence)
}

func TestAnalyzeFile_Missing(t *testing.T) {
	a := newAnalyzer(t)
	r := a.AnalyzeFile("no/such/file.yaml", nil, false)
	assert.False(t, r.OK)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, fmt.Sprintf("File not found: %s", "no/such/file.yaml"), r.Errors[0])
}

func TestMeasureDiversity(t *testing.T) {
	a := newAnalyzer(t)
	raw := []byte(`version: 3
seed_examples:
  - context: |
      | a | b |
      | --- | --- |
      - bullet item
      1. numbered item
      The theorem states that every bounded monotone sequence converges to a limit in the reals, which is the content we expect a narrative paragraph to carry here.
    questions_and_answers:
      - question: q
        answer: a
`)
	r := a.Analyze(Input{Path: "data/qna.yaml", Raw: raw})
	require.NotNil(t, r.Diversity)
	assert.True(t, r.Diversity.Table)
	assert.True(t, r.Diversity.List)
	assert.True(t, r.Diversity.Narrative)
	assert.True(t, r.Diversity.EquationOrTheorem)
}
