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
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/NVIDIA/qna-analyzer/pkg/header"
	"github.com/NVIDIA/qna-analyzer/pkg/lint"
	"github.com/NVIDIA/qna-analyzer/pkg/match"
	"github.com/NVIDIA/qna-analyzer/pkg/qna"
	"github.com/NVIDIA/qna-analyzer/pkg/schema"
	"github.com/NVIDIA/qna-analyzer/pkg/thresholds"
	"github.com/NVIDIA/qna-analyzer/pkg/tokenizer"
)

// Analyzer runs the validation pipeline. It holds only read-only
// collaborators, so one instance may analyze many files concurrently.
type Analyzer struct {
	counter tokenizer.Counter
	checker *schema.Checker
	cfg     thresholds.Config
	version string
}

// Input is everything one pipeline invocation consumes. SourceDoc is nil when
// no source document was supplied; the distinction carries through to every
// context_in_source outcome.
type Input struct {
	Path      string
	Raw       []byte
	SourceDoc *string
	Lint      bool
}

// New creates an Analyzer. All strategy selection (token counting, schema
// compilation, threshold merging) has already happened by the time this is
// called; analysis itself cannot fail on infrastructure.
func New(counter tokenizer.Counter, checker *schema.Checker, cfg thresholds.Config, version string) *Analyzer {
	return &Analyzer{
		counter: counter,
		checker: checker,
		cfg:     cfg,
		version: version,
	}
}

// AnalyzeFile reads path and analyzes its contents. An unreadable file yields
// a failed report rather than an error, so tree crawls continue past it.
func (a *Analyzer) AnalyzeFile(path string, sourceDoc *string, lintEnabled bool) *Report {
	raw, err := os.ReadFile(path)
	if err != nil {
		r := a.newReport(path)
		msg := fmt.Sprintf("failed to read file %s: %v", path, err)
		if os.IsNotExist(err) {
			msg = fmt.Sprintf("File not found: %s", path)
		}
		r.addFinding(Finding{Severity: SeverityError, Code: CodeFileUnreadable, Message: msg})
		return r
	}
	return a.Analyze(Input{Path: path, Raw: raw, SourceDoc: sourceDoc, Lint: lintEnabled})
}

// Analyze runs the full pipeline over one document and produces its Report.
// It is a pure function of its inputs: identical inputs yield a
// byte-for-byte identical Report.
func (a *Analyzer) Analyze(in Input) *Report {
	slog.Debug("analyzing document", "file", in.Path, "bytes", len(in.Raw))

	r := a.newReport(in.Path)

	content, err := qna.Decode(in.Raw)
	if err != nil {
		r.addFinding(Finding{
			Severity: SeverityError,
			Code:     CodeParseFailure,
			Message:  fmt.Sprintf("YAML parse error: %v", err),
		})
		a.runLint(r, in)
		return r
	}

	res := a.checker.Validate(content, in.Path)
	r.Schema = &res
	for _, v := range res.Errors {
		r.addFinding(Finding{
			Severity: SeverityError,
			Code:     CodeSchemaViolation,
			Message:  v.Message,
		})
	}

	doc, issues := qna.Project(content)
	if doc == nil {
		r.addFinding(Finding{
			Severity: SeverityError,
			Code:     CodeParseFailure,
			Message:  "document root is not a mapping",
		})
		a.runLint(r, in)
		return r
	}

	a.checkPatterns(r, doc)

	// One location can carry several defects, e.g. an example missing both
	// its context and its Q&A section, so codes accumulate per key.
	byLocation := make(map[issueKey][]qna.IssueCode, len(issues))
	for _, issue := range issues {
		switch issue.Code {
		case qna.IssueMissingSeedExamples:
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeMissingSeedExamples,
				Message:  "no seed_examples section found",
			})
		case qna.IssueSeedExamplesNotList:
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeSeedExamplesNotList,
				Message:  "seed_examples should be a list",
			})
		default:
			k := issueKey{issue.Example, issue.Pair}
			byLocation[k] = append(byLocation[k], issue.Code)
		}
	}

	r.SeedExamplesCount = len(doc.SeedExamples)
	for i, ex := range doc.SeedExamples {
		r.Examples = append(r.Examples, a.analyzeExample(r, i+1, ex, byLocation, in.SourceDoc))
	}

	countOK := r.SeedExamplesCount >= a.cfg.ExamplesMin && r.SeedExamplesCount <= a.cfg.ExamplesMax
	r.Constraints.NumExamplesRecommended.OK = countOK
	if !countOK {
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeExamplesCountRange,
			Message: fmt.Sprintf("seed examples count %d outside recommended range %d-%d",
				r.SeedExamplesCount, a.cfg.ExamplesMin, a.cfg.ExamplesMax),
		})
	}

	r.Diversity = measureDiversity(doc)
	a.runLint(r, in)
	return r
}

type issueKey struct {
	example int
	pair    int
}

func (a *Analyzer) newReport(path string) *Report {
	r := &Report{
		File:     path,
		OK:       true,
		Errors:   []string{},
		Examples: []ExampleResult{},
		Findings: []Finding{},
		Constraints: Constraints{
			NumExamplesRecommended: RangeCheck{
				Min: a.cfg.ExamplesMin,
				Max: a.cfg.ExamplesMax,
			},
		},
	}
	r.Init(header.KindAnalysisReport, APIVersion, a.version)
	return r
}

func (a *Analyzer) checkPatterns(r *Report, doc *qna.Document) {
	if doc.Document == nil {
		return
	}
	for _, p := range doc.Document.Patterns {
		if !doublestar.ValidatePattern(p) {
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeInvalidPattern,
				Message:  fmt.Sprintf("document pattern %q is not a valid glob", p),
			})
		}
	}
}

func (a *Analyzer) analyzeExample(r *Report, n int, ex qna.Example, byLocation map[issueKey][]qna.IssueCode, sourceDoc *string) ExampleResult {
	res := ExampleResult{Index: n, Pairs: []PairResult{}}

	// A missing context wins over any other defect of the same example: the
	// example cannot be scored at all, so nothing else about it is reported.
	exampleIssues := byLocation[issueKey{n, 0}]
	if slices.Contains(exampleIssues, qna.IssueMissingContext) {
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeMissingContext,
			Message:  fmt.Sprintf("Example %d: missing context", n),
			Example:  n,
		})
		return res
	}

	contextTokens := a.counter.Count(ex.Context)
	res.ContextTokens = &contextTokens
	res.Constraints.ContextTokensRangeOK = contextTokens >= a.cfg.ContextMin &&
		contextTokens <= a.cfg.ContextMax
	res.Constraints.ContextDeviationFromMax = abs(contextTokens - a.cfg.ContextMax)
	if !res.Constraints.ContextTokensRangeOK {
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeContextTokenRange,
			Message: fmt.Sprintf("Example %d: context tokens %d outside recommended range %d-%d",
				n, contextTokens, a.cfg.ContextMin, a.cfg.ContextMax),
			Example: n,
		})
	}

	switch {
	case slices.Contains(exampleIssues, qna.IssueMissingPairs):
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeMissingPairs,
			Message:  fmt.Sprintf("Example %d: no questions_and_answers section", n),
			Example:  n,
		})
	case slices.Contains(exampleIssues, qna.IssuePairsNotList):
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodePairsNotList,
			Message:  fmt.Sprintf("Example %d: questions_and_answers should be a list", n),
			Example:  n,
		})
	}

	pairs := ex.QuestionsAndAnswers
	res.Constraints.QnaPairsCountOK = len(exampleIssues) == 0 &&
		len(pairs) >= 1 && len(pairs) <= thresholds.MaxEvaluatedPairs
	if len(pairs) > thresholds.MaxEvaluatedPairs {
		res.Constraints.PairsIgnored = len(pairs) - thresholds.MaxEvaluatedPairs
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodePairsIgnored,
			Message: fmt.Sprintf("Example %d: %d Q&A pair(s) beyond %d will be ignored",
				n, res.Constraints.PairsIgnored, thresholds.MaxEvaluatedPairs),
			Example: n,
		})
		pairs = pairs[:thresholds.MaxEvaluatedPairs]
	}

	// The containment of the context in the source document is a property of
	// the example; every pair row carries the same tri-state value.
	var contextInSource *bool
	if sourceDoc != nil {
		v := match.Contains(ex.Context, *sourceDoc, a.cfg)
		contextInSource = &v
	}

	questionTotal, answerTotal := 0, 0
	sectionTotal := contextTokens

	for j, p := range pairs {
		idx := j + 1
		pr := PairResult{
			PairIndex:   idx,
			Constraints: PairConstraints{ContextInSource: contextInSource},
		}

		if slices.Contains(byLocation[issueKey{n, idx}], qna.IssueMissingQuestionOrAnswer) {
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeMissingQuestionOrAnswer,
				Message:  fmt.Sprintf("Example %d pair %d: missing question or answer", n, idx),
				Example:  n,
				Pair:     idx,
			})
			res.Pairs = append(res.Pairs, pr)
			continue
		}

		questionTokens := a.counter.Count(p.Question)
		answerTokens := a.counter.Count(p.Answer)
		pairTotal := questionTokens + answerTokens
		questionTotal += questionTokens
		answerTotal += answerTokens
		sectionTotal += pairTotal

		pr.QuestionTokens = &questionTokens
		pr.AnswerTokens = &answerTokens
		pr.PairTokensTotal = &pairTotal

		pr.Constraints.PairTokensRecommendedOK = pairTotal >= a.cfg.PairMin &&
			pairTotal <= a.cfg.PairMax
		if !pr.Constraints.PairTokensRecommendedOK {
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodePairTokenRange,
				Message: fmt.Sprintf("Example %d pair %d: pair tokens %d outside recommended range %d-%d",
					n, idx, pairTotal, a.cfg.PairMin, a.cfg.PairMax),
				Example: n,
				Pair:    idx,
			})
		}

		pr.Constraints.QuestionInContext = match.Contains(p.Question, ex.Context, a.cfg)
		if !pr.Constraints.QuestionInContext {
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeQuestionNotInContext,
				Message:  fmt.Sprintf("Example %d pair %d: question not found in context", n, idx),
				Example:  n,
				Pair:     idx,
			})
		}
		pr.Constraints.AnswerInContext = match.Contains(p.Answer, ex.Context, a.cfg)
		if !pr.Constraints.AnswerInContext {
			r.addFinding(Finding{
				Severity: SeverityWarning,
				Code:     CodeAnswerNotInContext,
				Message:  fmt.Sprintf("Example %d pair %d: answer not found in context", n, idx),
				Example:  n,
				Pair:     idx,
			})
		}

		res.Pairs = append(res.Pairs, pr)
	}

	res.QuestionTokensTotal = &questionTotal
	res.AnswerTokensTotal = &answerTotal
	res.TotalSectionTokens = &sectionTotal

	if contextInSource != nil && !*contextInSource {
		_, _, fraction := match.LineFraction(ex.Context, *sourceDoc, a.cfg)
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeContextNotInSource,
			Message: fmt.Sprintf("Example %d: context may not match provided source document (line match %.2f)",
				n, fraction),
			Example: n,
		})
	}

	res.Constraints.TotalSectionTokensMaxOK = sectionTotal <= a.cfg.SectionMax
	if !res.Constraints.TotalSectionTokensMaxOK {
		r.addFinding(Finding{
			Severity: SeverityError,
			Code:     CodeSectionCeiling,
			Message: fmt.Sprintf("Example %d: total section tokens %d exceed maximum %d",
				n, sectionTotal, a.cfg.SectionMax),
			Example: n,
		})
	}

	return res
}

func (a *Analyzer) runLint(r *Report, in Input) {
	if !in.Lint {
		return
	}
	res := lint.Check(in.Raw)
	r.Lint = &res
	for _, note := range res.Notes() {
		r.addFinding(Finding{
			Severity: SeverityWarning,
			Code:     CodeLintDefect,
			Message:  note,
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
