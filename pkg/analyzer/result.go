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
	"github.com/NVIDIA/qna-analyzer/pkg/header"
	"github.com/NVIDIA/qna-analyzer/pkg/lint"
	"github.com/NVIDIA/qna-analyzer/pkg/schema"
)

// APIVersion identifies the report schema version.
const APIVersion = "qna.nvidia.com/v1alpha1"

// Severity classifies a Finding. Only error-severity findings flip a report's
// OK flag; warnings are advisory regardless of how many accumulate.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FindingCode is the machine-readable classification of a Finding.
type FindingCode string

const (
	// Error-severity codes.
	CodeFileUnreadable  FindingCode = "file_unreadable"
	CodeParseFailure    FindingCode = "parse_failure"
	CodeSchemaViolation FindingCode = "schema_violation"
	CodeSectionCeiling  FindingCode = "section_ceiling_exceeded"

	// Warning-severity codes.
	CodeInvalidPattern          FindingCode = "invalid_pattern"
	CodeMissingSeedExamples     FindingCode = "missing_seed_examples"
	CodeSeedExamplesNotList     FindingCode = "seed_examples_not_list"
	CodeMissingContext          FindingCode = "missing_context"
	CodeContextTokenRange       FindingCode = "context_token_range"
	CodeMissingPairs            FindingCode = "missing_pairs"
	CodePairsNotList            FindingCode = "pairs_not_list"
	CodePairsIgnored            FindingCode = "pairs_ignored"
	CodeMissingQuestionOrAnswer FindingCode = "missing_question_or_answer"
	CodePairTokenRange          FindingCode = "pair_token_range"
	CodeQuestionNotInContext    FindingCode = "question_not_in_context"
	CodeAnswerNotInContext      FindingCode = "answer_not_in_context"
	CodeContextNotInSource      FindingCode = "context_not_in_source"
	CodeExamplesCountRange      FindingCode = "examples_count_range"
	CodeLintDefect              FindingCode = "lint_defect"
)

// Finding is one reported condition. Example and Pair are 1-based and zero
// when the finding is not scoped to that level. Findings are append-only; the
// pipeline never mutates one after emission.
type Finding struct {
	Severity Severity    `json:"severity" yaml:"severity"`
	Code     FindingCode `json:"code" yaml:"code"`
	Message  string      `json:"message" yaml:"message"`
	Example  int         `json:"example,omitempty" yaml:"example,omitempty"`
	Pair     int         `json:"pair,omitempty" yaml:"pair,omitempty"`
}

// PairConstraints holds the per-pair constraint outcomes. ContextInSource is
// nil when no source document was supplied; "not evaluated" is distinct from
// both true and false.
type PairConstraints struct {
	PairTokensRecommendedOK bool  `json:"pair_tokens_recommended_ok" yaml:"pair_tokens_recommended_ok"`
	QuestionInContext       bool  `json:"question_in_context" yaml:"question_in_context"`
	AnswerInContext         bool  `json:"answer_in_context" yaml:"answer_in_context"`
	ContextInSource         *bool `json:"context_in_source" yaml:"context_in_source"`
}

// PairResult carries token counts and constraint outcomes for one evaluated
// pair. Token fields are nil when the pair is structurally defective and was
// excluded from all sums.
type PairResult struct {
	PairIndex       int             `json:"pair_index" yaml:"pair_index"`
	QuestionTokens  *int            `json:"question_tokens" yaml:"question_tokens"`
	AnswerTokens    *int            `json:"answer_tokens" yaml:"answer_tokens"`
	PairTokensTotal *int            `json:"pair_tokens_total" yaml:"pair_tokens_total"`
	Constraints     PairConstraints `json:"constraints" yaml:"constraints"`
}

// ExampleConstraints holds the per-example constraint outcomes.
type ExampleConstraints struct {
	ContextTokensRangeOK    bool `json:"context_tokens_range_ok" yaml:"context_tokens_range_ok"`
	QnaPairsCountOK         bool `json:"qna_pairs_count_ok" yaml:"qna_pairs_count_ok"`
	TotalSectionTokensMaxOK bool `json:"total_section_tokens_max_ok" yaml:"total_section_tokens_max_ok"`

	// ContextDeviationFromMax is the absolute distance between the context
	// token count and the configured context maximum.
	ContextDeviationFromMax int `json:"context_deviation_from_max" yaml:"context_deviation_from_max"`

	// PairsIgnored is the number of pairs beyond the evaluated window.
	PairsIgnored int `json:"pairs_ignored" yaml:"pairs_ignored"`
}

// ExampleResult carries token counts and constraint outcomes for one seed
// example. Token fields are nil when the context is missing and nothing could
// be counted.
type ExampleResult struct {
	Index               int                `json:"index" yaml:"index"`
	ContextTokens       *int               `json:"context_tokens" yaml:"context_tokens"`
	QuestionTokensTotal *int               `json:"question_tokens_total" yaml:"question_tokens_total"`
	AnswerTokensTotal   *int               `json:"answer_tokens_total" yaml:"answer_tokens_total"`
	TotalSectionTokens  *int               `json:"total_section_tokens" yaml:"total_section_tokens"`
	Constraints         ExampleConstraints `json:"constraints" yaml:"constraints"`
	Pairs               []PairResult       `json:"pairs" yaml:"pairs"`
}

// RangeCheck reports a numeric range constraint together with the bounds it
// was evaluated against, so consumers need not know the configuration.
type RangeCheck struct {
	Min int  `json:"min" yaml:"min"`
	Max int  `json:"max" yaml:"max"`
	OK  bool `json:"ok" yaml:"ok"`
}

// Constraints holds the document-level constraint outcomes.
type Constraints struct {
	NumExamplesRecommended RangeCheck `json:"num_examples_recommended" yaml:"num_examples_recommended"`
}

// Diversity flags which content shapes appear across the example contexts.
// All heuristics are advisory and never produce findings.
type Diversity struct {
	Table             bool `json:"table" yaml:"table"`
	List              bool `json:"list" yaml:"list"`
	Narrative         bool `json:"narrative" yaml:"narrative"`
	EquationOrTheorem bool `json:"equation_or_theorem" yaml:"equation_or_theorem"`
}

// Report is the complete analysis outcome for one file. It is owned by the
// pipeline invocation that produced it and is never mutated afterwards; for
// identical inputs it is byte-for-byte reproducible.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// File is the path of the analyzed document.
	File string `json:"file" yaml:"file"`

	// OK is true iff no error-severity finding exists anywhere in the report.
	OK bool `json:"ok" yaml:"ok"`

	// Errors lists the error-severity finding messages in emission order.
	Errors []string `json:"errors" yaml:"errors"`

	SeedExamplesCount int             `json:"seed_examples_count" yaml:"seed_examples_count"`
	Constraints       Constraints     `json:"constraints" yaml:"constraints"`
	Examples          []ExampleResult `json:"examples" yaml:"examples"`
	Diversity         *Diversity      `json:"diversity,omitempty" yaml:"diversity,omitempty"`

	// Schema is the conformance result; its ValidatedAgainst is nil when the
	// document path did not designate a schema-checked kind.
	Schema *schema.Result `json:"schema,omitempty" yaml:"schema,omitempty"`

	// Lint is present only when format lint was requested.
	Lint *lint.Result `json:"yaml_lint,omitempty" yaml:"yaml_lint,omitempty"`

	// Findings is the full ordered list, errors and warnings alike.
	Findings []Finding `json:"findings" yaml:"findings"`
}

// ReportList aggregates the reports of a tree crawl in discovery-path order.
type ReportList struct {
	header.Header `json:",inline" yaml:",inline"`

	Reports []*Report `json:"reports" yaml:"reports"`
}

// OK reports whether every contained report passed.
func (l *ReportList) OK() bool {
	for _, r := range l.Reports {
		if !r.OK {
			return false
		}
	}
	return true
}

// NewReportList creates a ReportList with its header initialized.
func NewReportList(version string) *ReportList {
	opts := []header.Option{
		header.WithKind(header.KindReportList),
		header.WithAPIVersion(APIVersion),
	}
	if version != "" {
		opts = append(opts, header.WithMetadata("version", version))
	}
	l := &ReportList{Reports: make([]*Report, 0)}
	l.Header = *header.New(opts...)
	return l
}

func (r *Report) addFinding(f Finding) {
	r.Findings = append(r.Findings, f)
	if f.Severity == SeverityError {
		r.Errors = append(r.Errors, f.Message)
		r.OK = false
	}
}
