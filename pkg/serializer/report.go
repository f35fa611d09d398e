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

package serializer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/NVIDIA/qna-analyzer/pkg/analyzer"
)

// RenderHumanList renders every report in the list, separated by blank lines,
// followed by a one-line pass/fail summary.
func RenderHumanList(out io.Writer, list *analyzer.ReportList) error {
	passed := 0
	for i, r := range list.Reports {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := RenderHuman(out, r); err != nil {
			return err
		}
		if r.OK {
			passed++
		}
	}
	fmt.Fprintf(out, "\n%d of %d file(s) passed\n", passed, len(list.Reports))
	return nil
}

// RenderHuman renders one report as a set of tables and finding lists. The
// layout is driven entirely by the report; rendering never re-evaluates any
// constraint.
func RenderHuman(out io.Writer, r *analyzer.Report) error {
	fmt.Fprintf(out, "File: %s\n", r.File)
	fmt.Fprintf(out, "Result: %s\n", passFail(r.OK))

	if len(r.Examples) > 0 {
		fmt.Fprintln(out)
		if err := renderExampleTable(out, r); err != nil {
			return err
		}
	}

	for _, ex := range r.Examples {
		if len(ex.Pairs) == 0 {
			continue
		}
		fmt.Fprintf(out, "\nExample %d pairs:\n", ex.Index)
		if err := renderPairTable(out, ex); err != nil {
			return err
		}
	}

	if r.Schema != nil {
		fmt.Fprintln(out)
		renderSchema(out, r)
	}

	if r.Lint != nil {
		notes := r.Lint.Notes()
		if len(notes) > 0 {
			fmt.Fprintln(out, "\nYAML Lint:")
			for _, n := range notes {
				fmt.Fprintf(out, "  - %s\n", n)
			}
		}
	}

	if len(r.Findings) > 0 {
		fmt.Fprintln(out, "\nFindings:")
		for _, f := range r.Findings {
			fmt.Fprintf(out, "  [%s] %s: %s\n", f.Severity, f.Code, f.Message)
		}
	}

	return nil
}

func renderExampleTable(out io.Writer, r *analyzer.Report) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXAMPLE\tCONTEXT TOKENS\tQ TOKENS\tA TOKENS\tSECTION TOKENS\tSTATUS")
	for _, ex := range r.Examples {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			ex.Index,
			cell(ex.ContextTokens),
			cell(ex.QuestionTokensTotal),
			cell(ex.AnswerTokensTotal),
			cell(ex.TotalSectionTokens),
			exampleStatus(ex))
	}
	return tw.Flush()
}

func renderPairTable(out io.Writer, ex analyzer.ExampleResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PAIR\tQ TOKENS\tA TOKENS\tTOTAL\tPAIR RANGE\tQ IN CTX\tA IN CTX\tCTX IN SRC")
	for _, p := range ex.Pairs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.PairIndex,
			cell(p.QuestionTokens),
			cell(p.AnswerTokens),
			cell(p.PairTokensTotal),
			yesNo(p.Constraints.PairTokensRecommendedOK),
			yesNo(p.Constraints.QuestionInContext),
			yesNo(p.Constraints.AnswerInContext),
			triState(p.Constraints.ContextInSource))
	}
	return tw.Flush()
}

func renderSchema(out io.Writer, r *analyzer.Report) {
	if r.Schema.ValidatedAgainst == nil {
		fmt.Fprintln(out, "Schema: skipped")
		return
	}
	fmt.Fprintf(out, "Schema: validated against %s, %d violation(s)\n",
		*r.Schema.ValidatedAgainst, len(r.Schema.Errors))
	for _, v := range r.Schema.Errors {
		path := v.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(out, "  - %s: %s\n", path, v.Message)
	}
}

// exampleStatus condenses the example constraint flags into one short label,
// worst condition first.
func exampleStatus(ex analyzer.ExampleResult) string {
	switch {
	case ex.ContextTokens == nil:
		return "missing context"
	case !ex.Constraints.TotalSectionTokensMaxOK:
		return "section over limit"
	case !ex.Constraints.ContextTokensRangeOK:
		return "context tokens out of range"
	case !ex.Constraints.QnaPairsCountOK:
		return "check pair count"
	default:
		return "OK"
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func triState(v *bool) string {
	if v == nil {
		return "n/a"
	}
	return yesNo(*v)
}

func cell(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}
