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

package qna

// IssueCode classifies a structural defect found while projecting a generic
// document into the typed model.
type IssueCode string

const (
	IssueNotMapping              IssueCode = "not_mapping"
	IssueMissingSeedExamples     IssueCode = "missing_seed_examples"
	IssueSeedExamplesNotList     IssueCode = "seed_examples_not_list"
	IssueMissingContext          IssueCode = "missing_context"
	IssueMissingPairs            IssueCode = "missing_pairs"
	IssuePairsNotList            IssueCode = "pairs_not_list"
	IssueMissingQuestionOrAnswer IssueCode = "missing_question_or_answer"
)

// Issue is one structural defect with its location. Example and Pair are
// 1-based; zero means the issue is not scoped to that level.
type Issue struct {
	Code    IssueCode
	Example int
	Pair    int
}

// Project converts a generically decoded YAML value into a Document,
// tolerating structural defects instead of failing. Every defect is recorded
// as an Issue so the caller can report it; affected elements are kept in
// place (with zero values) so positions stay aligned with the source file.
// A non-mapping root is the only unrecoverable shape: it yields a nil
// Document and a single IssueNotMapping.
func Project(content any) (*Document, []Issue) {
	root, ok := content.(map[string]any)
	if !ok {
		return nil, []Issue{{Code: IssueNotMapping}}
	}

	doc := &Document{}
	issues := []Issue{}

	if v, ok := root["version"].(int); ok {
		doc.Version = v
	}
	doc.CreatedBy, _ = root["created_by"].(string)
	doc.Domain, _ = root["domain"].(string)
	doc.DocumentOutline, _ = root["document_outline"].(string)

	if ref, ok := root["document"].(map[string]any); ok {
		doc.Document = &SourceRef{}
		doc.Document.Repo, _ = ref["repo"].(string)
		doc.Document.Commit, _ = ref["commit"].(string)
		if patterns, ok := ref["patterns"].([]any); ok {
			for _, p := range patterns {
				if s, ok := p.(string); ok {
					doc.Document.Patterns = append(doc.Document.Patterns, s)
				}
			}
		}
	}

	rawExamples, present := root["seed_examples"]
	if !present {
		issues = append(issues, Issue{Code: IssueMissingSeedExamples})
		return doc, issues
	}
	examples, ok := rawExamples.([]any)
	if !ok {
		issues = append(issues, Issue{Code: IssueSeedExamplesNotList})
		return doc, issues
	}

	doc.SeedExamples = make([]Example, 0, len(examples))
	for i, rawExample := range examples {
		n := i + 1
		var ex Example

		fields, ok := rawExample.(map[string]any)
		if !ok {
			issues = append(issues, Issue{Code: IssueMissingContext, Example: n})
			doc.SeedExamples = append(doc.SeedExamples, ex)
			continue
		}

		ex.Context, ok = fields["context"].(string)
		if !ok {
			issues = append(issues, Issue{Code: IssueMissingContext, Example: n})
		}

		rawPairs, present := fields["questions_and_answers"]
		if !present {
			issues = append(issues, Issue{Code: IssueMissingPairs, Example: n})
			doc.SeedExamples = append(doc.SeedExamples, ex)
			continue
		}
		pairs, ok := rawPairs.([]any)
		if !ok {
			issues = append(issues, Issue{Code: IssuePairsNotList, Example: n})
			doc.SeedExamples = append(doc.SeedExamples, ex)
			continue
		}

		ex.QuestionsAndAnswers = make([]Pair, 0, len(pairs))
		for j, rawPair := range pairs {
			var p Pair
			pf, ok := rawPair.(map[string]any)
			if ok {
				var qOK, aOK bool
				p.Question, qOK = pf["question"].(string)
				p.Answer, aOK = pf["answer"].(string)
				ok = qOK && aOK
			}
			if !ok {
				issues = append(issues, Issue{
					Code: IssueMissingQuestionOrAnswer, Example: n, Pair: j + 1,
				})
			}
			ex.QuestionsAndAnswers = append(ex.QuestionsAndAnswers, p)
		}
		doc.SeedExamples = append(doc.SeedExamples, ex)
	}

	return doc, issues
}
