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

// Document is the parsed top-level object of a qna.yaml file. It is
// constructed once per file load, immutable thereafter, and discarded after
// one pipeline run.
type Document struct {
	// Version is the dataset schema version. Knowledge datasets must be 3.
	Version int `json:"version" yaml:"version"`

	// CreatedBy identifies the dataset author.
	CreatedBy string `json:"created_by" yaml:"created_by"`

	// Domain is the knowledge domain the dataset covers.
	Domain string `json:"domain" yaml:"domain"`

	// DocumentOutline summarizes the source document.
	DocumentOutline string `json:"document_outline" yaml:"document_outline"`

	// Document references the source material the contexts were taken from.
	Document *SourceRef `json:"document,omitempty" yaml:"document,omitempty"`

	// SeedExamples is the ordered list of seed examples.
	SeedExamples []Example `json:"seed_examples" yaml:"seed_examples"`
}

// SourceRef points at the repository holding the source documents.
type SourceRef struct {
	Repo   string `json:"repo" yaml:"repo"`
	Commit string `json:"commit" yaml:"commit"`

	// Patterns is a list of path globs selecting source files in the repo.
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Example is one seed example: a ground-truth context excerpt with its
// question/answer pairs. The list may legally hold more than three pairs, but
// only the first three are evaluated; the remainder are reported as ignored,
// never silently dropped.
type Example struct {
	Context             string `json:"context" yaml:"context"`
	QuestionsAndAnswers []Pair `json:"questions_and_answers" yaml:"questions_and_answers"`
}

// Pair is one question/answer pair. It has no identity beyond its position
// within its Example.
type Pair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}
