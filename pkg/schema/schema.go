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

package schema

import (
	"embed"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

//go:embed v3/*.json
var schemaFS embed.FS

// KnowledgeID identifies the bundled schema artifact that knowledge datasets
// are validated against.
const KnowledgeID = "v3/knowledge.json"

// knowledgeSegment is the path segment designating knowledge-type datasets.
const knowledgeSegment = "knowledge"

// Result is the outcome of schema conformance checking for one document.
// A nil ValidatedAgainst means the check was skipped because the document
// path does not designate a schema-checked kind; skipped is never conflated
// with passed.
type Result struct {
	ValidatedAgainst *string     `json:"validated_against" yaml:"validated_against"`
	Errors           []Violation `json:"errors" yaml:"errors"`
}

// Violation is one schema conformance failure. Message carries the schema
// engine's text verbatim; downstream consumers match on it, so it is never
// paraphrased or filtered.
type Violation struct {
	// Path is a JSON-pointer-like location of the violation, empty at root.
	Path    string `json:"path" yaml:"path"`
	Message string `json:"message" yaml:"message"`
}

// Checker validates documents against the bundled knowledge v3 schema. The
// schema is compiled once at construction; an unreadable or uncompilable
// artifact is a fatal SCHEMA_UNAVAILABLE error raised before any file is
// analyzed.
type Checker struct {
	schema *gojsonschema.Schema
	id     string
}

// NewChecker loads and compiles the bundled knowledge v3 schema.
func NewChecker() (*Checker, error) {
	merged, err := loadKnowledgeSchema()
	if err != nil {
		return nil, err
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(merged))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaUnavailable,
			"failed to compile bundled schema", err)
	}

	return &Checker{schema: compiled, id: KnowledgeID}, nil
}

// loadKnowledgeSchema reads the bundled schema and inlines its ./version.json
// reference. The version constraint lives in a sibling file so the store can
// version independently; inlining it avoids relative-reference resolution
// against an embedded filesystem.
func loadKnowledgeSchema() (map[string]any, error) {
	schema, err := readSchemaFile(KnowledgeID)
	if err != nil {
		return nil, err
	}

	ref, ok := schema["$ref"].(string)
	if !ok || ref != "./version.json" {
		return schema, nil
	}

	version, err := readSchemaFile("v3/version.json")
	if err != nil {
		return nil, err
	}

	delete(schema, "$ref")
	schema["required"] = mergeRequired(schema["required"], version["required"])
	if props, ok := version["properties"].(map[string]any); ok {
		merged, _ := schema["properties"].(map[string]any)
		if merged == nil {
			merged = make(map[string]any)
		}
		for k, v := range props {
			merged[k] = v
		}
		schema["properties"] = merged
	}
	return schema, nil
}

func readSchemaFile(name string) (map[string]any, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeSchemaUnavailable,
			"failed to read bundled schema artifact", err, map[string]any{"artifact": name})
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeSchemaUnavailable,
			"failed to decode bundled schema artifact", err, map[string]any{"artifact": name})
	}
	return m, nil
}

func mergeRequired(base, extra any) []any {
	var out []any
	seen := make(map[string]bool)
	for _, list := range []any{base, extra} {
		items, ok := list.([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, item)
		}
	}
	return out
}

// Applies reports whether the document path designates a knowledge-type
// dataset, i.e. whether any path segment equals "knowledge".
func Applies(pathHint string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(pathHint), "/") {
		if segment == knowledgeSegment {
			return true
		}
	}
	return false
}

// Validate checks content against the bundled schema when pathHint designates
// a knowledge dataset. For other paths it returns a skipped Result. Violations
// are per-file findings, never errors: conformance failures of the input are
// data problems, not infrastructure problems.
func (c *Checker) Validate(content any, pathHint string) Result {
	if !Applies(pathHint) {
		return Result{Errors: []Violation{}}
	}

	id := c.id
	res := Result{ValidatedAgainst: &id, Errors: []Violation{}}

	outcome, err := c.schema.Validate(gojsonschema.NewGoLoader(content))
	if err != nil {
		// The engine rejects documents it cannot even traverse (e.g. a
		// scalar root); report that as a root-level violation.
		res.Errors = append(res.Errors, Violation{Path: "", Message: err.Error()})
		return res
	}

	for _, desc := range outcome.Errors() {
		res.Errors = append(res.Errors, Violation{
			Path:    pointerPath(desc.Field()),
			Message: desc.Description(),
		})
	}
	return res
}

// pointerPath converts the engine's dotted field notation to a
// JSON-pointer-like path ("seed_examples.0.context" -> "/seed_examples/0/context").
func pointerPath(field string) string {
	if field == "" || field == "(root)" {
		return ""
	}
	return "/" + strings.ReplaceAll(field, ".", "/")
}
