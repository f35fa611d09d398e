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

package thresholds

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

// MaxEvaluatedPairs is the fixed number of question/answer pairs evaluated per
// seed example. Pairs beyond this index are reported as ignored. This limit is
// intentionally not configurable.
const MaxEvaluatedPairs = 3

// Default threshold values. These must stay stable across releases because
// downstream submission gates are calibrated against them.
const (
	DefaultContextMin           = 300
	DefaultContextMax           = 500
	DefaultPairMin              = 200
	DefaultPairMax              = 300
	DefaultSectionMax           = 750
	DefaultExamplesMin          = 5
	DefaultExamplesMax          = 15
	DefaultLineMatchMinLength   = 30
	DefaultLineMatchFractionMin = 0.85
)

// Config holds all tunable numeric ranges used by the validation pipeline.
// Instances are immutable after Build; the pipeline only reads them.
type Config struct {
	// ContextMin and ContextMax bound the advisory context token window.
	ContextMin int `json:"context_min" yaml:"context_min"`
	ContextMax int `json:"context_max" yaml:"context_max"`

	// PairMin and PairMax bound the advisory question+answer token window.
	PairMin int `json:"pair_min" yaml:"pair_min"`
	PairMax int `json:"pair_max" yaml:"pair_max"`

	// SectionMax is the hard ceiling on context plus evaluated pair tokens.
	// Exceeding it is an error, not a warning.
	SectionMax int `json:"section_max" yaml:"section_max"`

	// ExamplesMin and ExamplesMax bound the recommended seed example count.
	ExamplesMin int `json:"examples_min" yaml:"examples_min"`
	ExamplesMax int `json:"examples_max" yaml:"examples_max"`

	// LineMatchMinLength is the minimum trimmed line length considered a
	// reliable signal by the line-fraction containment fallback.
	LineMatchMinLength int `json:"line_match_min_length" yaml:"line_match_min_length"`

	// LineMatchFractionMin is the fraction of surviving lines that must match
	// for the fallback to report containment.
	LineMatchFractionMin float64 `json:"line_match_fraction_min" yaml:"line_match_fraction_min"`
}

// Default returns the built-in threshold configuration.
func Default() Config {
	return Config{
		ContextMin:           DefaultContextMin,
		ContextMax:           DefaultContextMax,
		PairMin:              DefaultPairMin,
		PairMax:              DefaultPairMax,
		SectionMax:           DefaultSectionMax,
		ExamplesMin:          DefaultExamplesMin,
		ExamplesMax:          DefaultExamplesMax,
		LineMatchMinLength:   DefaultLineMatchMinLength,
		LineMatchFractionMin: DefaultLineMatchFractionMin,
	}
}

// Overrides is a partial threshold configuration. Nil fields leave the base
// value untouched, so file and CLI layers can each override any subset.
type Overrides struct {
	ContextMin           *int     `json:"context_min"`
	ContextMax           *int     `json:"context_max"`
	PairMin              *int     `json:"pair_min"`
	PairMax              *int     `json:"pair_max"`
	SectionMax           *int     `json:"section_max"`
	ExamplesMin          *int     `json:"examples_min"`
	ExamplesMax          *int     `json:"examples_max"`
	LineMatchMinLength   *int     `json:"line_match_min_length"`
	LineMatchFractionMin *float64 `json:"line_match_fraction_min"`
}

func (o *Overrides) apply(c *Config) {
	if o == nil {
		return
	}
	if o.ContextMin != nil {
		c.ContextMin = *o.ContextMin
	}
	if o.ContextMax != nil {
		c.ContextMax = *o.ContextMax
	}
	if o.PairMin != nil {
		c.PairMin = *o.PairMin
	}
	if o.PairMax != nil {
		c.PairMax = *o.PairMax
	}
	if o.SectionMax != nil {
		c.SectionMax = *o.SectionMax
	}
	if o.ExamplesMin != nil {
		c.ExamplesMin = *o.ExamplesMin
	}
	if o.ExamplesMax != nil {
		c.ExamplesMax = *o.ExamplesMax
	}
	if o.LineMatchMinLength != nil {
		c.LineMatchMinLength = *o.LineMatchMinLength
	}
	if o.LineMatchFractionMin != nil {
		c.LineMatchFractionMin = *o.LineMatchFractionMin
	}
}

// LoadFile reads a JSON threshold override file. Unknown fields are rejected
// so typos fail loudly instead of silently keeping defaults.
func LoadFile(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, "threshold config file not found", err)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, "failed to read threshold config file", err)
	}

	var o Overrides
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&o); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidConfig,
			"failed to decode threshold config file", err, map[string]any{"path": path})
	}
	return &o, nil
}

// Build merges built-in defaults with optional file and CLI overrides.
// Precedence is CLI > file > defaults, field by field. The merged result is
// validated; any violation is a fatal configuration error raised before a
// single file is analyzed.
func Build(file, cli *Overrides) (Config, error) {
	c := Default()
	file.apply(&c)
	cli.apply(&c)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks range sanity: all bounds non-negative, every min <= max, and
// the line-match fraction within [0, 1].
func (c Config) Validate() error {
	ranges := []struct {
		name     string
		min, max int
	}{
		{"context", c.ContextMin, c.ContextMax},
		{"pair", c.PairMin, c.PairMax},
		{"examples", c.ExamplesMin, c.ExamplesMax},
	}
	for _, r := range ranges {
		if r.min < 0 || r.max < 0 {
			return errors.NewWithContext(errors.ErrCodeInvalidConfig,
				"threshold bounds cannot be negative",
				map[string]any{"range": r.name, "min": r.min, "max": r.max})
		}
		if r.min > r.max {
			return errors.NewWithContext(errors.ErrCodeInvalidConfig,
				"threshold range min exceeds max",
				map[string]any{"range": r.name, "min": r.min, "max": r.max})
		}
	}

	if c.SectionMax < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"section ceiling cannot be negative", map[string]any{"section_max": c.SectionMax})
	}
	if c.LineMatchMinLength < 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"line match minimum length cannot be negative",
			map[string]any{"line_match_min_length": c.LineMatchMinLength})
	}
	if c.LineMatchFractionMin < 0 || c.LineMatchFractionMin > 1 {
		return errors.NewWithContext(errors.ErrCodeInvalidConfig,
			"line match fraction must be within [0, 1]",
			map[string]any{"line_match_fraction_min": c.LineMatchFractionMin})
	}
	return nil
}
