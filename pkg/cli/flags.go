/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/qna-analyzer/pkg/analyzer"
	"github.com/NVIDIA/qna-analyzer/pkg/schema"
	"github.com/NVIDIA/qna-analyzer/pkg/serializer"
	"github.com/NVIDIA/qna-analyzer/pkg/thresholds"
	"github.com/NVIDIA/qna-analyzer/pkg/tokenizer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write output to the given file instead of stdout",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Usage:   "Structured output format: json, yaml, or table",
		Value:   "json",
		Sources: cli.EnvVars("QNACTL_FORMAT"),
	}

	aiFlag = &cli.BoolFlag{
		Name:  "ai",
		Usage: "Emit the full machine-readable report instead of the human tables",
	}

	sourceDocFlag = &cli.StringFlag{
		Name:  "source-doc",
		Usage: "Path to the source document text used to verify context provenance",
	}

	yamlLintFlag = &cli.BoolFlag{
		Name:  "yaml-lint",
		Usage: "Enable YAML format lint (trailing spaces, final newline, tabs, CRLF, duplicate keys)",
	}

	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "Path to a JSON file with threshold overrides",
		Sources: cli.EnvVars("QNACTL_CONFIG"),
	}

	tokenizerFlag = &cli.StringFlag{
		Name:    "tokenizer",
		Usage:   "Token counting strategy: tiktoken or heuristic",
		Value:   string(tokenizer.StrategyTiktoken),
		Sources: cli.EnvVars("QNACTL_TOKENIZER"),
	}

	encodingFlag = &cli.StringFlag{
		Name:  "encoding",
		Usage: "BPE encoding name for the tiktoken strategy",
		Value: tokenizer.DefaultEncoding,
	}

	contextRangeFlag = &cli.StringFlag{
		Name:  "context-range",
		Usage: "Context token range as min,max",
	}

	pairRangeFlag = &cli.StringFlag{
		Name:  "pair-range",
		Usage: "Question plus answer token total range as min,max",
	}

	examplesRangeFlag = &cli.StringFlag{
		Name:  "examples-range",
		Usage: "Seed example count range as min,max",
	}

	sectionMaxFlag = &cli.StringFlag{
		Name:  "section-max",
		Usage: "Maximum total tokens per seed example",
	}

	lineMatchMinLengthFlag = &cli.StringFlag{
		Name:  "line-match-min-length",
		Usage: "Minimum line length considered by the source matching fallback",
	}

	lineMatchFractionMinFlag = &cli.StringFlag{
		Name:  "line-match-fraction-min",
		Usage: "Minimum fraction of context lines that must appear in the source",
	}
)

// thresholdFlags are the flags every analyzing command shares.
var thresholdFlags = []cli.Flag{
	configFlag,
	contextRangeFlag,
	pairRangeFlag,
	examplesRangeFlag,
	sectionMaxFlag,
	lineMatchMinLengthFlag,
	lineMatchFractionMinFlag,
	tokenizerFlag,
	encodingFlag,
}

// parseRange parses a "min,max" flag value.
func parseRange(value string) (minValue, maxValue int, err error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected min,max but got %q", value)
	}
	minValue, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid min in %q: %w", value, err)
	}
	maxValue, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid max in %q: %w", value, err)
	}
	return minValue, maxValue, nil
}

// cliOverrides collects the threshold overrides present on the command line.
func cliOverrides(cmd *cli.Command) (*thresholds.Overrides, error) {
	o := &thresholds.Overrides{}

	ranges := []struct {
		flag     string
		min, max **int
	}{
		{contextRangeFlag.Name, &o.ContextMin, &o.ContextMax},
		{pairRangeFlag.Name, &o.PairMin, &o.PairMax},
		{examplesRangeFlag.Name, &o.ExamplesMin, &o.ExamplesMax},
	}
	for _, r := range ranges {
		if !cmd.IsSet(r.flag) {
			continue
		}
		lo, hi, err := parseRange(cmd.String(r.flag))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", r.flag, err)
		}
		*r.min, *r.max = &lo, &hi
	}

	if cmd.IsSet(sectionMaxFlag.Name) {
		v, err := strconv.Atoi(strings.TrimSpace(cmd.String(sectionMaxFlag.Name)))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", sectionMaxFlag.Name, err)
		}
		o.SectionMax = &v
	}
	if cmd.IsSet(lineMatchMinLengthFlag.Name) {
		v, err := strconv.Atoi(strings.TrimSpace(cmd.String(lineMatchMinLengthFlag.Name)))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", lineMatchMinLengthFlag.Name, err)
		}
		o.LineMatchMinLength = &v
	}
	if cmd.IsSet(lineMatchFractionMinFlag.Name) {
		v, err := strconv.ParseFloat(strings.TrimSpace(cmd.String(lineMatchFractionMinFlag.Name)), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", lineMatchFractionMinFlag.Name, err)
		}
		o.LineMatchFractionMin = &v
	}

	return o, nil
}

// buildAnalyzer assembles the full pipeline from the command flags. Every
// failure here is a fatal configuration error, raised before any file is
// touched.
func buildAnalyzer(cmd *cli.Command) (*analyzer.Analyzer, error) {
	var fileOverrides *thresholds.Overrides
	if path := cmd.String(configFlag.Name); path != "" {
		var err error
		fileOverrides, err = thresholds.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	overrides, err := cliOverrides(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := thresholds.Build(fileOverrides, overrides)
	if err != nil {
		return nil, err
	}

	counter, err := tokenizer.New(
		tokenizer.Strategy(cmd.String(tokenizerFlag.Name)),
		cmd.String(encodingFlag.Name))
	if err != nil {
		return nil, err
	}

	checker, err := schema.NewChecker()
	if err != nil {
		return nil, err
	}

	return analyzer.New(counter, checker, cfg, version), nil
}

// readSourceDoc loads the optional source document. A nil result means no
// source was supplied, which keeps context_in_source in its not-evaluated
// state.
func readSourceDoc(cmd *cli.Command) (*string, error) {
	path := cmd.String(sourceDocFlag.Name)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document %q: %w", path, err)
	}
	text := string(data)
	return &text, nil
}

// openOutput resolves the --output flag to a writer. The returned closer is a
// no-op for stdout.
func openOutput(cmd *cli.Command) (io.Writer, func(), error) {
	path := strings.TrimSpace(cmd.String(outputFlag.Name))
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// emit writes the report data either as structured output or through the
// human renderer, depending on --ai.
func emit(cmd *cli.Command, data any, human func(io.Writer) error) error {
	if cmd.Bool(aiFlag.Name) {
		format := serializer.Format(cmd.String(formatFlag.Name))
		if format.IsUnknown() {
			return fmt.Errorf("unknown output format: %q", format)
		}
		return serializer.NewFileWriterOrStdout(format, cmd.String(outputFlag.Name)).Serialize(data)
	}

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()
	return human(out)
}
