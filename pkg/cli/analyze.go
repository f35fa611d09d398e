/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/qna-analyzer/pkg/serializer"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Analyze a single Q&A YAML file",
		Description: `Analyze one qna.yaml file: token budgets per seed example and pair,
text containment of questions and answers in their context, optional
provenance of the context in a source document, JSON Schema conformance
for files under a knowledge path, and optional format lint.

Only three conditions fail the file: a YAML parse error, a schema
violation, and a seed example whose section token total exceeds the
configured ceiling. Everything else is advisory.

# Examples

Analyze a file with the default thresholds:
  qnactl analyze --file taxonomy/knowledge/science/qna.yaml

Verify contexts against the source document:
  qnactl analyze -f qna.yaml --source-doc paper.md

Machine-readable output with lint enabled:
  qnactl analyze -f qna.yaml --ai --yaml-lint

Override the advisory context window:
  qnactl analyze -f qna.yaml --context-range 200,600`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Path to the Q&A YAML file to analyze",
			},
			sourceDocFlag,
			yamlLintFlag,
			aiFlag,
			outputFlag,
			formatFlag,
		}, thresholdFlags...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			a, err := buildAnalyzer(cmd)
			if err != nil {
				return err
			}

			sourceDoc, err := readSourceDoc(cmd)
			if err != nil {
				return err
			}

			file := cmd.String("file")
			slog.Info("analyzing", "file", file)

			report := a.AnalyzeFile(file, sourceDoc, cmd.Bool(yamlLintFlag.Name))

			if err := emit(cmd, report, func(out io.Writer) error {
				return serializer.RenderHuman(out, report)
			}); err != nil {
				return err
			}

			if !report.OK {
				return fmt.Errorf("analysis found %d error(s) in %s", len(report.Errors), file)
			}
			return nil
		},
	}
}
