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

	"github.com/NVIDIA/qna-analyzer/pkg/analyzer"
	"github.com/NVIDIA/qna-analyzer/pkg/crawler"
	"github.com/NVIDIA/qna-analyzer/pkg/serializer"
)

func crawlCmd() *cli.Command {
	return &cli.Command{
		Name:                  "crawl",
		EnableShellCompletion: true,
		Usage:                 "Analyze every dataset file under a directory tree",
		Description: `Walk a directory tree and analyze each dataset file independently and
in parallel. Reports are always emitted in sorted path order, so two
crawls over the same tree produce identical output.

With --taxonomy-root, only files named exactly "qna.yaml" are analyzed.
With --data-dir (deprecated), every *.yaml and *.yml file is analyzed.

# Examples

Analyze a taxonomy tree:
  qnactl crawl --taxonomy-root ./taxonomy

Machine-readable report list for all files:
  qnactl crawl -t ./taxonomy --ai --format json

Older flat layouts with arbitrary YAML names:
  qnactl crawl --data-dir ./datasets`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "taxonomy-root",
				Aliases: []string{"t"},
				Usage:   "Root of a taxonomy tree; analyzes qna.yaml files recursively",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "[Deprecated] Directory of YAML Q&A files; prefer --taxonomy-root",
			},
			sourceDocFlag,
			yamlLintFlag,
			aiFlag,
			outputFlag,
			formatFlag,
		}, thresholdFlags...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			taxonomyRoot := cmd.String("taxonomy-root")
			dataDir := cmd.String("data-dir")
			if (taxonomyRoot == "") == (dataDir == "") {
				return fmt.Errorf("exactly one of --taxonomy-root or --data-dir is required")
			}

			a, err := buildAnalyzer(cmd)
			if err != nil {
				return err
			}

			sourceDoc, err := readSourceDoc(cmd)
			if err != nil {
				return err
			}

			var paths []string
			if taxonomyRoot != "" {
				paths, err = crawler.FindDatasetFiles(taxonomyRoot)
			} else {
				slog.Warn("--data-dir is deprecated, prefer --taxonomy-root")
				paths, err = crawler.FindYAMLFiles(dataDir)
			}
			if err != nil {
				return err
			}

			slog.Info("crawling", "files", len(paths))

			list := analyzer.NewReportList(version)
			list.Reports, err = crawler.Crawl(ctx, a, paths, sourceDoc, cmd.Bool(yamlLintFlag.Name))
			if err != nil {
				return err
			}

			if err := emit(cmd, list, func(out io.Writer) error {
				return serializer.RenderHumanList(out, list)
			}); err != nil {
				return err
			}

			if !list.OK() {
				failed := 0
				for _, r := range list.Reports {
					if !r.OK {
						failed++
					}
				}
				return fmt.Errorf("analysis found errors in %d of %d file(s)", failed, len(list.Reports))
			}
			return nil
		},
	}
}
