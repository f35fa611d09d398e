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

package crawler

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/qna-analyzer/pkg/analyzer"
	"github.com/NVIDIA/qna-analyzer/pkg/errors"
)

// datasetFileName is the only file name analyzed in a taxonomy crawl.
const datasetFileName = "qna.yaml"

// FindDatasetFiles walks root and returns every file named exactly
// "qna.yaml", sorted by path.
func FindDatasetFiles(root string) ([]string, error) {
	return find(root, func(name string) bool {
		return name == datasetFileName
	})
}

// FindYAMLFiles walks root and returns every *.yaml and *.yml file, sorted by
// path. This is the older data-dir discovery mode, kept for datasets that
// predate the taxonomy layout.
func FindYAMLFiles(root string) ([]string, error) {
	return find(root, func(name string) bool {
		lower := strings.ToLower(name)
		return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
	})
}

func find(root string, want func(name string) bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			"directory not found", map[string]any{"path": root})
	}

	paths := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && want(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to walk directory", err)
	}

	sort.Strings(paths)
	return paths, nil
}

// Crawl analyzes every path concurrently and returns the reports in the same
// order as paths, regardless of completion order. Each file's analysis is
// independent and read-only, so the only coordination is the indexed result
// slot each goroutine writes.
func Crawl(ctx context.Context, a *analyzer.Analyzer, paths []string, sourceDoc *string, lintEnabled bool) ([]*analyzer.Report, error) {
	reports := make([]*analyzer.Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slog.Debug("crawling", "file", path)
			reports[i] = a.AnalyzeFile(path, sourceDoc, lintEnabled)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "crawl interrupted", err)
	}
	return reports, nil
}
