// Package cli implements the command-line interface for the qnactl dataset
// analyzer.
//
// # Commands
//
// analyze - Analyze a single Q&A YAML file:
//
//	qnactl analyze --file qna.yaml [--source-doc paper.md] [--yaml-lint] [--ai]
//
// Runs the full validation pipeline over one file: token budgets, text
// containment, schema conformance for knowledge paths, and optional lint.
//
// crawl - Analyze every dataset file under a directory tree:
//
//	qnactl crawl --taxonomy-root ./taxonomy [--ai] [--yaml-lint]
//
// Discovers qna.yaml files (or any YAML file with the deprecated --data-dir
// mode), analyzes them in parallel, and reports them in sorted path order.
//
// # Threshold Flags
//
//	--config FILE                JSON file with threshold overrides
//	--context-range min,max      Advisory context token window (default 300,500)
//	--pair-range min,max         Advisory pair token window (default 200,300)
//	--examples-range min,max     Recommended example count (default 5,15)
//	--section-max N              Hard per-example token ceiling (default 750)
//	--line-match-min-length N    Source matching line filter (default 30)
//	--line-match-fraction-min F  Source matching fraction (default 0.85)
//
// Precedence is CLI flag > config file > built-in default, field by field.
//
// # Output
//
// Default output is a human-readable set of tables. With --ai the full
// Analysis Report is emitted as JSON (or YAML/table via --format) for
// consumption by driving agents; the report alone determines pass or fail,
// no message parsing required.
//
// # Exit Codes
//
//	0  All analyzed files passed
//	1  Any file failed, or a fatal configuration error occurred
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/qna-analyzer/pkg/cli.version=1.0.0'"
package cli
