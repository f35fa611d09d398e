// Package logging provides structured logging utilities shared by the
// analyzer components.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, environment-based level configuration (LOG_LEVEL),
// module/version context on every record, and source location tracking for
// debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("qnactl", version, level)
//
//	    slog.Info("analyzing file", "path", path)
//	    slog.Debug("tokenizer selected", "strategy", strategy)
//	}
//
// The CLI resolves the level from --log-level or the LOG_LEVEL environment
// variable:
//
//	LOG_LEVEL=debug qnactl analyze --file qna.yaml
//
// An empty or unknown level defaults to INFO. Levels are parsed
// case-insensitively; WARNING is accepted as an alias for WARN.
//
// All diagnostics go to stderr so that structured report output on stdout
// stays machine-parseable.
package logging
