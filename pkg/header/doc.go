// Package header defines the common resource header embedded in analyzer
// outputs. It follows Kubernetes-style conventions (kind, apiVersion,
// metadata) so reports remain self-describing when written to files or piped
// between tools.
package header
