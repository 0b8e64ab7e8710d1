package errors

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	default:
		return 1
	}
}

// FormatError formats an error for display on stderr.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if classified.Category() == CategoryInternal && !a.verbose {
		return "Internal error occurred (use -v for details)"
	}

	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(classified.Message())
	if details := formatContext(classified.Context()); details != "" {
		b.WriteString(" (")
		b.WriteString(details)
		b.WriteString(")")
	}
	if a.verbose && classified.Cause() != nil {
		fmt.Fprintf(&b, ": %v", classified.Cause())
	}
	return b.String()
}

// Report logs err at a level derived from its severity and returns the exit code.
func (a *CLIErrorAdapter) Report(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return a.ExitCodeFor(err)
	}

	attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
	for _, key := range sortedKeys(classified.Context()) {
		attrs = append(attrs, slog.Any(key, classified.Context()[key]))
	}
	if a.verbose && classified.Cause() != nil {
		attrs = append(attrs, slog.String("cause", classified.Cause().Error()))
	}
	a.logger.LogAttrs(context.Background(), levelFor(classified.Severity()), classified.Message(), attrs...)
	return a.ExitCodeFor(err)
}

func levelFor(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func formatContext(ctx ErrorContext) string {
	keys := sortedKeys(ctx)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(ctx ErrorContext) []string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
