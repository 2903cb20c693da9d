package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/markdown"
	"github.com/nikolay-ai/hackevent/internal/report"
)

// Exit codes for the hackprep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or input
	ExitIO       = 3 // No report, missing asset, file errors
	ExitUpstream = 4 // News generation service errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	if errors.Is(err, report.ErrUpstream) {
		return ExitUpstream
	}

	if errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrMissingAssets) {
		return ExitIO
	}

	if errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, markdown.ErrUnknownRenderer) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
