package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/domain"
	"github.com/nikolay-ai/hackevent/internal/markdown"
	"github.com/nikolay-ai/hackevent/internal/report"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"help requested", flag.ErrHelp, ExitSuccess},

		{"upstream", report.ErrUpstream, ExitUpstream},
		{"wrapped upstream", fmt.Errorf("generate: %w", report.ErrUpstream), ExitUpstream},

		{"no reports", report.ErrNoReports, ExitIO},
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"missing assets", ErrMissingAssets, ExitIO},

		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"generator config", report.ErrGeneratorConfig, ExitUsage},
		{"invalid input", domain.ErrInvalidInput, ExitUsage},
		{"unknown renderer", markdown.ErrUnknownRenderer, ExitUsage},
		{"usage", ErrUsage, ExitUsage},

		{"unknown error", errors.New("something unexpected"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Fatalf("exit codes must follow Unix conventions, got %d/%d/%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitUpstream} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell reserved codes", code)
		}
	}
}
