package invitation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/markdown"
	"github.com/nikolay-ai/hackevent/internal/report"
)

// DefaultOutput is where the invitation page is written.
const DefaultOutput = "hack_event_invitation.html"

// BuildObserver is notified of every build outcome.
type BuildObserver interface {
	ObserveBuild(ok bool, elapsed time.Duration)
}

// Builder runs the pipeline: latest report, markdown render, compose, write.
type Builder struct {
	ReportsDir string
	Pattern    string
	Output     string
	Renderer   markdown.Renderer
	Composer   *Composer
	Observer   BuildObserver
	Now        func() time.Time
}

// Result describes a completed build.
type Result struct {
	Report string
	Output string
	Bytes  int
}

// Build produces the invitation page. The output file is replaced
// atomically so a concurrently served page is never half written.
func (b *Builder) Build(ctx context.Context) (res *Result, err error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	start := time.Now()
	defer func() {
		if b.Observer != nil {
			b.Observer.ObserveBuild(err == nil, time.Since(start))
		}
	}()

	rep, err := report.LoadLatest(b.ReportsDir, b.Pattern)
	if err != nil {
		return nil, err
	}
	slog.Info("using news report", "path", rep.Name)

	renderer := b.Renderer
	if renderer == nil {
		renderer = &markdown.Subset{}
	}
	fragment, err := renderer.Render(ctx, rep.Content)
	if err != nil {
		return nil, fmt.Errorf("render report %s: %w", rep.Name, err)
	}

	composer := b.Composer
	if composer == nil {
		composer = NewComposer(config.DefaultEvent())
	}
	page := composer.Compose(fragment, now())

	output := b.Output
	if output == "" {
		output = DefaultOutput
	}
	if err := writeAtomic(output, []byte(page)); err != nil {
		return nil, err
	}
	slog.Info("invitation written", "path", output, "bytes", len(page))

	return &Result{Report: rep.Name, Output: output, Bytes: len(page)}, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write invitation: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close invitation: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod invitation: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace invitation: %w", err)
	}
	return nil
}
