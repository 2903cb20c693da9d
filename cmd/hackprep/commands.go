package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/invitation"
	"github.com/nikolay-ai/hackevent/internal/markdown"
	"github.com/nikolay-ai/hackevent/internal/report"
	"github.com/nikolay-ai/hackevent/internal/service"
)

var (
	// ErrUsage indicates bad command-line usage.
	ErrUsage = errors.New("usage error")
	// ErrMissingAssets indicates files the page links to are absent.
	ErrMissingAssets = errors.New("missing required assets")
)

func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

func fmtUsage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

func noPositional(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmtUsage("unexpected argument %q", fs.Arg(0))
	}
	return nil
}

// newGenerator builds a report generator from the environment and flags.
func newGenerator(cfg config.Generator, model string, deps *Dependencies) (*report.Generator, error) {
	if model == "" {
		model = cfg.Model
	}
	return report.NewGenerator(report.GeneratorConfig{
		APIKey:     cfg.APIKey,
		Model:      model,
		BaseURL:    cfg.BaseURL,
		OutputDir:  cfg.ReportsDir,
		HTTPClient: deps.HTTPClient,
		Now:        deps.Now,
	})
}

// runNews generates one report and returns the path written.
func runNews(ctx context.Context, cfg config.Generator, f newsFlags, deps *Dependencies) (string, error) {
	if f.days <= 0 {
		return "", fmtUsage("--days must be positive, got %d", f.days)
	}
	gen, err := newGenerator(cfg, f.model, deps)
	if err != nil {
		return "", err
	}

	content, err := gen.Generate(ctx, f.days)
	if err != nil {
		return "", err
	}
	path, err := gen.Save(content, f.output)
	if err != nil {
		return "", err
	}
	slog.Info("news report saved", "path", path, "model", gen.Model())
	fmt.Fprintln(deps.Stdout, path)
	return path, nil
}

// loadBuild resolves the builder and event settings for build and run.
func loadBuild(cfg config.Generator, f buildFlags, deps *Dependencies) (*invitation.Builder, config.Event, error) {
	eventPath := f.event
	if eventPath == "" {
		eventPath = cfg.EventConfig
	}
	ev, err := config.LoadEvent(eventPath)
	if err != nil {
		return nil, config.Event{}, err
	}

	renderer, err := markdown.NewRenderer(f.renderer, markdown.Options{BannerTitle: ev.BannerTitle})
	if err != nil {
		return nil, config.Event{}, err
	}

	reports := f.reports
	if reports == "" {
		reports = cfg.ReportsDir
	}
	output := f.output
	if output == "" {
		output = cfg.InvitationPath
	}

	return &invitation.Builder{
		ReportsDir: reports,
		Pattern:    report.DefaultPattern,
		Output:     output,
		Renderer:   renderer,
		Composer:   invitation.NewComposer(ev),
		Observer:   logObserver{},
		Now:        deps.Now,
	}, ev, nil
}

func runBuild(ctx context.Context, cfg config.Generator, f buildFlags, deps *Dependencies) (*invitation.Result, error) {
	b, _, err := loadBuild(cfg, f, deps)
	if err != nil {
		return nil, err
	}
	res, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(deps.Stdout, res.Output)
	return res, nil
}

// logObserver reports build outcomes in the command log.
type logObserver struct{}

func (logObserver) ObserveBuild(ok bool, elapsed time.Duration) {
	slog.Debug("invitation build finished", "ok", ok, "elapsed", elapsed)
}

// runAll generates news, builds the page and opens it. Assets the page
// links to are checked first so nothing is spent on a page that cannot show.
func runAll(ctx context.Context, cfg config.Generator, f runCmdFlags, deps *Dependencies) error {
	b, ev, err := loadBuild(cfg, f.build, deps)
	if err != nil {
		return err
	}
	if err := checkAssets(ev); err != nil {
		return err
	}

	slog.Info("step 1/3: generating news")
	if _, err := runNews(ctx, cfg, f.news, deps); err != nil {
		return err
	}

	slog.Info("step 2/3: building invitation")
	res, err := b.Build(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, res.Output)

	if f.noBrowser {
		return nil
	}
	slog.Info("step 3/3: opening invitation")
	abs, err := filepath.Abs(res.Output)
	if err != nil {
		abs = res.Output
	}
	if err := deps.OpenBrowser("file://" + filepath.ToSlash(abs)); err != nil {
		slog.Warn("could not open browser; open the file manually", "path", abs, "error", err)
	}
	return nil
}

// checkAssets verifies the files the page references exist.
func checkAssets(ev config.Event) error {
	var missing []string
	for _, p := range []string{ev.LogoPath, ev.VideoPath} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingAssets, strings.Join(missing, ", "))
	}
	return nil
}

func runModels(ctx context.Context, cfg config.Generator, deps *Dependencies) error {
	gen, err := newGenerator(cfg, "", deps)
	if err != nil {
		return err
	}
	models, err := gen.ListModels(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		if m.Name != "" && m.Name != m.ID {
			fmt.Fprintf(deps.Stdout, "%s\t%s\n", m.ID, m.Name)
			continue
		}
		fmt.Fprintln(deps.Stdout, m.ID)
	}
	return nil
}

// runHashPassword reads one line from stdin and prints its bcrypt hash.
func runHashPassword(f hashCmdFlags, deps *Dependencies) error {
	line, err := bufio.NewReader(deps.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return fmt.Errorf("%w: read password from stdin: %v", ErrUsage, err)
	}
	password := strings.TrimRight(line, "\r\n")

	hash, err := service.HashPassword(password, f.cost)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, hash)
	return nil
}
