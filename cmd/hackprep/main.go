// Command hackprep prepares the hack event invitation page: it generates
// the weekly AI news report, builds the static page from the latest report
// and opens it in a browser.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/nikolay-ai/hackevent/internal/config"
)

const usage = `Usage: hackprep <command> [flags]

Commands:
  news            generate a news report
  build           build the invitation page from the latest report
  run             news, then build, then open the page
  models          list models offered by the news service
  hash-password   read a password on stdin and print its bcrypt hash

Run "hackprep <command> --help" for command flags.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := runMain(ctx, os.Args[1:], DefaultDeps())
	stop()
	os.Exit(code)
}

// runMain dispatches a command and returns the process exit code.
func runMain(ctx context.Context, args []string, deps *Dependencies) int {
	if len(args) == 0 {
		fmt.Fprint(deps.Stderr, usage)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	err := dispatch(ctx, cmd, rest, deps)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(deps.Stderr, "hackprep %s: %v\n", cmd, err)
	}
	return exitCodeFor(err)
}

func dispatch(ctx context.Context, cmd string, args []string, deps *Dependencies) error {
	switch cmd {
	case "news":
		f, err := parseNewsFlags(args)
		if err != nil {
			return err
		}
		cfg, err := setup(f.common, deps)
		if err != nil {
			return err
		}
		_, err = runNews(ctx, cfg, f.news, deps)
		return err

	case "build":
		f, err := parseBuildFlags(args)
		if err != nil {
			return err
		}
		cfg, err := setup(f.common, deps)
		if err != nil {
			return err
		}
		_, err = runBuild(ctx, cfg, f.build, deps)
		return err

	case "run":
		f, err := parseRunFlags(args)
		if err != nil {
			return err
		}
		cfg, err := setup(f.common, deps)
		if err != nil {
			return err
		}
		return runAll(ctx, cfg, *f, deps)

	case "models":
		f, err := parseModelsFlags(args)
		if err != nil {
			return err
		}
		cfg, err := setup(f.common, deps)
		if err != nil {
			return err
		}
		return runModels(ctx, cfg, deps)

	case "hash-password":
		f, err := parseHashFlags(args)
		if err != nil {
			return err
		}
		setupLogging(f.common.verbose, deps.Stderr)
		return runHashPassword(*f, deps)

	case "help", "-h", "--help":
		fmt.Fprint(deps.Stdout, usage)
		return nil

	default:
		fmt.Fprint(deps.Stderr, usage)
		return fmtUsage("unknown command %q", cmd)
	}
}

// setup configures logging, loads the dotenv file and reads the
// generator settings from the environment.
func setup(f commonFlags, deps *Dependencies) (config.Generator, error) {
	setupLogging(f.verbose, deps.Stderr)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		slog.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		slog.Debug("failed to set GOMAXPROCS", "error", err)
	}

	if f.envFile != "" {
		if err := config.LoadDotEnv(f.envFile); err != nil {
			return config.Generator{}, err
		}
	}
	return config.LoadGenerator()
}

func setupLogging(verbose bool, w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
