package main

import (
	flag "github.com/spf13/pflag"

	"github.com/nikolay-ai/hackevent/internal/markdown"
	"github.com/nikolay-ai/hackevent/internal/report"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	envFile string
	verbose bool
}

// newsFlags holds news generation flags.
type newsFlags struct {
	days   int
	output string
	model  string
}

// buildFlags holds page build flags.
type buildFlags struct {
	reports  string
	output   string
	renderer string
	event    string
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.envFile, "env-file", ".env", "dotenv file to load if present")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

func addNewsFlags(fs *flag.FlagSet, f *newsFlags, outputName string) {
	fs.IntVarP(&f.days, "days", "d", report.DefaultDays, "days of news to cover")
	fs.StringVar(&f.model, "model", "", "model to request (default $OPENROUTER_MODEL)")
	if outputName != "" {
		fs.StringVarP(&f.output, outputName, "o", "", "report file (default news_database/ai_news_<timestamp>.md)")
	}
}

func addBuildFlags(fs *flag.FlagSet, f *buildFlags, outputShort string) {
	fs.StringVar(&f.reports, "reports", "", "report directory (default $NEWS_DIR)")
	fs.StringVarP(&f.output, "output", outputShort, "", "invitation file (default $INVITATION_PATH)")
	fs.StringVarP(&f.renderer, "renderer", "r", markdown.RendererSubset, "markdown renderer: subset or goldmark")
	fs.StringVarP(&f.event, "event", "e", "", "event YAML file (default $EVENT_CONFIG)")
}

type newsCmdFlags struct {
	common commonFlags
	news   newsFlags
}

func parseNewsFlags(args []string) (*newsCmdFlags, error) {
	fs := flag.NewFlagSet("news", flag.ContinueOnError)
	f := &newsCmdFlags{}
	addCommonFlags(fs, &f.common)
	addNewsFlags(fs, &f.news, "output")
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	return f, nil
}

type buildCmdFlags struct {
	common commonFlags
	build  buildFlags
}

func parseBuildFlags(args []string) (*buildCmdFlags, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	f := &buildCmdFlags{}
	addCommonFlags(fs, &f.common)
	addBuildFlags(fs, &f.build, "o")
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	return f, nil
}

type runCmdFlags struct {
	common    commonFlags
	news      newsFlags
	build     buildFlags
	noBrowser bool
}

func parseRunFlags(args []string) (*runCmdFlags, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	f := &runCmdFlags{}
	addCommonFlags(fs, &f.common)
	addNewsFlags(fs, &f.news, "")
	addBuildFlags(fs, &f.build, "o")
	fs.BoolVar(&f.noBrowser, "no-browser", false, "do not open the page when done")
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	return f, nil
}

type modelsCmdFlags struct {
	common commonFlags
}

func parseModelsFlags(args []string) (*modelsCmdFlags, error) {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	f := &modelsCmdFlags{}
	addCommonFlags(fs, &f.common)
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	return f, nil
}

type hashCmdFlags struct {
	common commonFlags
	cost   int
}

func parseHashFlags(args []string) (*hashCmdFlags, error) {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	f := &hashCmdFlags{}
	addCommonFlags(fs, &f.common)
	fs.IntVar(&f.cost, "cost", 12, "bcrypt cost (4-14)")
	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if err := noPositional(fs); err != nil {
		return nil, err
	}
	if f.cost < 4 || f.cost > 14 {
		return nil, fmtUsage("--cost must be between 4 and 14, got %d", f.cost)
	}
	return f, nil
}
