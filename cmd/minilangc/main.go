// Command minilangc is the reference compiler/interpreter driver: it
// reads a source file, runs it through the lex -> parse -> analyze ->
// evaluate pipeline, prints diagnostics, and exits with a status derived
// from the diagnostic severities, the way funxy/cmd/funxy/main.go drives
// its own pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/anycow/vuglang/internal/analyzer"
	"github.com/anycow/vuglang/internal/config"
	"github.com/anycow/vuglang/internal/driver"
	"github.com/anycow/vuglang/internal/lexer"
	"github.com/anycow/vuglang/internal/parser"
	"github.com/anycow/vuglang/internal/pipeline"
	"github.com/anycow/vuglang/internal/settings"
	"github.com/anycow/vuglang/internal/source"
)

type cliFlags struct {
	path       string
	color      string // "" means not given on the command line
	quiet      bool
	jsonReport bool
	configPath string
	timeout    time.Duration
}

func parseArgs(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-quiet" || arg == "--quiet":
			f.quiet = true
		case arg == "-json" || arg == "--json":
			f.jsonReport = true
		case strings.HasPrefix(arg, "-color="):
			f.color = strings.TrimPrefix(arg, "-color=")
		case arg == "-color" || arg == "--color":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("-color requires an argument")
			}
			f.color = args[i]
		case strings.HasPrefix(arg, "-config="):
			f.configPath = strings.TrimPrefix(arg, "-config=")
		case arg == "-config" || arg == "--config":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("-config requires an argument")
			}
			f.configPath = args[i]
		case strings.HasPrefix(arg, "-timeout="):
			d, err := time.ParseDuration(strings.TrimPrefix(arg, "-timeout="))
			if err != nil {
				return nil, fmt.Errorf("-timeout: %w", err)
			}
			f.timeout = d
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unrecognized flag %q", arg)
		default:
			if f.path != "" {
				return nil, fmt.Errorf("unexpected extra argument %q", arg)
			}
			f.path = arg
		}
	}
	return f, nil
}

func resolveColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(2)
		}
	}()

	flags, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "usage: minilangc [-color=auto|always|never] [-quiet] [-json] [-config <path>] [-timeout=<duration>] <file%s>\n", config.SourceFileExt)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
	if flags.path == "" {
		fmt.Fprintln(os.Stderr, "usage: minilangc [flags] <file.vg>")
		os.Exit(2)
	}
	if !config.HasSourceExt(flags.path) {
		fmt.Fprintf(os.Stderr, "error: %q has no recognized source extension (%s)\n",
			flags.path, strings.Join(config.SourceFileExtensions, ", "))
		os.Exit(2)
	}

	cfg := settings.Default()
	if flags.configPath != "" {
		cfg, err = settings.Load(flags.configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
	}
	// An explicit -color flag wins; otherwise fall back to the config
	// file's default, then to "auto".
	colorMode := flags.color
	if colorMode == "" {
		colorMode = cfg.Color
	}
	if colorMode == "" {
		colorMode = "auto"
	}

	text, err := os.ReadFile(flags.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	runID := uuid.New().String()
	src := source.New(flags.path, string(text))
	ctx := pipeline.NewContext(src, os.Stdout)
	ctx.RunID = runID

	var cancel context.CancelFunc
	if flags.timeout > 0 {
		var goCtx context.Context
		goCtx, cancel = context.WithTimeout(context.Background(), flags.timeout)
		defer cancel()
		ctx.Context = goCtx
	}

	pl := pipeline.New(
		lexer.Processor{},
		parser.Processor{},
		analyzer.Processor{},
		driver.ExecutionProcessor{},
	)
	ctx = pl.Run(ctx)

	useColor := resolveColor(colorMode)
	threshold := cfg.Threshold()
	if !flags.quiet {
		for _, d := range ctx.Diags.All() {
			if d.Severity < threshold {
				continue
			}
			fmt.Fprint(os.Stderr, d.Report(useColor))
		}
	}

	if flags.jsonReport {
		report := ctx.Diags.BuildReport(runID, flags.path, threshold)
		out, err := yaml.Marshal(report)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: marshaling report:", err)
		} else {
			os.Stdout.Write(out)
		}
	}

	if ctx.Diags.HasErrors() {
		os.Exit(1)
	}
	os.Exit(0)
}
