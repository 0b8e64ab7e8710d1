package commands

import (
	"fmt"
	"io"
	"log/slog"

	foundationerrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/sitecfg/internal/load"
	"git.home.luguber.info/inful/sitecfg/internal/version"
	"github.com/alecthomas/kong"
)

// Global is passed to every command's Run method.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Site configuration file" default:"docs/.vuepress/config.js" env:"SITECFG_CONFIG"`
	Format  string           `short:"f" help:"Configuration format (yaml, json, vuepress, hcl); inferred from the file extension when empty" env:"SITECFG_FORMAT"`
	EnvFile []string         `name:"env-file" help:"Dotenv files loaded before variable expansion" default:".env,.env.local"`
	NoEnv   bool             `name:"no-env" help:"Disable dotenv loading and environment variable expansion"`
	Verbose bool             `short:"v" help:"Enable verbose logging" env:"SITECFG_VERBOSE"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" default:"1" help:"Validate the site configuration"`
	Export   ExportCmd   `cmd:"" help:"Print the validated configuration with defaults applied"`
	Pages    PagesCmd    `cmd:"" help:"Check that every sidebar page exists in the docs directory"`
	Init     InitCmd     `cmd:"" help:"Write a starter site configuration"`
}

// loadOptions turns the global flags into loader options.
func (c *CLI) loadOptions() ([]load.Option, error) {
	var opts []load.Option
	if c.Format != "" {
		f, err := load.ParseFormat(c.Format)
		if err != nil {
			return nil, err
		}
		opts = append(opts, load.WithFormat(f))
	}
	if c.NoEnv {
		opts = append(opts, load.WithoutEnvExpansion())
	} else {
		opts = append(opts, load.WithEnvFiles(c.EnvFile...))
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name("sitecfg"),
		kong.Description("Validate and normalize documentation site configuration."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { exitCode = code }),
		kong.Vars{"version": version.String()},
		kong.Bind(&cli),
	)
	if err != nil {
		fmt.Fprintf(stderr, "sitecfg: %v\n", err)
		return 10
	}

	ctx, err := parser.Parse(args)
	if exitCode >= 0 {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(stderr, "sitecfg: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cli.Verbose)
	slog.SetDefault(logger)

	err = ctx.Run(&Global{Logger: logger, Out: stdout})
	if err == nil {
		return 0
	}
	adapter := foundationerrors.NewCLIErrorAdapter(cli.Verbose, logger)
	if cli.Verbose {
		adapter.Report(err)
	}
	fmt.Fprintln(stderr, adapter.FormatError(err))
	return adapter.ExitCodeFor(err)
}
