package cli

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ardnew/roll/cli/cmd"
	"github.com/ardnew/roll/log"
	"github.com/ardnew/roll/pkg"
	"github.com/ardnew/roll/telemetry"
)

// Configuration file names within [pkg.ConfigDir].
const (
	configYAML = "config.yaml"
	configJSON = "config.json"
)

// CLI is the top-level command-line interface for roll.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Seed int64    `help:"Seed the random source (0 picks one at random)" short:"S"`
	Var  []string `help:"Bind a variable as name=EXPR (expr-lang syntax)" placeholder:"NAME=EXPR" sep:"none" short:"v"`

	Roll  cmd.Roll  `cmd:"" default:"withargs" help:"Roll dice expressions"`
	Ops   cmd.Ops   `cmd:""                    help:"Print the compiled operations of expressions"`
	Batch cmd.Batch `cmd:""                    help:"Roll one expression per line of input"`
	Repl  cmd.Repl  `cmd:""                    help:"Roll dice interactively"`
	Init  cmd.Init  `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the roll CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := pkg.MkdirAll()
	if err != nil {
		return err
	}

	env, err := parseEnv()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		"version":            pkg.Version(),
		cmd.ConfigIdentifier: pkg.ConfigPath(configYAML),
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		// ctx is resolved when the command runs, after the session is stored.
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(configJSON)),
		kong.Configuration(loadYAML, pkg.ConfigPath(configYAML)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	session, err := env.session(cli.Seed, cli.Var)
	if err != nil {
		return err
	}

	shutdown, err := telemetry.Setup(ctx, env.Telemetry, pkg.Name, pkg.Version())
	if err != nil {
		return err
	}

	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.WarnContext(ctx, "telemetry shutdown", slog.Any("error", err))
		}
	}()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSession(ctx, session)

	return ktx.Run(&cli)
}
