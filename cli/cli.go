// Package cli implements the strut command-line interface.
package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/strut-lang/strut/cli/cmd"
	"github.com/strut-lang/strut/pkg"
)

// CLI is the top-level command-line interface for strut.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Check cmd.Check `cmd:"" help:"Compile a manifest and report errors"`
	Fmt   cmd.Fmt   `cmd:"" help:"Rewrite a manifest as normalized YAML"`
	Repl  cmd.Repl  `cmd:"" help:"Interactive expression session"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate manifest expressions"`
}

// Run executes the strut CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
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
		kong.Vars{"version": pkg.Name + " " + pkg.Version}.
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Logger flags may appear anywhere on the command line, so the final
	// configuration applies only after parsing completes.
	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
