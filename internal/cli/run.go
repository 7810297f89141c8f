package cli

import (
	"os"

	"github.com/alecthomas/kong"
)

// Parse parses the command line into grammar with the options every
// measurement command shares.
func Parse(grammar any, name, description, version string) *kong.Context {
	return kong.Parse(grammar,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)
}

// Check handles --version and a missing input file. It exits the process
// in both cases.
func (f *InputFlags) Check(ctx *kong.Context, tool, version string) {
	if f.Version {
		PrintVersion(tool, version)
		os.Exit(0)
	}
	if f.Input == "" {
		PrintError("No input file specified")
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}
}

// Fatal prints err and exits with status 1.
func Fatal(err error) {
	PrintError(err.Error())
	os.Exit(1)
}
