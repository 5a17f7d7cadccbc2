package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds parsed command-line flags.
type cliFlags struct {
	config  string
	strict  bool
	version bool
}

// parseFlags parses args (excluding the program name) and returns flags and
// the remaining positional arguments.
func parseFlags(args []string) (cliFlags, []string, error) {
	var flags cliFlags
	fs := flag.NewFlagSet("rst2html", flag.ContinueOnError)
	fs.StringVarP(&flags.config, "config", "c", "", "config name or path (YAML)")
	fs.BoolVar(&flags.strict, "strict", false, "conventional engine behavior: unknown directives fail, comments are stripped")
	fs.BoolVarP(&flags.version, "version", "V", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, nil, err
	}
	return flags, fs.Args(), nil
}
