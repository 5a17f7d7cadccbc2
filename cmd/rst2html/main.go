// Command rst2html converts a ReST document to an HTML fragment on stdout.
//
//	rst2html [path]
//
// With no path the document is read from standard input. Conversion failures
// degrade to empty output; the exit status stays zero so hosting pipelines
// can treat the output as authoritative.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/gifhuppp/markup"
	"github.com/gifhuppp/markup/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	flags, args, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if flags.version {
		fmt.Println("rst2html " + Version)
		return
	}

	opts, err := converterOptions(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	conv := markup.NewConverter(opts...)
	if err := run(context.Background(), conv, path, os.Stdin, os.Stdout); err != nil {
		// Only output-write failures land here; nothing useful remains to
		// print, but a broken stdout should not look like success.
		os.Exit(1)
	}
}

// converterOptions assembles library options from the config file and flags.
// The --strict flag overrides any configured policy.
func converterOptions(flags cliFlags) ([]markup.Option, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	if flags.strict {
		opts = append(opts, markup.WithPolicy(markup.StrictPolicy()))
	}
	return opts, nil
}
