package main

import (
	"context"
	"io"
	"os"

	"github.com/gifhuppp/markup"
)

// HTMLConverter is the interface the command needs from the library.
type HTMLConverter interface {
	Convert(ctx context.Context, input markup.Input) (string, error)
}

// run reads ReST source and writes the HTML fragment plus a single trailing
// newline to out. Every failure degrades to empty output: an unreadable
// file, an empty stream, or a strict-mode rejection all print only the
// newline. run never returns a user-facing error; the conversion surface has
// no diagnostic channel.
func run(ctx context.Context, conv HTMLConverter, path string, stdin io.Reader, out io.Writer) error {
	source, ok := readSource(path, stdin)
	fragment := ""
	if ok && source != "" {
		if html, err := conv.Convert(ctx, markup.Input{Source: source}); err == nil {
			fragment = html
		}
	}
	_, err := io.WriteString(out, fragment+"\n")
	return err
}

// readSource resolves input: a named file when path is non-empty, standard
// input otherwise. A file that cannot be read yields ok=false, not an error.
func readSource(path string, stdin io.Reader) (string, bool) {
	if path != "" {
		content, err := os.ReadFile(path) // #nosec G304 -- the path argument is the CLI's contract
		if err != nil {
			return "", false
		}
		return string(content), true
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", false
	}
	return string(content), true
}
