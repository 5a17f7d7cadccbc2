package markup

import (
	"context"
	"fmt"

	"github.com/gifhuppp/markup/internal/rst"
)

// Converter renders ReST source to HTML fragments. It is immutable after
// construction and safe for concurrent use: every Convert call parses and
// renders with fresh per-call state.
type Converter struct {
	settings    Settings
	policy      Policy
	highlighter *highlighter
}

// Option customizes a Converter.
type Option func(*Converter)

// WithSettings replaces the default platform settings bundle.
func WithSettings(s Settings) Option {
	return func(c *Converter) { c.settings = s }
}

// WithPolicy sets the static display policy for unknown directives and
// comments.
func WithPolicy(p Policy) Option {
	return func(c *Converter) { c.policy = p }
}

// WithTableStyle appends a style name to the class list of rendered tables.
func WithTableStyle(style string) Option {
	return func(c *Converter) { c.settings.TableStyle = style }
}

// WithInitialHeaderLevel sets the heading level of top-level sections.
func WithInitialHeaderLevel(level int) Option {
	return func(c *Converter) { c.settings.InitialHeaderLevel = level }
}

// WithSyntaxHighlighting enables chroma token spans inside code blocks that
// carry a language. The platform bundle leaves this off; the lang attribute
// alone is emitted and highlighting happens downstream.
func WithSyntaxHighlighting() Option {
	return func(c *Converter) { c.settings.SyntaxHighlight = "short" }
}

// NewConverter creates a Converter with the platform defaults.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{settings: DefaultSettings()}
	for _, opt := range opts {
		opt(c)
	}
	if c.settings.SyntaxHighlight != "" && c.settings.SyntaxHighlight != "none" {
		c.highlighter = newHighlighter()
	}
	return c
}

// Convert renders one document and returns the HTML body fragment. The
// fragment has no enclosing wrapper element and no trailing newline.
//
// The engine is synchronous, so cancellation is honored via the
// goroutine+select pattern: a canceled context abandons the conversion and
// returns ctx.Err.
func (c *Converter) Convert(ctx context.Context, input Input) (string, error) {
	if input.Source == "" {
		return "", ErrEmptySource
	}
	if err := c.settings.Validate(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		doc := rst.Parse(input.Source, rst.ParseOptions{
			Policy:            c.enginePolicy(),
			DoctitleTransform: c.settings.DoctitleTransform,
			RawEnabled:        c.settings.RawEnabled,
		})
		if err := c.strictError(doc); err != nil {
			done <- result{err: err}
			return
		}
		done <- result{html: c.render(doc)}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// enginePolicy maps the public policy onto the engine's. The engine-level
// StripComments setting needs no translation: the comment override
// intercepts before stripping would apply, and ModeStrict reproduces the
// stripped behavior exactly.
func (c *Converter) enginePolicy() rst.Policy {
	return rst.Policy{
		Directives: rst.Mode(c.policy.Directives),
		Comments:   rst.Mode(c.policy.Comments),
	}
}

// strictError converts severe parse diagnostics into a hard failure when the
// strict policy is in force. Outside strict mode diagnostics stay subject to
// the report level and never fail a conversion.
func (c *Converter) strictError(doc *rst.Document) error {
	if c.policy.Directives != ModeStrict {
		return nil
	}
	for _, m := range doc.Messages {
		if m.Level >= rst.LevelSevere {
			return fmt.Errorf("%w: line %d: %s", ErrStrictParse, m.Line, m.Text)
		}
	}
	return nil
}
