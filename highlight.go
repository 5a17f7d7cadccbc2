package markup

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// highlighter wraps chroma for the opt-in highlighting mode. Token spans use
// CSS classes so the hosting page keeps stylesheet control, and the
// formatter never emits its own <pre>: the platform's lang-annotated framing
// stays intact.
type highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newHighlighter() *highlighter {
	return &highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: styles.Fallback,
	}
}

// highlight returns token spans for source, or plain escaped text when the
// language is unknown. Highlighting failures never fail a conversion.
func (h *highlighter) highlight(source, lang string) string {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return html.EscapeString(source)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return html.EscapeString(source)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return html.EscapeString(source)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
