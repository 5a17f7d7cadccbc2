// Package markup converts reStructuredText into an HTML fragment styled the
// way a hosting platform displays embedded documents: no wrapper divs,
// anchor-based section headings, lang-annotated preformatted blocks, and a
// tolerant display policy for markup the engine cannot handle.
//
// # Quick Start
//
// Create a converter and convert a document:
//
//	conv := markup.NewConverter()
//	html, err := conv.Convert(ctx, markup.Input{Source: "Title\n=====\n\nBody."})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(html)
//
// The result is a body fragment, not a complete document; no enclosing
// wrapper element is emitted.
//
// # Display Policy
//
// Unknown or disabled directives and comment bodies are not errors. By
// default they surface as visible preformatted blocks (classes
// "unknown_directive" and "comment") so authors can see what went wrong in
// their markup instead of content silently disappearing. A document controls
// this with comment markers:
//
//	.. github display off
//
// suppresses those blocks for the rest of the document, and "github display
// on" restores them. Strict conventional behavior (hard errors, stripped
// comments) is available via WithPolicy.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv := markup.NewConverter(
//	    markup.WithPolicy(markup.Policy{Comments: markup.ModeHide}),
//	    markup.WithTableStyle("borderless"),
//	    markup.WithSyntaxHighlighting(),
//	)
//
// All per-document state (the display flag, the default highlight language
// recorded by a highlight directive) is scoped to one Convert call, so a
// single Converter is safe for concurrent and repeated use.
package markup
