package markup

import (
	"fmt"
	"html"
	"strings"

	"github.com/gifhuppp/markup/internal/rst"
)

// htmlWriter serializes a parsed tree to a body fragment. The emission rules
// deliberately diverge from conventional ReST output:
//
//   - no wrapper element around the document
//   - sections emit per-identifier anchors instead of nested containers
//   - literal blocks carry a lang attribute instead of highlight markup
//   - inline literals use <code>, not a generic monospace element
//   - tables get a fixed class list
//   - SVG images embed with <img>, never <object>
type htmlWriter struct {
	buf         strings.Builder
	settings    Settings
	highlighter *highlighter
	defaultLang string
}

func (c *Converter) render(doc *rst.Document) string {
	w := &htmlWriter{
		settings:    c.settings,
		highlighter: c.highlighter,
		defaultLang: doc.HighlightLanguage,
	}
	w.document(doc)
	return strings.TrimRight(w.buf.String(), "\n")
}

func (w *htmlWriter) document(doc *rst.Document) {
	if doc.Title != nil {
		w.buf.WriteString("<h1 class=\"title\">")
		w.inlines(doc.Title)
		w.buf.WriteString("</h1>\n")
	}
	w.blocks(doc.Children)
	for _, m := range doc.Messages {
		if m.Level >= w.settings.ReportLevel {
			fmt.Fprintf(&w.buf, "<div class=\"system-message\">line %d: %s</div>\n",
				m.Line, html.EscapeString(m.Text))
		}
	}
}

func (w *htmlWriter) blocks(nodes []rst.Node) {
	for _, n := range nodes {
		w.block(n)
	}
}

func (w *htmlWriter) block(n rst.Node) {
	switch n := n.(type) {
	case *rst.Section:
		w.section(n)
	case *rst.Paragraph:
		w.buf.WriteString("<p>")
		w.inlines(n.Children)
		w.buf.WriteString("</p>\n")
	case *rst.LiteralBlock:
		w.literalBlock(n)
	case *rst.DoctestBlock:
		// Interactive sessions always carry the fixed lang marker.
		w.buf.WriteString("<pre lang=\"pycon\">")
		w.buf.WriteString(html.EscapeString(n.Text))
		w.buf.WriteString("</pre>\n")
	case *rst.BlockQuote:
		w.buf.WriteString("<blockquote>\n")
		w.blocks(n.Children)
		w.buf.WriteString("</blockquote>\n")
	case *rst.BulletList:
		w.buf.WriteString("<ul>\n")
		w.listItems(n.Items)
		w.buf.WriteString("</ul>\n")
	case *rst.EnumeratedList:
		if n.Start > 1 {
			fmt.Fprintf(&w.buf, "<ol start=\"%d\">\n", n.Start)
		} else {
			w.buf.WriteString("<ol>\n")
		}
		w.listItems(n.Items)
		w.buf.WriteString("</ol>\n")
	case *rst.FieldList:
		w.fieldList(n)
	case *rst.Table:
		w.table(n)
	case *rst.Image:
		w.image(n)
	case *rst.Raw:
		if n.Format == "html" {
			w.buf.WriteString(n.Text)
			w.buf.WriteString("\n")
		}
	case *rst.MathBlock:
		if w.settings.MathOutput == "latex" {
			w.buf.WriteString("<pre class=\"math\">")
			w.buf.WriteString(html.EscapeString(n.Text))
			w.buf.WriteString("</pre>\n")
		}
	case *rst.Transition:
		w.buf.WriteString("<hr />\n")
	case *rst.Comment:
		// structural only
	}
}

// section emits anchors for every identifier and a heading, but no wrapping
// element; nesting survives only as heading depth.
func (w *htmlWriter) section(s *rst.Section) {
	for _, id := range s.IDs {
		fmt.Fprintf(&w.buf, "<a name=\"%s\"></a>\n", html.EscapeString(id))
	}
	level := w.settings.InitialHeaderLevel + s.Depth - 1
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(&w.buf, "<h%d>", level)
	w.inlines(s.Title)
	fmt.Fprintf(&w.buf, "</h%d>\n", level)
	w.blocks(s.Children)
}

// literalBlock resolves the lang attribute: an explicit ["code", lang] class
// pair wins, then the document's recorded default highlight language, then
// nothing. Other classes (the display-policy markers among them) pass
// through as a class attribute.
func (w *htmlWriter) literalBlock(n *rst.LiteralBlock) {
	classes := n.Classes
	lang := ""
	if len(classes) >= 2 && classes[0] == "code" {
		lang = classes[1]
		classes = classes[2:]
	} else if w.defaultLang != "" {
		lang = w.defaultLang
	}
	w.buf.WriteString("<pre")
	if len(classes) > 0 {
		fmt.Fprintf(&w.buf, " class=\"%s\"", html.EscapeString(strings.Join(classes, " ")))
	}
	if lang != "" {
		fmt.Fprintf(&w.buf, " lang=\"%s\"", html.EscapeString(lang))
	}
	w.buf.WriteString(">")
	if w.highlighter != nil && lang != "" {
		w.buf.WriteString(w.highlighter.highlight(n.Text, lang))
	} else {
		w.buf.WriteString(html.EscapeString(n.Text))
	}
	w.buf.WriteString("</pre>\n")
}

// listItems compacts single-paragraph items to bare inline content.
func (w *htmlWriter) listItems(items []*rst.ListItem) {
	for _, it := range items {
		w.buf.WriteString("<li>")
		w.compactBlocks(it.Children)
		w.buf.WriteString("</li>\n")
	}
}

// compactBlocks renders a body, omitting the paragraph wrapper when the body
// is a single paragraph.
func (w *htmlWriter) compactBlocks(nodes []rst.Node) {
	if len(nodes) == 1 {
		if p, ok := nodes[0].(*rst.Paragraph); ok {
			w.inlines(p.Children)
			return
		}
	}
	w.buf.WriteString("\n")
	w.blocks(nodes)
}

// fieldList renders the conventional docutils field-list table. Names longer
// than the configured limit take a spanned row of their own.
func (w *htmlWriter) fieldList(fl *rst.FieldList) {
	w.buf.WriteString("<table class=\"docutils field-list\" frame=\"void\" rules=\"none\">\n")
	w.buf.WriteString("<col class=\"field-name\" />\n<col class=\"field-body\" />\n")
	w.buf.WriteString("<tbody valign=\"top\">\n")
	for _, f := range fl.Fields {
		name := html.EscapeString(f.Name) + ":"
		long := w.settings.FieldNameLimit > 0 && len(f.Name) > w.settings.FieldNameLimit
		if long {
			fmt.Fprintf(&w.buf, "<tr class=\"field\"><th class=\"field-name\" colspan=\"2\">%s</th></tr>\n", name)
			w.buf.WriteString("<tr><td>&nbsp;</td><td class=\"field-body\">")
		} else {
			fmt.Fprintf(&w.buf, "<tr class=\"field\"><th class=\"field-name\">%s</th><td class=\"field-body\">", name)
		}
		w.compactBlocks(f.Body)
		w.buf.WriteString("</td></tr>\n")
	}
	w.buf.WriteString("</tbody>\n</table>\n")
}

// table emits the fixed platform class list: the "docutils" base plus the
// configured table style.
func (w *htmlWriter) table(t *rst.Table) {
	class := "docutils"
	if w.settings.TableStyle != "" {
		class += " " + w.settings.TableStyle
	}
	fmt.Fprintf(&w.buf, "<table class=\"%s\">\n", html.EscapeString(class))
	if len(t.Head) > 0 {
		w.buf.WriteString("<thead>\n")
		w.tableRows(t.Head, "th")
		w.buf.WriteString("</thead>\n")
	}
	w.buf.WriteString("<tbody>\n")
	w.tableRows(t.Body, "td")
	w.buf.WriteString("</tbody>\n</table>\n")
}

func (w *htmlWriter) tableRows(rows []*rst.TableRow, cell string) {
	for _, r := range rows {
		w.buf.WriteString("<tr>")
		for _, c := range r.Cells {
			fmt.Fprintf(&w.buf, "<%s>", cell)
			w.inlines(c.Children)
			fmt.Fprintf(&w.buf, "</%s>", cell)
		}
		w.buf.WriteString("</tr>\n")
	}
}

// image always embeds with <img>, SVG included; conventional object-element
// embedding for SVG never renders on the hosting platform. All non-empty
// attributes carry over, with the source URI renamed to src.
func (w *htmlWriter) image(n *rst.Image) {
	if n.Target != "" {
		fmt.Fprintf(&w.buf, "<a href=\"%s\">", html.EscapeString(n.Target))
	}
	w.buf.WriteString("<img")
	for _, attr := range []struct{ name, val string }{
		{"src", n.URI},
		{"alt", n.Alt},
		{"height", n.Height},
		{"width", n.Width},
		{"class", n.Class},
	} {
		if attr.val != "" {
			fmt.Fprintf(&w.buf, " %s=\"%s\"", attr.name, html.EscapeString(attr.val))
		}
	}
	w.buf.WriteString(" />")
	if n.Target != "" {
		w.buf.WriteString("</a>")
	}
	w.buf.WriteString("\n")
}

func (w *htmlWriter) inlines(nodes []rst.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *rst.Text:
			w.buf.WriteString(html.EscapeString(n.Text))
		case *rst.Emphasis:
			w.buf.WriteString("<em>")
			w.inlines(n.Children)
			w.buf.WriteString("</em>")
		case *rst.Strong:
			w.buf.WriteString("<strong>")
			w.inlines(n.Children)
			w.buf.WriteString("</strong>")
		case *rst.Literal:
			w.buf.WriteString("<code>")
			w.buf.WriteString(html.EscapeString(n.Text))
			w.buf.WriteString("</code>")
		case *rst.TitleReference:
			w.buf.WriteString("<cite>")
			w.buf.WriteString(html.EscapeString(n.Text))
			w.buf.WriteString("</cite>")
		case *rst.Reference:
			fmt.Fprintf(&w.buf, "<a href=\"%s\">%s</a>",
				html.EscapeString(n.URI), html.EscapeString(n.Text))
		case *rst.RawHTML:
			w.buf.WriteString(n.Text)
		}
	}
}
