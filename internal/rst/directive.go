package rst

import (
	"regexp"
	"strings"
)

// directive carries one parsed directive invocation.
type directive struct {
	Name    string
	Args    []string
	Options map[string]string
	Body    []string // lines after the option block
	Block   []string // full dedented block, options included
	Line    int
}

// directiveFn materializes a directive into nodes. Handlers read recognized
// options and silently ignore the rest; option parsing has already rejected
// duplicates.
type directiveFn func(p *parser, d *directive) []Node

// directives maps names to handlers. The map is never mutated after init, so
// parsers can share it freely.
var directives = map[string]directiveFn{
	"code":       codeDirective,
	"code-block": codeDirective,
	"sourcecode": codeDirective,
	"doctest":    doctestDirective,
	"highlight":  highlightDirective,
	"image":      imageDirective,
	"raw":        rawDirective,
	"math":       mathDirective,
}

// disabledDirectives are recognized names that stay disabled for security:
// they read arbitrary files. They take the unknown-directive display path so
// their use is visible rather than silently dropped.
var disabledDirectives = map[string]bool{
	"include": true,
}

var optionRe = regexp.MustCompile(`^:([A-Za-z][A-Za-z0-9_-]*): *(.*)$`)

// runDirective dispatches one directive invocation.
func (p *parser) runDirective(name, rawArgs string, block []string, line int) []Node {
	name = strings.ToLower(name)
	fn, known := directives[name]
	if !known || disabledDirectives[name] {
		return p.unknownDirective(name, block, line)
	}
	d := &directive{
		Name:  name,
		Args:  strings.Fields(rawArgs),
		Block: block,
		Line:  line,
	}
	if err := d.parseOptions(); err != "" {
		// Duplicate option keys fail the directive; the resulting system
		// message is subject to the report level like any other.
		p.warnf(LevelError, "directive %q: %s", name, err)
		return nil
	}
	return fn(p, d)
}

// parseOptions splits the leading ":name: value" field block off the
// directive body. Unknown names are kept here and filtered by handlers;
// duplicate names are a hard failure.
func (d *directive) parseOptions() (errText string) {
	d.Options = make(map[string]string)
	i := 0
	for i < len(d.Block) {
		m := optionRe.FindStringSubmatch(d.Block[i])
		if m == nil {
			break
		}
		key, val := strings.ToLower(m[1]), m[2]
		if _, dup := d.Options[key]; dup {
			return "duplicate option " + quoted(key)
		}
		i++
		// Indented continuation lines extend the value.
		for i < len(d.Block) && !isBlank(d.Block[i]) && indentOf(d.Block[i]) > 0 {
			val += " " + strings.TrimSpace(d.Block[i])
			i++
		}
		d.Options[key] = strings.TrimSpace(val)
	}
	for i < len(d.Block) && isBlank(d.Block[i]) {
		i++
	}
	d.Body = d.Block[i:]
	return ""
}

func quoted(s string) string { return `"` + s + `"` }

func (d *directive) bodyText() string {
	return strings.Join(d.Body, "\n")
}

// unknownDirective applies the display policy: visible preformatted block by
// default, a severe error under the strict policy, nothing when display is
// toggled off.
func (p *parser) unknownDirective(name string, block []string, line int) []Node {
	switch {
	case p.opts.Policy.Directives == ModeStrict:
		p.messages = append(p.messages, Message{
			Level: LevelSevere,
			Line:  line,
			Text:  "unknown directive type " + quoted(name),
		})
		return nil
	case p.opts.Policy.Directives == ModeShow && p.display:
		return []Node{&LiteralBlock{
			Classes: []string{"unknown_directive"},
			Text:    strings.Join(block, "\n"),
		}}
	default:
		return nil
	}
}

// codeDirective renders an annotated code block: a literal block whose class
// pair carries the language for the HTML layer.
func codeDirective(p *parser, d *directive) []Node {
	classes := []string{"code"}
	if len(d.Args) > 0 {
		classes = append(classes, d.Args[0])
	}
	if extra := d.Options["class"]; extra != "" {
		classes = append(classes, strings.Fields(extra)...)
	}
	return []Node{&LiteralBlock{Classes: classes, Text: d.bodyText()}}
}

// doctestDirective re-renders Sphinx doctest directives as plain code: any
// doctest group argument is discarded and the language is pinned to the
// generic "text".
func doctestDirective(p *parser, d *directive) []Node {
	d.Args = []string{"text"}
	return codeDirective(p, d)
}

// highlightDirective records the default highlight language for the rest of
// the parse. It produces no node. A second argument (Sphinx carries a line
// number threshold there) is accepted and ignored.
func highlightDirective(p *parser, d *directive) []Node {
	if len(d.Args) == 0 {
		p.warnf(LevelError, "highlight directive requires a language argument")
		return nil
	}
	p.highlight = d.Args[0]
	return nil
}

func imageDirective(p *parser, d *directive) []Node {
	uri := strings.Join(d.Args, "")
	if uri == "" {
		p.warnf(LevelError, "image directive requires a URI argument")
		return nil
	}
	return []Node{&Image{
		URI:    uri,
		Alt:    d.Options["alt"],
		Height: d.Options["height"],
		Width:  d.Options["width"],
		Target: d.Options["target"],
		Class:  d.Options["class"],
	}}
}

// rawDirective passes body content through for a named output format. File
// and URL insertion stay disabled; those options are dropped with the other
// unrecognized ones.
func rawDirective(p *parser, d *directive) []Node {
	if !p.opts.RawEnabled {
		return p.unknownDirective("raw", d.Block, d.Line)
	}
	format := "html"
	if len(d.Args) > 0 {
		format = strings.ToLower(d.Args[0])
	}
	return []Node{&Raw{Format: format, Text: d.bodyText()}}
}

func mathDirective(p *parser, d *directive) []Node {
	text := d.bodyText()
	if len(d.Args) > 0 {
		text = strings.Join(d.Args, " ")
	}
	return []Node{&MathBlock{Text: text}}
}
