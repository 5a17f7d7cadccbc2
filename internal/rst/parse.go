package rst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseOptions configures a single parse. Every piece of mutable state the
// display conventions rely on (the display flag, the default highlight
// language) lives on the parser, so concurrent conversions never interact.
type ParseOptions struct {
	Policy            Policy
	DoctitleTransform bool
	RawEnabled        bool
}

// Parse converts normalized ReST source into a node tree. Parse never fails;
// problems become Messages on the returned document and, under the default
// display policy, visible preformatted blocks.
func Parse(src string, opts ParseOptions) *Document {
	p := &parser{
		opts:    opts,
		lines:   splitLines(Normalize(src)),
		display: true,
		targets: make(map[string]string),
		ids:     make(map[string]bool),
	}
	p.prescanTargets()
	doc := p.parseDocument()
	if opts.DoctitleTransform {
		promoteDocTitle(doc)
	}
	doc.HighlightLanguage = p.highlight
	doc.Messages = p.messages
	return doc
}

type parser struct {
	opts      ParseOptions
	lines     []string
	pos       int
	display   bool   // toggled by the github display marker
	highlight string // recorded by the highlight directive
	targets   map[string]string
	anonURIs  []string
	messages  []Message
	ids       map[string]bool
	adorns    []adornKey
}

func (p *parser) warnf(level int, format string, args ...any) {
	p.messages = append(p.messages, Message{
		Level: level,
		Line:  p.pos + 1,
		Text:  fmt.Sprintf(format, args...),
	})
}

var (
	directiveRe  = regexp.MustCompile(`^\.\. +([A-Za-z0-9]+(?:[-_+:.][A-Za-z0-9]+)*) *:: *(.*)$`)
	targetRe     = regexp.MustCompile(`^\.\. +_([^:]+): *(.*)$`)
	anonTargetRe = regexp.MustCompile(`^(?:\.\. +__:|__) +(\S+) *$`)
	bulletRe     = regexp.MustCompile(`^([*+\-\x{2022}\x{2023}\x{2043}])(?: +|$)`)
	enumRe       = regexp.MustCompile(`^(\d{1,4}|#)[.)] +`)
	// The field marker's closing colon must be followed by a space or end
	// of line, which keeps inline roles like :kbd:`x` out of field lists.
	fieldRe = regexp.MustCompile(`^:([^:\s][^:]*):(?: +(.*))?$`)
)

// prescanTargets records hyperlink targets before block parsing so that
// references may precede their targets, as ReST allows.
func (p *parser) prescanTargets() {
	for _, line := range p.lines {
		if m := anonTargetRe.FindStringSubmatch(line); m != nil {
			p.anonURIs = append(p.anonURIs, m[1])
			continue
		}
		if m := targetRe.FindStringSubmatch(line); m != nil {
			name := normalizeName(strings.Trim(m[1], "`"))
			if uri := strings.TrimSpace(m[2]); name != "" && uri != "" {
				p.targets[name] = uri
			}
		}
	}
}

func (p *parser) parseDocument() *Document {
	doc := &Document{}
	// Sections nest by adornment order of first use; the stack tracks the
	// open container at each depth.
	var stack []*Section
	appendNode := func(n Node) {
		if n == nil {
			return
		}
		if len(stack) == 0 {
			doc.Children = append(doc.Children, n)
		} else {
			s := stack[len(stack)-1]
			s.Children = append(s.Children, n)
		}
	}

	for p.pos < len(p.lines) {
		if isBlank(p.lines[p.pos]) {
			p.pos++
			continue
		}
		if sec, ok := p.parseSectionTitle(); ok {
			depth := p.adornDepth(sec.key)
			sec.Section.Depth = depth
			for len(stack) >= depth {
				stack = stack[:len(stack)-1]
			}
			appendNode(sec.Section)
			stack = append(stack, sec.Section)
			continue
		}
		for _, n := range p.parseBlock() {
			appendNode(n)
		}
	}
	return doc
}

type adornKey struct {
	ch       byte
	overline bool
}

type titled struct {
	*Section
	key adornKey
}

// adornDepth maps an adornment style to a section depth by order of first
// appearance, truncating deeper styles when an outer style recurs.
func (p *parser) adornDepth(key adornKey) int {
	for i, k := range p.adorns {
		if k == key {
			p.adorns = p.adorns[:i+1]
			return i + 1
		}
	}
	p.adorns = append(p.adorns, key)
	return len(p.adorns)
}

// parseSectionTitle recognizes underlined and overlined titles at the
// current position.
func (p *parser) parseSectionTitle() (titled, bool) {
	line := p.lines[p.pos]
	// Overline form: adornment, title, matching adornment.
	if c, ok := isAdornment(line); ok && p.pos+2 < len(p.lines) && !isBlank(p.lines[p.pos+1]) {
		if c2, ok2 := isAdornment(p.lines[p.pos+2]); ok2 && c2 == c {
			if _, titleIsAdorn := isAdornment(p.lines[p.pos+1]); !titleIsAdorn {
				title := strings.TrimSpace(p.lines[p.pos+1])
				p.pos += 3
				return p.makeSection(title, adornKey{ch: c, overline: true}), true
			}
		}
	}
	// Underline form: title, adornment. Lines that open another construct
	// never become titles.
	_, selfAdorn := isAdornment(line)
	construct := strings.HasPrefix(line, ".. ") || line == ".." ||
		strings.HasPrefix(line, ">>>") || bulletRe.MatchString(line) ||
		enumRe.MatchString(line) || isTableBorder(line)
	if !selfAdorn && !construct && indentOf(line) == 0 && p.pos+1 < len(p.lines) {
		if c, ok := isAdornment(p.lines[p.pos+1]); ok {
			title := strings.TrimSpace(line)
			if len(strings.TrimRight(p.lines[p.pos+1], " ")) < len(title) {
				p.warnf(LevelWarning, "title underline too short")
			}
			p.pos += 2
			return p.makeSection(title, adornKey{ch: c}), true
		}
	}
	return titled{}, false
}

func (p *parser) makeSection(title string, key adornKey) titled {
	id := slug(title)
	if id == "" {
		id = "section"
	}
	base := id
	for n := 1; p.ids[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	p.ids[id] = true
	return titled{
		Section: &Section{IDs: []string{id}, Title: p.parseInline(title)},
		key:     key,
	}
}

// parseBlock dispatches one non-section block construct at the current
// position. It is also used for nested bodies, which never contain sections.
func (p *parser) parseBlock() []Node {
	line := p.lines[p.pos]
	switch {
	case isBlank(line):
		p.pos++
		return nil
	case anonTargetRe.MatchString(line):
		p.pos++ // recorded by prescan
		return nil
	case strings.HasPrefix(line, ".."):
		if line == ".." || strings.HasPrefix(line, ".. ") {
			return p.parseExplicit()
		}
		return p.parseParagraph()
	case indentOf(line) > 0:
		return p.parseBlockQuote()
	case strings.HasPrefix(line, ">>>"):
		return p.parseDoctest()
	case isTransition(line) && p.adjacentBlank():
		p.pos++
		return []Node{&Transition{}}
	case bulletRe.MatchString(line):
		return p.parseBulletList()
	case enumRe.MatchString(line):
		return p.parseEnumList()
	case fieldRe.MatchString(line):
		return p.parseFieldList()
	case isTableBorder(line):
		return p.parseSimpleTable()
	default:
		return p.parseParagraph()
	}
}

// adjacentBlank reports whether the next line is blank or absent, which
// distinguishes a transition from a section overline.
func (p *parser) adjacentBlank() bool {
	return p.pos+1 >= len(p.lines) || isBlank(p.lines[p.pos+1])
}

// parseNested parses an already-dedented body region with fresh line state
// but shared document state.
func (p *parser) parseNested(lines []string) []Node {
	savedLines, savedPos := p.lines, p.pos
	p.lines, p.pos = lines, 0
	var nodes []Node
	for p.pos < len(p.lines) {
		nodes = append(nodes, p.parseBlock()...)
	}
	p.lines, p.pos = savedLines, savedPos
	return nodes
}

// collectIndented consumes the indented block following the current
// position: lines indented beyond base, with interior blanks kept.
func (p *parser) collectIndented(base int) []string {
	var block []string
	for p.pos < len(p.lines) {
		l := p.lines[p.pos]
		if !isBlank(l) && indentOf(l) <= base {
			break
		}
		block = append(block, l)
		p.pos++
	}
	return dedent(block)
}

// parseExplicit handles ".."-introduced blocks: directives, hyperlink
// targets, and comments.
func (p *parser) parseExplicit() []Node {
	line := p.lines[p.pos]
	startLine := p.pos + 1

	if m := directiveRe.FindStringSubmatch(line); m != nil {
		p.pos++
		block := p.collectIndented(indentOf(line))
		return p.runDirective(m[1], m[2], block, startLine)
	}

	if targetRe.MatchString(line) {
		p.pos++ // recorded by prescan; URI continuation lines follow indented
		p.collectIndented(0)
		return nil
	}

	// Comment.
	p.pos++
	var content []string
	if rest := strings.TrimPrefix(line, ".."); strings.TrimSpace(rest) != "" {
		content = append(content, strings.TrimPrefix(rest, " "))
	}
	content = append(content, p.collectIndented(indentOf(line))...)
	return []Node{p.commentNode(content)}
}

// commentNode applies the comment display policy: empty comments stay
// structural no-ops, a leading display marker toggles visibility and never
// renders, and remaining body text surfaces as a marked preformatted block
// instead of vanishing.
func (p *parser) commentNode(content []string) Node {
	if len(content) == 0 {
		return &Comment{}
	}
	if p.opts.Policy.Comments == ModeStrict {
		return &Comment{}
	}
	if on, ok := parseDisplayMarker(content[0]); ok {
		p.display = on
		content = content[1:]
		for len(content) > 0 && content[0] == "" {
			content = content[1:]
		}
		if len(content) == 0 {
			return &Comment{}
		}
	}
	if p.opts.Policy.Comments == ModeShow && p.display {
		return &LiteralBlock{Classes: []string{"comment"}, Text: strings.Join(content, "\n")}
	}
	return &Comment{}
}

func (p *parser) parseDoctest() []Node {
	start := p.pos
	for p.pos < len(p.lines) && !isBlank(p.lines[p.pos]) {
		p.pos++
	}
	return []Node{&DoctestBlock{Text: strings.Join(p.lines[start:p.pos], "\n")}}
}

func (p *parser) parseBlockQuote() []Node {
	block := p.collectIndented(0)
	return []Node{&BlockQuote{Children: p.parseNested(block)}}
}

func (p *parser) parseBulletList() []Node {
	list := &BulletList{}
	marker := p.lines[p.pos][:1]
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if isBlank(line) {
			p.pos++
			continue
		}
		if !strings.HasPrefix(line, marker+" ") && line != marker {
			break
		}
		list.Items = append(list.Items, p.parseListItem(len(marker)))
	}
	if len(list.Items) == 0 {
		return p.parseParagraph()
	}
	return []Node{list}
}

func (p *parser) parseEnumList() []Node {
	list := &EnumeratedList{Start: 1}
	first := true
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		if isBlank(line) {
			p.pos++
			continue
		}
		m := enumRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		if first && m[1] != "#" {
			list.Start, _ = strconv.Atoi(m[1])
		}
		first = false
		list.Items = append(list.Items, p.parseListItem(len(m[0])-1))
	}
	if len(list.Items) == 0 {
		return p.parseParagraph()
	}
	return []Node{list}
}

// parseListItem consumes one list item: the marker line's remainder plus any
// continuation lines indented past the marker.
func (p *parser) parseListItem(markerWidth int) *ListItem {
	line := p.lines[p.pos]
	p.pos++
	var body []string
	if rest := strings.TrimSpace(line[markerWidth:]); rest != "" {
		body = append(body, rest)
	}
	cont := p.collectIndented(markerWidth)
	body = append(body, cont...)
	return &ListItem{Children: p.parseNested(body)}
}

func (p *parser) parseFieldList() []Node {
	fl := &FieldList{}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		m := fieldRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		p.pos++
		var body []string
		if strings.TrimSpace(m[2]) != "" {
			body = append(body, strings.TrimSpace(m[2]))
		}
		body = append(body, p.collectIndented(0)...)
		fl.Fields = append(fl.Fields, &Field{
			Name: strings.TrimSpace(m[1]),
			Body: p.parseNested(body),
		})
	}
	if len(fl.Fields) == 0 {
		return p.parseParagraph()
	}
	return []Node{fl}
}

// paragraphBreakers recognizes lines that terminate a running paragraph.
func (p *parser) paragraphBreak(line string) bool {
	if isBlank(line) || indentOf(line) > 0 {
		return true
	}
	if strings.HasPrefix(line, ".. ") || line == ".." || strings.HasPrefix(line, ">>>") {
		return true
	}
	if bulletRe.MatchString(line) || enumRe.MatchString(line) || isTableBorder(line) {
		return true
	}
	return false
}

func (p *parser) parseParagraph() []Node {
	start := p.pos
	p.pos++ // always consume the opening line
	for p.pos < len(p.lines) && !p.paragraphBreak(p.lines[p.pos]) {
		if _, ok := isAdornment(p.lines[p.pos]); ok {
			break
		}
		p.pos++
	}
	text := strings.Join(p.lines[start:p.pos], "\n")

	// A trailing "::" announces a literal block. " ::" and a bare "::"
	// paragraph disappear entirely; "text::" keeps a single colon.
	expectLiteral := false
	switch {
	case text == "::":
		expectLiteral = true
		text = ""
	case strings.HasSuffix(text, "::"):
		expectLiteral = true
		text = strings.TrimSuffix(text, "::")
		if strings.HasSuffix(text, " ") || text == "" {
			text = strings.TrimRight(text, " ")
		} else {
			text += ":"
		}
	}

	var nodes []Node
	if text != "" {
		nodes = append(nodes, &Paragraph{Children: p.parseInline(text)})
	}
	if expectLiteral {
		block := p.collectIndented(0)
		if len(block) > 0 {
			nodes = append(nodes, &LiteralBlock{Text: strings.Join(block, "\n")})
		}
	}
	return nodes
}

// promoteDocTitle applies the doctitle transform: a document whose entire
// body is one top-level section lifts that section's title to document
// title, shifting nested section depths up.
func promoteDocTitle(doc *Document) {
	var only *Section
	for _, n := range doc.Children {
		switch s := n.(type) {
		case *Section:
			if only != nil {
				return
			}
			only = s
		case *Comment:
			// structural no-op, does not block promotion
		default:
			return
		}
	}
	if only == nil {
		return
	}
	doc.Title = only.Title
	doc.Children = only.Children
	shiftDepth(doc.Children)
}

func shiftDepth(nodes []Node) {
	for _, n := range nodes {
		if s, ok := n.(*Section); ok {
			s.Depth--
			shiftDepth(s.Children)
		}
	}
}
