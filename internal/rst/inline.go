package rst

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Inline markup recognition follows the docutils rules in simplified form: a
// start-string must be at the start of a line or preceded by whitespace or
// opening punctuation, and must be followed by a non-space character. An
// end-string must be preceded by a non-space character.

const openerChars = " \n'\"([{<-/:‘“"

func canOpen(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return strings.ContainsRune(openerChars, r)
}

func startsContent(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsSpace(r)
}

func endsContent(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsSpace(r)
}

// findEnd locates the end-string at or after from, honoring the non-space
// rule on the preceding character. Returns -1 when no valid end exists.
func findEnd(s, delim string, from int) int {
	for at := from; at < len(s); {
		i := strings.Index(s[at:], delim)
		if i < 0 {
			return -1
		}
		i += at
		if endsContent(s, i) {
			return i
		}
		at = i + len(delim)
	}
	return -1
}

// roleNameChars are valid in role names.
func isRoleNameChar(r rune) bool {
	return r == '-' || r == '_' || r == '+' || r == ':' || r == '.' ||
		unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseInline converts a span of source text into inline nodes.
func (p *parser) parseInline(s string) []Node {
	var nodes []Node
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &Text{Text: text.String()})
			text.Reset()
		}
	}
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			r, w := utf8.DecodeRuneInString(s[i+1:])
			if !unicode.IsSpace(r) {
				text.WriteRune(r)
			}
			i += 1 + w

		case c == '`' && i+1 < len(s) && s[i+1] == '`' && canOpen(s, i) && startsContent(s, i+2):
			end := findEnd(s, "``", i+2)
			if end < 0 {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			nodes = append(nodes, &Literal{Text: s[i+2 : end]})
			i = end + 2

		case c == '*' && i+1 < len(s) && s[i+1] == '*' && canOpen(s, i) && startsContent(s, i+2):
			end := findEnd(s, "**", i+2)
			if end < 0 {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			nodes = append(nodes, &Strong{Children: p.parseInline(s[i+2 : end])})
			i = end + 2

		case c == '*' && canOpen(s, i) && startsContent(s, i+1):
			end := findEnd(s, "*", i+1)
			if end < 0 {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			nodes = append(nodes, &Emphasis{Children: p.parseInline(s[i+1 : end])})
			i = end + 1

		case c == ':' && canOpen(s, i):
			name, rest, ok := scanRole(s[i:])
			if !ok {
				text.WriteByte(c)
				i++
				break
			}
			content, width, ok := scanBackticks(rest)
			if !ok {
				text.WriteByte(c)
				i++
				break
			}
			flush()
			nodes = append(nodes, p.roleNode(name, content))
			i += 2 + len(name) + width

		case c == '`' && canOpen(s, i) && startsContent(s, i+1):
			end := findEnd(s, "`", i+1)
			if end < 0 {
				text.WriteByte(c)
				i++
				break
			}
			content := s[i+1 : end]
			flush()
			switch {
			case strings.HasPrefix(s[end+1:], "__"):
				nodes = append(nodes, p.anonymousReference(content))
				i = end + 3
			case strings.HasPrefix(s[end+1:], "_"):
				nodes = append(nodes, p.namedReference(content))
				i = end + 2
			default:
				nodes = append(nodes, &TitleReference{Text: content})
				i = end + 1
			}

		case c == '_' && wordBoundary(s, i+1):
			// Trailing-underscore reference: word_ resolved against a
			// hyperlink target. Unresolved names stay literal text.
			word, start := precedingWord(text.String())
			if word == "" {
				text.WriteByte(c)
				i++
				break
			}
			uri, ok := p.targets[normalizeName(word)]
			if !ok {
				text.WriteByte(c)
				i++
				break
			}
			kept := text.String()[:start]
			text.Reset()
			text.WriteString(kept)
			flush()
			nodes = append(nodes, &Reference{Text: word, URI: uri})
			i++

		default:
			r, w := utf8.DecodeRuneInString(s[i:])
			text.WriteRune(r)
			i += w
		}
	}
	flush()
	return nodes
}

// scanRole matches ":name:`" at the start of s and returns the role name and
// the remainder beginning at the backtick.
func scanRole(s string) (name, rest string, ok bool) {
	if len(s) < 4 || s[0] != ':' {
		return "", "", false
	}
	j := 1
	for j < len(s) {
		r, w := utf8.DecodeRuneInString(s[j:])
		if !isRoleNameChar(r) {
			break
		}
		j += w
	}
	// The closing colon is itself a valid name character, so the scan
	// swallows it; back off one position when the backtick follows.
	if j > 2 && j < len(s) && s[j] == '`' && s[j-1] == ':' {
		j--
	}
	if j == 1 || j+1 >= len(s) || s[j] != ':' || s[j+1] != '`' {
		return "", "", false
	}
	return s[1:j], s[j+1:], true
}

// scanBackticks consumes `content` at the start of s, returning the content
// and total width consumed including both backticks.
func scanBackticks(s string) (content string, width int, ok bool) {
	if len(s) < 3 || s[0] != '`' || !startsContent(s, 1) {
		return "", 0, false
	}
	end := findEnd(s, "`", 1)
	if end < 0 {
		return "", 0, false
	}
	return s[1:end], end + 1, true
}

// roleNode materializes a custom inline role. The kbd role is a raw-HTML
// passthrough; its text is intentionally not escaped beyond what the caller
// supplies. Unknown roles degrade to plain text rather than erroring.
func (p *parser) roleNode(name, content string) Node {
	switch name {
	case "kbd":
		return &RawHTML{Text: "<kbd>" + content + "</kbd>"}
	case "code":
		return &Literal{Text: content}
	default:
		p.warnf(LevelError, "no role entry for %q", name)
		return &Text{Text: content}
	}
}

// namedReference resolves `text`_ and `text <uri>`_ forms.
func (p *parser) namedReference(content string) Node {
	if text, uri, ok := splitEmbeddedURI(content); ok {
		return &Reference{Text: text, URI: uri}
	}
	if uri, ok := p.targets[normalizeName(content)]; ok {
		return &Reference{Text: content, URI: uri}
	}
	p.warnf(LevelError, "unknown target name %q", content)
	return &Text{Text: content}
}

// anonymousReference resolves `text`__ against the anonymous target queue.
func (p *parser) anonymousReference(content string) Node {
	if text, uri, ok := splitEmbeddedURI(content); ok {
		return &Reference{Text: text, URI: uri}
	}
	if len(p.anonURIs) > 0 {
		uri := p.anonURIs[0]
		p.anonURIs = p.anonURIs[1:]
		return &Reference{Text: content, URI: uri}
	}
	p.warnf(LevelError, "too many anonymous references")
	return &Text{Text: content}
}

// splitEmbeddedURI recognizes the "text <uri>" embedded-target form.
func splitEmbeddedURI(content string) (text, uri string, ok bool) {
	if !strings.HasSuffix(content, ">") {
		return "", "", false
	}
	open := strings.LastIndex(content, "<")
	if open <= 0 {
		return "", "", false
	}
	text = strings.TrimRight(content[:open], " ")
	uri = content[open+1 : len(content)-1]
	if text == "" || uri == "" || strings.ContainsAny(uri, " ") {
		return "", "", false
	}
	return text, uri, true
}

// normalizeName canonicalizes a reference name: case-folded with whitespace
// runs collapsed to single spaces.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// wordBoundary reports whether position i is past the end of a word.
func wordBoundary(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}

// precedingWord returns the trailing word of s and its start offset.
func precedingWord(s string) (word string, start int) {
	end := len(s)
	i := end
	for i > 0 {
		r, w := utf8.DecodeLastRuneInString(s[:i])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-') {
			break
		}
		i -= w
	}
	return s[i:end], i
}
