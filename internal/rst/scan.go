package rst

import (
	"strings"
)

const tabstop = 8

// Normalize prepares raw source for line-based parsing: carriage returns are
// stripped and tabs expanded so column arithmetic only ever sees spaces.
func Normalize(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	if !strings.Contains(src, "\t") {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	col := 0
	for _, r := range src {
		switch r {
		case '\t':
			n := tabstop - col%tabstop
			for i := 0; i < n; i++ {
				b.WriteByte(' ')
			}
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// splitLines breaks normalized source into lines without terminators.
func splitLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	return strings.Split(src, "\n")
}

// isBlank reports whether the line contains only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// indentOf returns the leading-space count of a line. Blank lines report a
// sentinel larger than any real indent so they never terminate a block.
func indentOf(s string) int {
	if isBlank(s) {
		return 1 << 30
	}
	return len(s) - len(strings.TrimLeft(s, " "))
}

// dedent strips the minimal common indent of the non-blank lines and trims
// leading and trailing blank lines.
func dedent(lines []string) []string {
	minIndent := -1
	for _, l := range lines {
		if isBlank(l) {
			continue
		}
		if in := indentOf(l); minIndent < 0 || in < minIndent {
			minIndent = in
		}
	}
	if minIndent < 0 {
		return nil
	}
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if isBlank(l) {
			out = append(out, "")
			continue
		}
		out = append(out, l[minIndent:])
	}
	for len(out) > 0 && out[0] == "" {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

// adornmentChars are the punctuation characters valid in section adornments
// and transitions.
const adornmentChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// isAdornment reports whether the line is a run of a single adornment
// character, and returns that character.
func isAdornment(s string) (byte, bool) {
	s = strings.TrimRight(s, " ")
	if len(s) < 2 || strings.IndexByte(adornmentChars, s[0]) < 0 {
		return 0, false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return 0, false
		}
	}
	return s[0], true
}

// isTransition reports whether the line is a transition marker: a run of four
// or more identical adornment characters.
func isTransition(s string) bool {
	c, ok := isAdornment(s)
	return ok && c != 0 && len(strings.TrimRight(s, " ")) >= 4
}

// slug derives an HTML identifier from title text the way docutils does:
// lowercase, alphanumeric runs joined by single hyphens.
func slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
