package rst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func inlineNodes(t *testing.T, src string) []Node {
	t.Helper()
	p := &parser{display: true, targets: make(map[string]string), ids: make(map[string]bool)}
	return p.parseInline(src)
}

func TestInlinePlainText(t *testing.T) {
	nodes := inlineNodes(t, "just words")
	require.Len(t, nodes, 1)
	require.Equal(t, "just words", nodes[0].(*Text).Text)
}

func TestInlineEmphasisAndStrong(t *testing.T) {
	nodes := inlineNodes(t, "a *b* and **c**")
	require.Len(t, nodes, 4)
	require.Equal(t, "a ", nodes[0].(*Text).Text)
	em := nodes[1].(*Emphasis)
	require.Equal(t, "b", em.Children[0].(*Text).Text)
	st := nodes[3].(*Strong)
	require.Equal(t, "c", st.Children[0].(*Text).Text)
}

func TestInlineLiteral(t *testing.T) {
	nodes := inlineNodes(t, "run ``go vet`` now")
	require.Len(t, nodes, 3)
	require.Equal(t, "go vet", nodes[1].(*Literal).Text)
}

func TestInlineLiteralKeepsMarkupCharacters(t *testing.T) {
	nodes := inlineNodes(t, "``*not emphasis*``")
	require.Len(t, nodes, 1)
	require.Equal(t, "*not emphasis*", nodes[0].(*Literal).Text)
}

func TestInlineUnclosedMarkupStaysLiteral(t *testing.T) {
	nodes := inlineNodes(t, "a *b and more")
	require.Len(t, nodes, 1)
	require.Equal(t, "a *b and more", nodes[0].(*Text).Text)
}

func TestInlineMidwordAsteriskIgnored(t *testing.T) {
	nodes := inlineNodes(t, "2*3*4")
	require.Len(t, nodes, 1)
	require.Equal(t, "2*3*4", nodes[0].(*Text).Text)
}

func TestInlineBackslashEscape(t *testing.T) {
	nodes := inlineNodes(t, `\*literal\* star`)
	require.Len(t, nodes, 1)
	require.Equal(t, "*literal* star", nodes[0].(*Text).Text)
}

func TestInlineKbdRole(t *testing.T) {
	nodes := inlineNodes(t, "press :kbd:`Ctrl+C` to stop")
	require.Len(t, nodes, 3)
	raw := nodes[1].(*RawHTML)
	require.Equal(t, "<kbd>Ctrl+C</kbd>", raw.Text)
}

func TestInlineCodeRole(t *testing.T) {
	nodes := inlineNodes(t, ":code:`x := 1`")
	require.Len(t, nodes, 1)
	require.Equal(t, "x := 1", nodes[0].(*Literal).Text)
}

func TestInlineDomainRoleName(t *testing.T) {
	p := &parser{display: true, targets: make(map[string]string), ids: make(map[string]bool)}
	nodes := p.parseInline(":py:func:`len`")
	// Unknown roles keep their content as plain text and record an error.
	require.Len(t, nodes, 1)
	require.Equal(t, "len", nodes[0].(*Text).Text)
	require.NotEmpty(t, p.messages)
	require.Equal(t, LevelError, p.messages[0].Level)
}

func TestInlineTitleReference(t *testing.T) {
	nodes := inlineNodes(t, "see `The Go Programming Language`")
	ref := nodes[1].(*TitleReference)
	require.Equal(t, "The Go Programming Language", ref.Text)
}

func TestInlineEmbeddedURIReference(t *testing.T) {
	nodes := inlineNodes(t, "see `docs <https://example.com/docs>`_ here")
	ref := nodes[1].(*Reference)
	require.Equal(t, "docs", ref.Text)
	require.Equal(t, "https://example.com/docs", ref.URI)
}

func TestInlineAnonymousReference(t *testing.T) {
	p := &parser{
		display:  true,
		targets:  make(map[string]string),
		ids:      make(map[string]bool),
		anonURIs: []string{"https://example.com"},
	}
	nodes := p.parseInline("`click`__")
	ref := nodes[0].(*Reference)
	require.Equal(t, "click", ref.Text)
	require.Equal(t, "https://example.com", ref.URI)
	require.Empty(t, p.anonURIs)
}

func TestInlineTrailingUnderscoreReference(t *testing.T) {
	p := &parser{
		display: true,
		targets: map[string]string{"home": "https://example.com"},
		ids:     make(map[string]bool),
	}
	nodes := p.parseInline("go home_ now")
	require.Len(t, nodes, 3)
	ref := nodes[1].(*Reference)
	require.Equal(t, "home", ref.Text)
	require.Equal(t, "https://example.com", ref.URI)
}

func TestInlineUnresolvedUnderscoreStaysText(t *testing.T) {
	nodes := inlineNodes(t, "snake_case name")
	require.Len(t, nodes, 1)
	require.Equal(t, "snake_case name", nodes[0].(*Text).Text)
}

func TestSplitEmbeddedURI(t *testing.T) {
	tests := []struct {
		in   string
		text string
		uri  string
		ok   bool
	}{
		{"docs <https://example.com>", "docs", "https://example.com", true},
		{"no target here", "", "", false},
		{"<https://example.com>", "", "", false},
		{"bad <a b>", "", "", false},
	}
	for _, tt := range tests {
		text, uri, ok := splitEmbeddedURI(tt.in)
		require.Equal(t, tt.ok, ok, tt.in)
		require.Equal(t, tt.text, text, tt.in)
		require.Equal(t, tt.uri, uri, tt.in)
	}
}
