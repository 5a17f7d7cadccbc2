package markup

import (
	"context"
	"strings"
	"testing"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		opts         []Option
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "document title",
			input: "Title\n=====\n\nBody text.\n",
			wantContains: []string{
				`<h1 class="title">Title</h1>`,
				"<p>Body text.</p>",
			},
			wantNot: []string{
				"<div",
				"<a name=",
			},
		},
		{
			name:  "section heading with anchor",
			input: "Intro.\n\nUsage\n=====\n\nDetails.\n",
			wantContains: []string{
				`<a name="usage"></a>`,
				"<h2>Usage</h2>",
				"<p>Details.</p>",
			},
			wantNot: []string{
				"<section",
				"<div",
			},
		},
		{
			name:  "nested section heading levels",
			input: "Intro.\n\nTop\n===\n\nSub\n---\n\ntext\n",
			wantContains: []string{
				"<h2>Top</h2>",
				"<h3>Sub</h3>",
			},
		},
		{
			name:  "unknown directive is displayed",
			input: ".. sidebar:: note\n   body line\n",
			wantContains: []string{
				`<pre class="unknown_directive">body line</pre>`,
			},
		},
		{
			name:  "unknown directive hidden after display off",
			input: ".. github display off\n\n.. sidebar::\n   hidden body\n",
			wantNot: []string{
				"hidden body",
				"unknown_directive",
			},
		},
		{
			name:  "comment body is displayed",
			input: ".. github display on\n   L1\n   L2\n",
			wantContains: []string{
				"<pre class=\"comment\">L1\nL2</pre>",
			},
		},
		{
			name:  "empty comment renders nothing",
			input: "before\n\n..\n\nafter\n",
			wantContains: []string{
				"<p>before</p>",
				"<p>after</p>",
			},
			wantNot: []string{
				"<pre",
			},
		},
		{
			name:  "code directive carries lang",
			input: ".. code:: python\n\n   print(1)\n",
			wantContains: []string{
				`<pre lang="python">print(1)</pre>`,
			},
		},
		{
			name:  "highlight directive sets default lang",
			input: ".. highlight:: ruby\n\nBefore::\n\n   puts 1\n",
			wantContains: []string{
				`<pre lang="ruby">puts 1</pre>`,
			},
		},
		{
			name:  "doctest block",
			input: ">>> 1 + 1\n2\n",
			wantContains: []string{
				`<pre lang="pycon">&gt;&gt;&gt; 1 + 1` + "\n2</pre>",
			},
		},
		{
			name:  "doctest directive pins generic lang",
			input: ".. doctest:: group\n\n   >>> x\n",
			wantContains: []string{
				`<pre lang="text">&gt;&gt;&gt; x</pre>`,
			},
			wantNot: []string{
				"pycon",
			},
		},
		{
			name:  "literal block escapes html",
			input: "Shown::\n\n   <b>&\n",
			wantContains: []string{
				"<pre>&lt;b&gt;&amp;</pre>",
			},
		},
		{
			name:  "kbd role passes through raw",
			input: "Press :kbd:`Ctrl+C` to stop.\n",
			wantContains: []string{
				"<p>Press <kbd>Ctrl+C</kbd> to stop.</p>",
			},
		},
		{
			name:  "inline literal uses code element",
			input: "Run ``go vet`` first.\n",
			wantContains: []string{
				"<code>go vet</code>",
			},
			wantNot: []string{
				"<tt",
			},
		},
		{
			name:  "emphasis strong and cite",
			input: "*em* **st** `Cited Work`\n",
			wantContains: []string{
				"<em>em</em>",
				"<strong>st</strong>",
				"<cite>Cited Work</cite>",
			},
		},
		{
			name:  "hyperlink reference",
			input: "See `docs <https://example.com>`_ now.\n",
			wantContains: []string{
				`<a href="https://example.com">docs</a>`,
			},
		},
		{
			name:  "image with attributes",
			input: ".. image:: foo.svg\n   :alt: diagram\n   :width: 200\n",
			wantContains: []string{
				`<img src="foo.svg" alt="diagram" width="200" />`,
			},
			wantNot: []string{
				"<object",
			},
		},
		{
			name:  "image with target",
			input: ".. image:: foo.png\n   :target: https://example.com\n",
			wantContains: []string{
				`<a href="https://example.com"><img src="foo.png" /></a>`,
			},
		},
		{
			name:  "simple table",
			input: "=====  =====\nName   Value\n=====  =====\nfoo    1\n=====  =====\n",
			wantContains: []string{
				`<table class="docutils">`,
				"<thead>",
				"<tr><th>Name</th><th>Value</th></tr>",
				"<tbody>",
				"<tr><td>foo</td><td>1</td></tr>",
			},
		},
		{
			name:  "table style class",
			input: "==  ==\na   b\n==  ==\n",
			opts:  []Option{WithTableStyle("borderless")},
			wantContains: []string{
				`<table class="docutils borderless">`,
			},
		},
		{
			name:  "bullet list compacts single paragraphs",
			input: "- one\n- two\n",
			wantContains: []string{
				"<ul>\n<li>one</li>\n<li>two</li>\n</ul>",
			},
		},
		{
			name:  "enumerated list start",
			input: "3. three\n4. four\n",
			wantContains: []string{
				`<ol start="3">`,
				"<li>three</li>",
			},
		},
		{
			name:  "field list",
			input: ":Author: Jane Doe\n",
			wantContains: []string{
				`<table class="docutils field-list"`,
				`<th class="field-name">Author:</th>`,
				`<td class="field-body">Jane Doe</td>`,
			},
		},
		{
			name:  "raw html passthrough",
			input: ".. raw:: html\n\n   <video src=\"x.mp4\"></video>\n",
			wantContains: []string{
				`<video src="x.mp4"></video>`,
			},
			wantNot: []string{
				"&lt;video",
			},
		},
		{
			name:  "raw non-html format dropped",
			input: ".. raw:: latex\n\n   \\sloppy\n",
			wantNot: []string{
				"sloppy",
			},
		},
		{
			name:  "math block as literal tex",
			input: ".. math::\n\n   e^{i\\pi} = -1\n",
			wantContains: []string{
				`<pre class="math">`,
				`e^{i\pi} = -1`,
			},
		},
		{
			name:  "transition",
			input: "a\n\n----\n\nb\n",
			wantContains: []string{
				"<hr />",
			},
		},
		{
			name:  "block quote",
			input: "Lead.\n\n   quoted words\n",
			wantContains: []string{
				"<blockquote>",
				"<p>quoted words</p>",
				"</blockquote>",
			},
		},
		{
			name:  "include directive surfaces visibly",
			input: ".. include:: other.rst\n",
			wantContains: []string{
				`<pre class="unknown_directive">`,
			},
		},
		{
			name:  "parse diagnostics suppressed by default",
			input: "Title\n==\n\nbody\n",
			wantNot: []string{
				"system-message",
			},
		},
		{
			name:  "unicode content",
			input: "日本語のテキスト。\n",
			wantContains: []string{
				"日本語のテキスト。",
			},
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConverter(tt.opts...)
			got, err := c.Convert(ctx, Input{Source: tt.input})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Convert() result should contain %q\nGot:\n%s", want, got)
				}
			}
			for _, notWant := range tt.wantNot {
				if strings.Contains(got, notWant) {
					t.Errorf("Convert() result should NOT contain %q\nGot:\n%s", notWant, got)
				}
			}
		})
	}
}

func TestConverter_ConvertExactFragments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "title and paragraph",
			input: "Title\n=====\n\nBody.\n",
			want:  "<h1 class=\"title\">Title</h1>\n<p>Body.</p>",
		},
		{
			name:  "lone paragraph",
			input: "Just text.\n",
			want:  "<p>Just text.</p>",
		},
		{
			name:  "unknown directive block",
			input: ".. foo::\n   bar baz\n",
			want:  "<pre class=\"unknown_directive\">bar baz</pre>",
		},
		{
			name:  "kbd paragraph",
			input: ":kbd:`Enter`\n",
			want:  "<p><kbd>Enter</kbd></p>",
		},
	}

	ctx := context.Background()
	c := NewConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.Convert(ctx, Input{Source: tt.input})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Convert() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConverter_InitialHeaderLevel(t *testing.T) {
	t.Parallel()

	c := NewConverter(WithInitialHeaderLevel(1))
	got, err := c.Convert(context.Background(), Input{Source: "Intro.\n\nUsage\n=====\n\ntext\n"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(got, "<h1>Usage</h1>") {
		t.Errorf("expected <h1> heading, got:\n%s", got)
	}
}

func TestConverter_HeaderLevelCap(t *testing.T) {
	t.Parallel()

	input := "Intro.\n\nA\n==\n\nB\n--\n\nC\n~~\n\nD\n^^\n\nE\n++\n\nF\n\"\"\n\ntext\n"

	c := NewConverter()
	got, err := c.Convert(context.Background(), Input{Source: input})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(got, "<h6>F</h6>") {
		t.Errorf("deep sections should cap at <h6>, got:\n%s", got)
	}
	if strings.Contains(got, "<h7>") {
		t.Errorf("heading level must never exceed 6, got:\n%s", got)
	}
}

func TestConverter_ReportLevelSurfacesDiagnostics(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.ReportLevel = ReportWarning
	c := NewConverter(WithSettings(s))
	got, err := c.Convert(context.Background(), Input{Source: "Title\n==\n\nbody\n"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !strings.Contains(got, "system-message") {
		t.Errorf("lowered report level should surface diagnostics, got:\n%s", got)
	}
}
