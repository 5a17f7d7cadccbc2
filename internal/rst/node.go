// Package rst parses a pragmatic subset of reStructuredText into a node
// tree. The tree deliberately models only the constructs the HTML layer
// customizes; everything else is folded into the generic nodes below.
package rst

// Node is implemented by every element of the parsed tree.
type Node interface {
	node()
}

// Document is the root of a parsed tree.
type Document struct {
	// Title holds the promoted document title when the doctitle transform
	// applies, nil otherwise.
	Title []Node

	// HighlightLanguage is the default language recorded by a highlight
	// directive, empty when none appeared.
	HighlightLanguage string

	// Messages collects parse diagnostics. Rendering filters them by
	// report level.
	Messages []Message

	Children []Node
}

// Section groups a title and body under a heading depth. Depth starts at 1
// for the outermost sections (2 when nested under a promoted title).
type Section struct {
	Depth    int
	IDs      []string
	Title    []Node // inline content
	Children []Node
}

// Paragraph holds inline content.
type Paragraph struct {
	Children []Node
}

// LiteralBlock is preformatted text. Classes carry rendering hints: a
// ["code", lang] pair marks an annotated code block, "unknown_directive" and
// "comment" mark blocks surfaced by the display policy.
type LiteralBlock struct {
	Classes []string
	Text    string
}

// DoctestBlock is a `>>>` interactive session block.
type DoctestBlock struct {
	Text string
}

// Comment is a suppressed comment. It renders to nothing but keeps its place
// in the tree because explicit-markup blocks act as structural delimiters.
type Comment struct{}

// Transition is a horizontal divider.
type Transition struct{}

// BlockQuote holds indented body content.
type BlockQuote struct {
	Children []Node
}

// BulletList and EnumeratedList hold list items.
type BulletList struct {
	Items []*ListItem
}

type EnumeratedList struct {
	Start int
	Items []*ListItem
}

type ListItem struct {
	Children []Node
}

// FieldList models `:name: value` runs.
type FieldList struct {
	Fields []*Field
}

type Field struct {
	Name string
	Body []Node
}

// Table is a simple table. Head is nil when the table has no header band.
type Table struct {
	Head []*TableRow
	Body []*TableRow
}

type TableRow struct {
	Cells []*TableCell
}

type TableCell struct {
	Children []Node
}

// Image is produced by the image directive.
type Image struct {
	URI    string
	Alt    string
	Height string
	Width  string
	Target string
	Class  string
}

// Raw is format-specific passthrough content from the raw directive. Writers
// for other formats skip it.
type Raw struct {
	Format string
	Text   string
}

// MathBlock holds display math; the output mode decides its framing.
type MathBlock struct {
	Text string
}

// Inline nodes.

// Text is plain inline text, unescaped.
type Text struct {
	Text string
}

type Emphasis struct {
	Children []Node
}

type Strong struct {
	Children []Node
}

// Literal is an inline literal span (double backticks or the code role).
type Literal struct {
	Text string
}

// RawHTML is inline passthrough markup, emitted verbatim by HTML writers.
// The kbd role produces it; the text is the caller's responsibility.
type RawHTML struct {
	Text string
}

// Reference is a hyperlink reference with resolved URI.
type Reference struct {
	Text string
	URI  string
}

// TitleReference is default-role interpreted text (`like this`).
type TitleReference struct {
	Text string
}

func (*Document) node()       {}
func (*Section) node()        {}
func (*Paragraph) node()      {}
func (*LiteralBlock) node()   {}
func (*DoctestBlock) node()   {}
func (*Comment) node()        {}
func (*Transition) node()     {}
func (*BlockQuote) node()     {}
func (*BulletList) node()     {}
func (*EnumeratedList) node() {}
func (*ListItem) node()       {}
func (*FieldList) node()      {}
func (*Field) node()          {}
func (*Table) node()          {}
func (*TableRow) node()       {}
func (*TableCell) node()      {}
func (*Image) node()          {}
func (*Raw) node()            {}
func (*MathBlock) node()      {}
func (*Text) node()           {}
func (*Emphasis) node()       {}
func (*Strong) node()         {}
func (*Literal) node()        {}
func (*RawHTML) node()        {}
func (*Reference) node()      {}
func (*TitleReference) node() {}

// Message severity levels follow the docutils convention so the report-level
// setting keeps its conventional meaning (1=info .. 4=severe, 5=none).
const (
	LevelInfo = iota + 1
	LevelWarning
	LevelError
	LevelSevere
)

// Message is a parse diagnostic tied to a source line.
type Message struct {
	Level int
	Line  int
	Text  string
}
