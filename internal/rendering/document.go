// Package rendering builds the styled resume document and packages it as a .docx file.
package rendering

// Document is a styled, library-neutral document tree.
// It holds no I/O state; WriteDOCX turns it into WordprocessingML.
type Document struct {
	Page      PageSetup
	Numbering []NumberingDef
	Blocks    []Block
}

// PageSetup describes page size and margins in twips.
type PageSetup struct {
	WidthTwips   int
	HeightTwips  int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// NumberingDef is a named list definition referenced by paragraphs.
type NumberingDef struct {
	Reference string
	Levels    []NumberingLevel
}

// NumberingLevel configures one level of a list.
type NumberingLevel struct {
	Level         int
	Format        string
	Text          string
	Alignment     Alignment
	IndentLeft    int
	IndentHanging int
}

// Alignment is a paragraph justification value.
type Alignment string

// Alignments used by the resume layout.
const (
	AlignLeft      Alignment = "left"
	AlignJustified Alignment = "both"
)

// Block is a top-level body element: *Paragraph or *Table.
type Block interface {
	isBlock()
}

// Inline is a paragraph child: *Run or *Hyperlink.
type Inline interface {
	isInline()
}

// Paragraph is a block of inline content.
type Paragraph struct {
	Style    ParagraphStyle
	Children []Inline
}

// ParagraphStyle holds paragraph level formatting. Zero values are omitted from output.
type ParagraphStyle struct {
	StyleID   string
	Alignment Alignment
	Spacing   *Spacing
	Numbering *NumberingRef
}

// Spacing is paragraph spacing in twips. Nil fields are left to the style.
type Spacing struct {
	Before *int
	After  *int
	Line   *int
}

// NumberingRef attaches a paragraph to a list definition.
type NumberingRef struct {
	Reference string
	Level     int
}

// Run is a span of text sharing one set of character properties.
type Run struct {
	Text  string
	Props RunProps
}

// RunProps holds character formatting. Empty Font or Color and a zero size are omitted.
type RunProps struct {
	Font       string
	SizeHalfPt int
	Color      string
	Bold       bool
	Italic     bool
	Underline  bool
}

// Hyperlink wraps runs that link to an external target.
type Hyperlink struct {
	Target string
	Runs   []*Run
}

// Table is a fixed grid of cells.
type Table struct {
	WidthTwips int
	Fixed      bool
	Borderless bool
	Columns    []int
	Rows       []TableRow
}

// TableRow is one table row.
type TableRow struct {
	HeightTwips int
	HeightRule  string
	Cells       []TableCell
}

// TableCell holds the paragraphs of one cell.
type TableCell struct {
	WidthTwips    int
	MarginTwips   int
	VerticalAlign string
	Paragraphs    []*Paragraph
}

func (*Paragraph) isBlock()  {}
func (*Table) isBlock()      {}
func (*Run) isInline()       {}
func (*Hyperlink) isInline() {}

// Text returns the concatenated text of the paragraph's runs and links.
func (p *Paragraph) Text() string {
	var out string
	for _, child := range p.Children {
		switch c := child.(type) {
		case *Run:
			out += c.Text
		case *Hyperlink:
			for _, r := range c.Runs {
				out += r.Text
			}
		}
	}
	return out
}

func twips(v int) *int {
	return &v
}
