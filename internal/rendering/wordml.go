package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"text/template"
)

//go:embed skeleton/*.xml skeleton/*.tmpl
var skeletonFS embed.FS

var (
	templatesOnce sync.Once
	templates     *template.Template
	templatesErr  error
)

type documentView struct {
	Page   PageSetup
	Blocks []blockView
}

type blockView struct {
	Paragraph *paragraphView
	Table     *tableView
}

type paragraphView struct {
	StyleID   string
	Numbering *numberingView
	Spacing   *spacingView
	Alignment Alignment
	Inlines   []inlineView
}

type numberingView struct {
	Level int
	NumID int
}

type spacingView struct {
	Before string
	After  string
	Line   string
}

type inlineView struct {
	Run  *Run
	Link *linkView
}

type linkView struct {
	Instruction string
	Runs        []*Run
}

type tableView struct {
	WidthTwips int
	Fixed      bool
	Borderless bool
	Columns    []int
	Rows       []rowView
}

type rowView struct {
	HeightTwips int
	HeightRule  string
	Cells       []cellView
}

type cellView struct {
	WidthTwips    int
	MarginTwips   int
	VerticalAlign string
	Paragraphs    []*paragraphView
}

type numberingDefView struct {
	NumID      int
	AbstractID int
	Levels     []NumberingLevel
}

// loadTemplates parses the embedded WordprocessingML templates once.
func loadTemplates() (*template.Template, error) {
	templatesOnce.Do(func() {
		tmpl, err := template.New("wordml").Funcs(template.FuncMap{
			"xml": EscapeXML,
		}).ParseFS(skeletonFS, "skeleton/*.tmpl")
		if err != nil {
			templatesErr = &TemplateError{Template: "skeleton/*.tmpl", Cause: err}
			return
		}
		templates = tmpl
	})
	return templates, templatesErr
}

// renderDocumentXML renders the main document part.
func renderDocumentXML(doc *Document) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}

	numIDs := numberingIDs(doc.Numbering)
	view := documentView{Page: doc.Page, Blocks: make([]blockView, 0, len(doc.Blocks))}
	for i, block := range doc.Blocks {
		switch b := block.(type) {
		case *Paragraph:
			p, err := paragraphToView(b, numIDs)
			if err != nil {
				return "", &BlockError{Index: i, Cause: err}
			}
			view.Blocks = append(view.Blocks, blockView{Paragraph: p})
		case *Table:
			t, err := tableToView(b, numIDs)
			if err != nil {
				return "", &BlockError{Index: i, Cause: err}
			}
			view.Blocks = append(view.Blocks, blockView{Table: t})
		default:
			return "", &BlockError{Index: i, Cause: fmt.Errorf("unsupported type %T", block)}
		}
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, "document", view); err != nil {
		return "", &TemplateError{Template: "document.xml.tmpl", Cause: err}
	}
	return out.String(), nil
}

// renderNumberingXML renders the numbering part for the document's list definitions.
func renderNumberingXML(defs []NumberingDef) ([]byte, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	views := make([]numberingDefView, len(defs))
	for i, def := range defs {
		views[i] = numberingDefView{NumID: i + 1, AbstractID: i, Levels: def.Levels}
	}

	var out bytes.Buffer
	if err := tmpl.ExecuteTemplate(&out, "numbering.xml.tmpl", views); err != nil {
		return nil, &TemplateError{Template: "numbering.xml.tmpl", Cause: err}
	}
	return out.Bytes(), nil
}

func numberingIDs(defs []NumberingDef) map[string]int {
	ids := make(map[string]int, len(defs))
	for i, def := range defs {
		ids[def.Reference] = i + 1
	}
	return ids
}

func paragraphToView(p *Paragraph, numIDs map[string]int) (*paragraphView, error) {
	view := &paragraphView{
		StyleID:   p.Style.StyleID,
		Alignment: p.Style.Alignment,
		Inlines:   make([]inlineView, 0, len(p.Children)),
	}

	if ref := p.Style.Numbering; ref != nil {
		id, ok := numIDs[ref.Reference]
		if !ok {
			return nil, fmt.Errorf("unknown numbering reference %q", ref.Reference)
		}
		view.Numbering = &numberingView{Level: ref.Level, NumID: id}
	}

	if s := p.Style.Spacing; s != nil {
		view.Spacing = &spacingView{
			Before: optionalInt(s.Before),
			After:  optionalInt(s.After),
			Line:   optionalInt(s.Line),
		}
	}

	for _, child := range p.Children {
		switch c := child.(type) {
		case *Run:
			view.Inlines = append(view.Inlines, inlineView{Run: c})
		case *Hyperlink:
			view.Inlines = append(view.Inlines, inlineView{Link: &linkView{
				Instruction: hyperlinkInstruction(c.Target),
				Runs:        c.Runs,
			}})
		default:
			return nil, fmt.Errorf("unsupported inline type %T", child)
		}
	}
	return view, nil
}

func tableToView(t *Table, numIDs map[string]int) (*tableView, error) {
	view := &tableView{
		WidthTwips: t.WidthTwips,
		Fixed:      t.Fixed,
		Borderless: t.Borderless,
		Columns:    t.Columns,
		Rows:       make([]rowView, len(t.Rows)),
	}

	for i, row := range t.Rows {
		rv := rowView{HeightTwips: row.HeightTwips, HeightRule: row.HeightRule, Cells: make([]cellView, len(row.Cells))}
		for j, cell := range row.Cells {
			cv := cellView{
				WidthTwips:    cell.WidthTwips,
				MarginTwips:   cell.MarginTwips,
				VerticalAlign: cell.VerticalAlign,
			}
			// A cell must end with a paragraph.
			paragraphs := cell.Paragraphs
			if len(paragraphs) == 0 {
				paragraphs = []*Paragraph{{}}
			}
			for _, p := range paragraphs {
				pv, err := paragraphToView(p, numIDs)
				if err != nil {
					return nil, fmt.Errorf("row %d cell %d: %w", i, j, err)
				}
				cv.Paragraphs = append(cv.Paragraphs, pv)
			}
			rv.Cells[j] = cv
		}
		view.Rows[i] = rv
	}
	return view, nil
}

// hyperlinkInstruction builds a HYPERLINK field code for target.
func hyperlinkInstruction(target string) string {
	return ` HYPERLINK "` + strings.ReplaceAll(target, `"`, "%22") + `" `
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
