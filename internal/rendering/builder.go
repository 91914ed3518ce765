package rendering

import (
	"strings"

	"github.com/jonathan/resume-studio/internal/markdown"
	"github.com/jonathan/resume-studio/internal/types"
)

// Section headings, in document order.
const (
	HeadingProfile    = "PERSONAL PROFILE"
	HeadingSkills     = "TECHNICAL SKILLS"
	HeadingExperience = "EXPERIENCE"
	HeadingEducation  = "EDUCATION"
)

// Build maps a resume record onto a styled document tree.
// The result depends only on data.
func Build(data types.ResumeData) *Document {
	doc := &Document{
		Page:      a4Page(),
		Numbering: []NumberingDef{bulletNumbering()},
	}

	doc.Blocks = append(doc.Blocks, headerBlocks(data.Header)...)

	doc.Blocks = append(doc.Blocks, sectionHeading(HeadingProfile), profileParagraph(data))

	doc.Blocks = append(doc.Blocks, sectionHeading(HeadingSkills))
	if len(data.TechnicalSkills) > 0 {
		doc.Blocks = append(doc.Blocks, skillsTable(data.TechnicalSkills))
	}

	doc.Blocks = append(doc.Blocks, sectionHeading(HeadingExperience))
	for _, entry := range data.Experience {
		doc.Blocks = append(doc.Blocks, entryBlocks(entry.Company, entry.Role, entry.DateRange, entry.Bullets)...)
	}

	doc.Blocks = append(doc.Blocks, sectionHeading(HeadingEducation))
	for i, entry := range data.Education {
		if i > 0 {
			doc.Blocks = append(doc.Blocks, &Paragraph{Style: ParagraphStyle{Spacing: &Spacing{Before: twips(20)}}})
		}
		doc.Blocks = append(doc.Blocks, entryBlocks(entry.School, entry.Degree, entry.DateRange, entry.Bullets)...)
	}

	return doc
}

func headerBlocks(h types.ResumeHeader) []Block {
	name := &Paragraph{
		Style: ParagraphStyle{Spacing: &Spacing{After: twips(0)}},
		Children: []Inline{
			&Run{Text: h.FullName, Props: RunProps{SizeHalfPt: SizeName, Color: ColorTitle}},
		},
	}

	contact := &Paragraph{
		Style: ParagraphStyle{Spacing: &Spacing{Before: twips(0), Line: twips(240)}},
		Children: []Inline{
			&Run{Text: h.Location + " | " + h.Phone + " | ", Props: labelProps()},
			link(h.Email, "mailto:"+h.Email),
		},
	}

	links := &Paragraph{
		Style: ParagraphStyle{Spacing: &Spacing{Before: twips(0), Line: twips(240)}},
		Children: []Inline{
			&Run{Text: "LinkedIn: ", Props: labelProps()},
			link(h.LinkedInLabel, h.LinkedInURL),
			&Run{Text: " | GitHub: ", Props: labelProps()},
			link(h.GitHubLabel, h.GitHubURL),
		},
	}

	return []Block{name, contact, links}
}

func link(text, target string) *Hyperlink {
	return &Hyperlink{Target: target, Runs: []*Run{{Text: text, Props: linkProps()}}}
}

func sectionHeading(text string) *Paragraph {
	return &Paragraph{
		Style: ParagraphStyle{
			StyleID: StyleHeading1,
			Spacing: &Spacing{Before: twips(160), After: twips(40), Line: twips(240)},
		},
		Children: []Inline{&Run{Text: text, Props: headingProps()}},
	}
}

func profileParagraph(data types.ResumeData) *Paragraph {
	p := &Paragraph{
		Style: ParagraphStyle{
			Alignment: AlignJustified,
			Spacing:   &Spacing{Before: twips(40), Line: twips(240)},
		},
	}

	if data.PersonalProfileHighlight == "" {
		p.Children = []Inline{&Run{Text: data.PersonalProfile, Props: bodyProps()}}
		return p
	}

	highlight := bodyProps()
	highlight.Bold = true
	p.Children = []Inline{
		&Run{Text: data.PersonalProfile + " ", Props: bodyProps()},
		&Run{Text: data.PersonalProfileHighlight, Props: highlight},
	}
	return p
}

func skillsTable(skills []types.TechnicalSkill) *Table {
	table := &Table{
		WidthTwips: ContentWidth,
		Fixed:      true,
		Borderless: true,
		Columns:    []int{SkillLabelWidth, SkillValueWidth},
		Rows:       make([]TableRow, len(skills)),
	}

	labelBase := RunProps{Font: FontName, SizeHalfPt: SizeBody, Color: ColorTitle}
	for i, skill := range skills {
		table.Rows[i] = TableRow{
			HeightTwips: SkillRowHeight,
			HeightRule:  "atLeast",
			Cells: []TableCell{
				skillCell(SkillLabelWidth, skill.Label, labelBase),
				skillCell(SkillValueWidth, skill.Value, bodyProps()),
			},
		}
	}
	return table
}

func skillCell(width int, text string, base RunProps) TableCell {
	return TableCell{
		WidthTwips:    width,
		MarginTwips:   0,
		VerticalAlign: "top",
		Paragraphs: []*Paragraph{{
			Style: ParagraphStyle{
				Alignment: AlignLeft,
				Spacing:   &Spacing{Before: twips(0)},
			},
			Children: emphasisRuns(text, base),
		}},
	}
}

// entryBlocks renders one experience or education entry: title line, date line, bullets.
func entryBlocks(title, subtitle, dateRange string, bullets []string) []Block {
	titleRuns := []Inline{&Run{Text: title, Props: entryTitleProps()}}
	if strings.TrimSpace(subtitle) != "" {
		titleRuns = append(titleRuns,
			&Run{Text: EntrySeparator, Props: entrySubtitleProps()},
			&Run{Text: subtitle, Props: entrySubtitleProps()},
		)
	}

	blocks := []Block{
		&Paragraph{
			Style:    ParagraphStyle{StyleID: StyleHeading2, Spacing: &Spacing{Before: twips(40)}},
			Children: titleRuns,
		},
		&Paragraph{
			Style:    ParagraphStyle{StyleID: StyleHeading4, Spacing: &Spacing{Before: twips(20), Line: twips(240)}},
			Children: []Inline{&Run{Text: dateRange, Props: dateProps()}},
		},
	}

	for _, bullet := range bullets {
		blocks = append(blocks, bulletParagraph(bullet))
	}
	return blocks
}

func bulletParagraph(text string) *Paragraph {
	return &Paragraph{
		Style: ParagraphStyle{
			Alignment: AlignJustified,
			Spacing:   &Spacing{Before: twips(40), Line: twips(240)},
			Numbering: &NumberingRef{Reference: BulletReference, Level: 0},
		},
		Children: emphasisRuns(text, bodyProps()),
	}
}

// emphasisRuns splits text on **bold** spans, applying base to every run.
func emphasisRuns(text string, base RunProps) []Inline {
	segments := markdown.Segments(text)
	runs := make([]Inline, 0, len(segments))
	for _, seg := range segments {
		props := base
		props.Bold = base.Bold || seg.Bold
		runs = append(runs, &Run{Text: seg.Text, Props: props})
	}
	return runs
}
