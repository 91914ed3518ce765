package rendering

// Presentation constants for the resume layout.
const (
	FontName = "Proxima Nova"

	ColorTitle   = "353744"
	ColorSection = "3C77C1"
	ColorLink    = "1155cc"
	ColorMuted   = "666666"
	ColorBody    = "000000"

	SizeName    = 40
	SizeHeading = 26
	SizeBody    = 22
	SizeDate    = 20

	PageWidth    = 11906
	PageHeight   = 16838
	PageMargin   = 430
	ContentWidth = PageWidth - PageMargin*2

	SkillLabelWidth = 1770
	SkillValueWidth = 9390
	SkillRowHeight  = 331

	BulletReference     = "resume-bullets"
	BulletText          = "•"
	BulletIndentLeft    = 425
	BulletIndentHanging = 300

	// EntrySeparator joins company and role, or school and degree.
	EntrySeparator = " — "
)

// Paragraph style IDs defined in the package skeleton's styles part.
const (
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
	StyleHeading4 = "Heading4"
)

func headingProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeHeading, Color: ColorSection, Bold: true}
}

func bodyProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeBody, Color: ColorBody}
}

func labelProps() RunProps {
	return RunProps{SizeHalfPt: SizeBody, Color: ColorMuted}
}

func linkProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeBody, Color: ColorLink, Underline: true}
}

func entryTitleProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeBody, Color: ColorTitle, Bold: true}
}

func entrySubtitleProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeBody, Color: ColorMuted, Italic: true}
}

func dateProps() RunProps {
	return RunProps{Font: FontName, SizeHalfPt: SizeDate, Color: ColorMuted}
}

func bulletNumbering() NumberingDef {
	return NumberingDef{
		Reference: BulletReference,
		Levels: []NumberingLevel{{
			Level:         0,
			Format:        "bullet",
			Text:          BulletText,
			Alignment:     AlignLeft,
			IndentLeft:    BulletIndentLeft,
			IndentHanging: BulletIndentHanging,
		}},
	}
}

func a4Page() PageSetup {
	return PageSetup{
		WidthTwips:   PageWidth,
		HeightTwips:  PageHeight,
		MarginTop:    PageMargin,
		MarginRight:  PageMargin,
		MarginBottom: 0,
		MarginLeft:   PageMargin,
	}
}
