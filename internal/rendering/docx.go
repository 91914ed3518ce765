package rendering

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/nguyenthenguyen/docx"
)

// ContentType is the media type of a .docx package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const documentPart = "word/document.xml"

// skeletonParts maps package part names to embedded skeleton files, in archive order.
var skeletonParts = []struct {
	name string
	file string
}{
	{"[Content_Types].xml", "skeleton/content_types.xml"},
	{"_rels/.rels", "skeleton/package_rels.xml"},
	{"docProps/core.xml", "skeleton/core.xml"},
	{"word/_rels/document.xml.rels", "skeleton/document_rels.xml"},
	{"word/styles.xml", "skeleton/styles.xml"},
	{"word/settings.xml", "skeleton/settings.xml"},
}

// emptyDocument is the placeholder main part that WriteDOCX replaces.
const emptyDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body/></w:document>`

// WriteDOCX serialises doc as a .docx package to w.
func WriteDOCX(w io.Writer, doc *Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	content, err := renderDocumentXML(doc)
	if err != nil {
		return err
	}

	skeleton, err := packageSkeleton(doc.Numbering)
	if err != nil {
		return err
	}

	replace, err := docx.ReadDocxFromMemory(bytes.NewReader(skeleton), int64(len(skeleton)))
	if err != nil {
		return &PackageError{Op: "open", Cause: err}
	}
	defer func() { _ = replace.Close() }()

	editable := replace.Editable()
	editable.SetContent(content)
	if err := editable.Write(w); err != nil {
		return &PackageError{Op: "write", Cause: err}
	}
	return nil
}

// RenderDOCX builds the resume document for data and returns the .docx bytes.
func RenderDOCX(data types.ResumeData) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDOCX(&buf, Build(data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// packageSkeleton assembles the static package parts, the numbering part and
// a placeholder main document into an in-memory zip archive.
func packageSkeleton(numbering []NumberingDef) ([]byte, error) {
	numberingXML, err := renderNumberingXML(numbering)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, part := range skeletonParts {
		content, err := skeletonFS.ReadFile(part.file)
		if err != nil {
			return nil, &PackageError{Op: "read", Part: part.file, Cause: err}
		}
		if err := writePart(zw, part.name, content); err != nil {
			return nil, err
		}
	}
	if err := writePart(zw, "word/numbering.xml", numberingXML); err != nil {
		return nil, err
	}
	if err := writePart(zw, documentPart, []byte(emptyDocument)); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, &PackageError{Op: "close", Cause: err}
	}
	return buf.Bytes(), nil
}

func writePart(zw *zip.Writer, name string, content []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return &PackageError{Op: "add", Part: name, Cause: err}
	}
	if _, err := f.Write(content); err != nil {
		return &PackageError{Op: "write", Part: name, Cause: err}
	}
	return nil
}
