package rendering

import "strings"

// FileName returns the download name for a resume tailored to employer.
func FileName(employer string) string {
	employer = strings.TrimSpace(employer)
	if employer == "" {
		return "Resume.docx"
	}
	return employer + " - Resume.docx"
}
