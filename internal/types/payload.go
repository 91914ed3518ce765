package types

// ResumePayload is the JSON document the user edits.
// Bullets travel as a single "- " prefixed description block and the
// profile carries its highlight as a **bold** span.
type ResumePayload struct {
	Employer   string              `json:"employer"`
	Header     ResumeHeader        `json:"header"`
	Profile    string              `json:"profile"`
	Skills     [][2]string         `json:"skills"`
	Experience []ExperiencePayload `json:"experience"`
	Education  []EducationPayload  `json:"education"`
}

// ExperiencePayload is the wire form of an ExperienceEntry.
type ExperiencePayload struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// EducationPayload is the wire form of an EducationEntry.
type EducationPayload struct {
	School      string `json:"school"`
	Degree      string `json:"degree"`
	Period      string `json:"period"`
	Description string `json:"description"`
}
