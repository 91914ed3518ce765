// Package types provides type definitions for structured data used throughout resume-studio.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DefaultEmployer is the employer written into the seed JSON built from DefaultResumeData.
const DefaultEmployer = "Quantum Detectors"

// ResumeHeader holds the identity and contact block at the top of the document.
type ResumeHeader struct {
	FullName      string `json:"fullName"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	LinkedInLabel string `json:"linkedinLabel"`
	LinkedInURL   string `json:"linkedinUrl"`
	GitHubLabel   string `json:"githubLabel"`
	GitHubURL     string `json:"githubUrl"`
}

// TechnicalSkill is one row of the skills table.
type TechnicalSkill struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ExperienceEntry is one employment record.
type ExperienceEntry struct {
	Company   string   `json:"company"`
	Role      string   `json:"role"`
	DateRange string   `json:"dateRange"`
	Bullets   []string `json:"bullets"`
}

// EducationEntry is one education record.
type EducationEntry struct {
	School    string   `json:"school"`
	Degree    string   `json:"degree"`
	DateRange string   `json:"dateRange"`
	Bullets   []string `json:"bullets"`
}

// ResumeData is the fully populated internal resume record.
// Every field is always present; empty strings stand in for missing text.
type ResumeData struct {
	Header                   ResumeHeader      `json:"header"`
	PersonalProfile          string            `json:"personalProfile"`
	PersonalProfileHighlight string            `json:"personalProfileHighlight"`
	TechnicalSkills          []TechnicalSkill  `json:"technicalSkills"`
	Experience               []ExperienceEntry `json:"experience"`
	Education                []EducationEntry  `json:"education"`
}

// Clone returns a deep copy of the record.
func (d ResumeData) Clone() ResumeData {
	out := d
	out.TechnicalSkills = append([]TechnicalSkill(nil), d.TechnicalSkills...)

	out.Experience = make([]ExperienceEntry, len(d.Experience))
	for i, e := range d.Experience {
		e.Bullets = append([]string(nil), e.Bullets...)
		out.Experience[i] = e
	}

	out.Education = make([]EducationEntry, len(d.Education))
	for i, e := range d.Education {
		e.Bullets = append([]string(nil), e.Bullets...)
		out.Education[i] = e
	}
	return out
}

// DefaultResumeData returns a fresh copy of the placeholder record shown before any JSON is loaded.
func DefaultResumeData() ResumeData {
	return ResumeData{
		Header: ResumeHeader{
			FullName:      "Your Name",
			Location:      "City, Country",
			Phone:         "+1 555 123 4567",
			Email:         "you@example.com",
			LinkedInLabel: "linkedin.com/in/your-handle",
			LinkedInURL:   "https://linkedin.com/in/your-handle",
			GitHubLabel:   "github.com/your-handle",
			GitHubURL:     "https://github.com/your-handle",
		},
		PersonalProfile:          "Briefly describe your experience and the kind of impact you want to make. Keep it concise and tailored to the role.",
		PersonalProfileHighlight: "Open to opportunities.",
		TechnicalSkills: []TechnicalSkill{
			{Label: "Core Languages:", Value: "TypeScript, JavaScript, Python"},
			{Label: "OS/Tools:", Value: "Linux, macOS, Git, Docker"},
			{Label: "Frameworks:", Value: "React, Node.js, Bun"},
			{Label: "Cloud/Database:", Value: "PostgreSQL, Redis, AWS"},
			{Label: "Methodologies:", Value: "Agile (Scrum), CI/CD"},
		},
		Experience: []ExperienceEntry{
			{
				Company:   "Company Name",
				Role:      "Role Title",
				DateRange: "MONTH YEAR - MONTH YEAR",
				Bullets: []string{
					"Built and maintained key product features that improved user engagement and retention.",
					"Collaborated with cross-functional teams to deliver projects on time.",
					"Optimized critical workflows, reducing latency and operational costs.",
				},
			},
			{
				Company:   "Another Company",
				Role:      "Senior Engineer",
				DateRange: "MONTH YEAR - MONTH YEAR",
				Bullets: []string{
					"Led system design efforts for scalable services handling high traffic.",
					"Improved developer productivity with automation and tooling upgrades.",
				},
			},
			{
				Company:   "Freelance / Consulting",
				Role:      "Software Developer",
				DateRange: "MONTH YEAR - PRESENT",
				Bullets: []string{
					"Delivered bespoke solutions for clients across multiple industries.",
				},
			},
		},
		Education: []EducationEntry{
			{
				School:    "University Name",
				Degree:    "Bachelor of Science in Computer Science",
				DateRange: "MONTH YEAR - MONTH YEAR",
				Bullets:   []string{"Honors / GPA", "Scholarships or awards"},
			},
		},
	}
}
