package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/jonathan/resume-studio/internal/markdown"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// Result is the outcome of a successful Normalize call.
type Result struct {
	Data     types.ResumeData
	Employer string
	// Warnings lists fields whose shape did not match the payload schema.
	// Those fields were coerced or replaced by the previous value.
	Warnings []schemas.FieldError
}

// Normalize maps raw payload JSON onto a complete resume record.
// Any section that is missing, empty or of the wrong kind falls back to prev.
// On error prev is left as it was and the caller should keep showing it.
func Normalize(prev types.ResumeData, raw []byte) (*Result, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Data:     prev.Clone(),
		Employer: stringOrEmpty(doc["employer"]),
		Warnings: schemaWarnings(raw),
	}
	data := &result.Data

	if header, ok := doc["header"].(map[string]any); ok {
		data.Header = normalizeHeader(header)
	}

	data.PersonalProfile, data.PersonalProfileHighlight = normalizeProfile(doc["profile"], prev)

	if skills, ok := doc["skills"].([]any); ok && len(skills) > 0 {
		data.TechnicalSkills = normalizeSkills(skills)
	}

	if entries, ok := doc["experience"].([]any); ok && len(entries) > 0 {
		data.Experience = make([]types.ExperienceEntry, len(entries))
		for i, item := range entries {
			fields, _ := item.(map[string]any)
			data.Experience[i] = types.ExperienceEntry{
				Company:   trimmedField(fields, "company"),
				Role:      trimmedField(fields, "role"),
				DateRange: trimmedField(fields, "period"),
				Bullets:   markdown.DecodeBullets(stringOrEmpty(fields["description"])),
			}
		}
	}

	if entries, ok := doc["education"].([]any); ok && len(entries) > 0 {
		data.Education = make([]types.EducationEntry, len(entries))
		for i, item := range entries {
			fields, _ := item.(map[string]any)
			data.Education[i] = types.EducationEntry{
				School:    trimmedField(fields, "school"),
				Degree:    trimmedField(fields, "degree"),
				DateRange: trimmedField(fields, "period"),
				Bullets:   markdown.DecodeBullets(stringOrEmpty(fields["description"])),
			}
		}
	}

	return result, nil
}

// decodeObject parses raw as a single JSON object, keeping numbers as json.Number.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, &MalformedInputError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Message: "unexpected data after top-level value"}
	}

	doc, ok := value.(map[string]any)
	if !ok {
		return nil, &MalformedInputError{Message: "top-level value must be an object"}
	}
	return doc, nil
}

func schemaWarnings(raw []byte) []schemas.FieldError {
	err := schemas.ValidateResumePayload(raw)
	if err == nil {
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Errors
	}
	log.Printf("[NORMALIZE] schema check skipped: %v", err)
	return nil
}

func normalizeHeader(fields map[string]any) types.ResumeHeader {
	return types.ResumeHeader{
		FullName:      stringOrEmpty(fields["fullName"]),
		Location:      stringOrEmpty(fields["location"]),
		Phone:         stringOrEmpty(fields["phone"]),
		Email:         stringOrEmpty(fields["email"]),
		LinkedInLabel: stringOrEmpty(fields["linkedinLabel"]),
		LinkedInURL:   stringOrEmpty(fields["linkedinUrl"]),
		GitHubLabel:   stringOrEmpty(fields["githubLabel"]),
		GitHubURL:     stringOrEmpty(fields["githubUrl"]),
	}
}

// normalizeProfile splits the profile into narrative and highlight.
// A missing or blank profile re-parses the previous record's markdown form.
func normalizeProfile(value any, prev types.ResumeData) (text, highlight string) {
	source, _ := value.(string)
	if strings.TrimSpace(source) == "" {
		source = markdown.RenderEmphasis(prev.PersonalProfile, prev.PersonalProfileHighlight)
	}

	text, highlight = markdown.ParseEmphasis(source)
	if text == "" {
		text = prev.PersonalProfile
	}
	return text, highlight
}

func normalizeSkills(items []any) []types.TechnicalSkill {
	skills := make([]types.TechnicalSkill, len(items))
	for i, item := range items {
		pair, _ := item.([]any)
		var skill types.TechnicalSkill
		if len(pair) > 0 {
			skill.Label = strings.TrimSpace(scalarText(pair[0]))
		}
		if len(pair) > 1 {
			skill.Value = strings.TrimSpace(scalarText(pair[1]))
		}
		skills[i] = skill
	}
	return skills
}

func trimmedField(fields map[string]any, key string) string {
	return strings.TrimSpace(stringOrEmpty(fields[key]))
}

func stringOrEmpty(value any) string {
	s, _ := value.(string)
	return s
}

// scalarText renders a JSON scalar as text. Objects, arrays and null become "".
func scalarText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
