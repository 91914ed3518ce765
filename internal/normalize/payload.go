package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/resume-studio/internal/markdown"
	"github.com/jonathan/resume-studio/internal/types"
)

// BuildPayload converts a resume record back into its editable JSON form.
func BuildPayload(data types.ResumeData, employer string) types.ResumePayload {
	payload := types.ResumePayload{
		Employer:   employer,
		Header:     data.Header,
		Profile:    markdown.RenderEmphasis(data.PersonalProfile, data.PersonalProfileHighlight),
		Skills:     make([][2]string, len(data.TechnicalSkills)),
		Experience: make([]types.ExperiencePayload, len(data.Experience)),
		Education:  make([]types.EducationPayload, len(data.Education)),
	}

	for i, skill := range data.TechnicalSkills {
		payload.Skills[i] = [2]string{skill.Label, skill.Value}
	}
	for i, entry := range data.Experience {
		payload.Experience[i] = types.ExperiencePayload{
			Company:     entry.Company,
			Role:        entry.Role,
			Period:      entry.DateRange,
			Description: markdown.EncodeBullets(entry.Bullets),
		}
	}
	for i, entry := range data.Education {
		payload.Education[i] = types.EducationPayload{
			School:      entry.School,
			Degree:      entry.Degree,
			Period:      entry.DateRange,
			Description: markdown.EncodeBullets(entry.Bullets),
		}
	}
	return payload
}

// MarshalPayload renders the payload as two-space indented JSON.
func MarshalPayload(p types.ResumePayload) ([]byte, error) {
	return marshalIndent(p)
}

// DefaultJSON is the seed text used when no resume.json is available.
func DefaultJSON() ([]byte, error) {
	return MarshalPayload(BuildPayload(types.DefaultResumeData(), types.DefaultEmployer))
}

// SetEmployer rewrites the top-level "employer" key of raw and re-indents the document.
// Existing keys keep their order; a missing employer key is appended last.
func SetEmployer(raw []byte, employer string) ([]byte, error) {
	fields, err := decodeOrderedObject(raw)
	if err != nil {
		return nil, err
	}

	value, err := json.Marshal(employer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode employer: %w", err)
	}

	replaced := false
	for i := range fields {
		if fields[i].key == "employer" {
			fields[i].value = value
			replaced = true
		}
	}
	if !replaced {
		fields = append(fields, objectField{key: "employer", value: value})
	}

	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, _ := json.Marshal(f.key)
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent JSON: %w", err)
	}
	return out.Bytes(), nil
}

type objectField struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject splits a JSON object into its members in document order.
func decodeOrderedObject(raw []byte) ([]objectField, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, &MalformedInputError{Message: "invalid JSON", Cause: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &MalformedInputError{Message: "top-level value must be an object"}
	}

	var fields []objectField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &MalformedInputError{Message: "invalid JSON", Cause: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &MalformedInputError{Message: "invalid object key"}
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &MalformedInputError{Message: "invalid JSON", Cause: err}
		}
		fields = append(fields, objectField{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &MalformedInputError{Message: "invalid JSON", Cause: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &MalformedInputError{Message: "unexpected data after top-level value"}
	}
	return fields, nil
}

func marshalIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
