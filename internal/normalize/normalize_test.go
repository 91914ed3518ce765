package normalize

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_EmptyObjectKeepsPrevious(t *testing.T) {
	prev := types.DefaultResumeData()

	result, err := Normalize(prev, []byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, prev, result.Data)
	assert.Equal(t, "", result.Employer)
	assert.Empty(t, result.Warnings)
}

func TestNormalize_FullPayload(t *testing.T) {
	raw := []byte(`{
		"employer": "Acme Corp",
		"header": {"fullName": "Ada Lovelace", "email": "ada@example.com"},
		"profile": "Analytical engine   programmer. **Available now.**",
		"skills": [[" Languages: ", " Go, Rust "], ["Cloud:", "GCP"]],
		"experience": [
			{"company": " Acme ", "role": "Engineer", "period": "2020 - 2024", "description": "- Built **fast** things\n- Shipped\n\n"}
		],
		"education": [
			{"school": "Uni", "degree": "BSc", "period": "2016", "description": "* Honours"}
		]
	}`)

	result, err := Normalize(types.DefaultResumeData(), raw)
	require.NoError(t, err)
	data := result.Data

	assert.Equal(t, "Acme Corp", result.Employer)
	assert.Equal(t, "Ada Lovelace", data.Header.FullName)
	assert.Equal(t, "ada@example.com", data.Header.Email)
	assert.Equal(t, "", data.Header.Location, "header is replaced wholesale")

	assert.Equal(t, "Analytical engine programmer.", data.PersonalProfile)
	assert.Equal(t, "Available now.", data.PersonalProfileHighlight)

	assert.Equal(t, []types.TechnicalSkill{
		{Label: "Languages:", Value: "Go, Rust"},
		{Label: "Cloud:", Value: "GCP"},
	}, data.TechnicalSkills)

	require.Len(t, data.Experience, 1)
	assert.Equal(t, types.ExperienceEntry{
		Company:   "Acme",
		Role:      "Engineer",
		DateRange: "2020 - 2024",
		Bullets:   []string{"Built **fast** things", "Shipped"},
	}, data.Experience[0])

	require.Len(t, data.Education, 1)
	assert.Equal(t, []string{"Honours"}, data.Education[0].Bullets)
	assert.Empty(t, result.Warnings)
}

func TestNormalize_EmptyArraysKeepPrevious(t *testing.T) {
	prev := types.DefaultResumeData()
	result, err := Normalize(prev, []byte(`{"skills": [], "experience": [], "education": []}`))
	require.NoError(t, err)

	assert.Equal(t, prev.TechnicalSkills, result.Data.TechnicalSkills)
	assert.Equal(t, prev.Experience, result.Data.Experience)
	assert.Equal(t, prev.Education, result.Data.Education)
}

func TestNormalize_Profile(t *testing.T) {
	prev := types.DefaultResumeData()

	tests := []struct {
		name          string
		raw           string
		wantText      string
		wantHighlight string
	}{
		{
			name:          "missing profile reuses previous",
			raw:           `{}`,
			wantText:      prev.PersonalProfile,
			wantHighlight: prev.PersonalProfileHighlight,
		},
		{
			name:          "blank profile reuses previous",
			raw:           `{"profile": "   "}`,
			wantText:      prev.PersonalProfile,
			wantHighlight: prev.PersonalProfileHighlight,
		},
		{
			name:          "non-string profile reuses previous",
			raw:           `{"profile": 12}`,
			wantText:      prev.PersonalProfile,
			wantHighlight: prev.PersonalProfileHighlight,
		},
		{
			name:          "no highlight clears highlight",
			raw:           `{"profile": "Just text"}`,
			wantText:      "Just text",
			wantHighlight: "",
		},
		{
			name:          "highlight only keeps previous narrative",
			raw:           `{"profile": "**Hire me**"}`,
			wantText:      prev.PersonalProfile,
			wantHighlight: "Hire me",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Normalize(prev, []byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, result.Data.PersonalProfile)
			assert.Equal(t, tt.wantHighlight, result.Data.PersonalProfileHighlight)
		})
	}
}

func TestNormalize_CoercesWrongShapes(t *testing.T) {
	prev := types.DefaultResumeData()
	raw := []byte(`{
		"employer": 5,
		"header": "not an object",
		"skills": [["Years:", 7], "bad", [null, true]],
		"experience": [{"company": 3, "role": "Dev"}, "junk"]
	}`)

	result, err := Normalize(prev, raw)
	require.NoError(t, err)

	assert.Equal(t, "", result.Employer)
	assert.Equal(t, prev.Header, result.Data.Header)
	assert.Equal(t, []types.TechnicalSkill{
		{Label: "Years:", Value: "7"},
		{},
		{Label: "", Value: "true"},
	}, result.Data.TechnicalSkills)

	require.Len(t, result.Data.Experience, 2)
	assert.Equal(t, "", result.Data.Experience[0].Company)
	assert.Equal(t, "Dev", result.Data.Experience[0].Role)
	assert.Equal(t, types.ExperienceEntry{Bullets: []string{}}, result.Data.Experience[1])

	assert.NotEmpty(t, result.Warnings)
}

func TestNormalize_EmployerNotTrimmed(t *testing.T) {
	result, err := Normalize(types.DefaultResumeData(), []byte(`{"employer": "  Acme  "}`))
	require.NoError(t, err)
	assert.Equal(t, "  Acme  ", result.Employer)
}

func TestNormalize_Malformed(t *testing.T) {
	prev := types.DefaultResumeData()
	inputs := []string{
		`{"employer": `,
		`[1, 2]`,
		`null`,
		`"text"`,
		`{} trailing`,
		``,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			result, err := Normalize(prev, []byte(input))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrMalformedInput))

			var malformed *MalformedInputError
			assert.True(t, errors.As(err, &malformed))
		})
	}
	assert.Equal(t, types.DefaultResumeData(), prev)
}

func TestNormalize_DoesNotAliasPrevious(t *testing.T) {
	prev := types.DefaultResumeData()
	result, err := Normalize(prev, []byte(`{}`))
	require.NoError(t, err)

	result.Data.Experience[0].Bullets[0] = "changed"
	assert.NotEqual(t, "changed", prev.Experience[0].Bullets[0])
}

func TestNormalize_RoundTripsBuildPayload(t *testing.T) {
	data := types.DefaultResumeData()
	raw, err := MarshalPayload(BuildPayload(data, "Acme"))
	require.NoError(t, err)

	result, err := Normalize(types.ResumeData{}, raw)
	require.NoError(t, err)
	assert.Equal(t, data, result.Data)
	assert.Equal(t, "Acme", result.Employer)
	assert.Empty(t, result.Warnings)
}
