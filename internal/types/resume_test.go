package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResumeData(t *testing.T) {
	data := DefaultResumeData()

	assert.Equal(t, "Your Name", data.Header.FullName)
	assert.Equal(t, "Open to opportunities.", data.PersonalProfileHighlight)
	assert.Len(t, data.TechnicalSkills, 5)
	assert.Len(t, data.Experience, 3)
	assert.Len(t, data.Education, 1)
	assert.Equal(t, "MONTH YEAR - PRESENT", data.Experience[2].DateRange)
}

func TestDefaultResumeData_FreshCopy(t *testing.T) {
	first := DefaultResumeData()
	first.Experience[0].Bullets[0] = "changed"
	first.TechnicalSkills[0].Label = "changed"

	second := DefaultResumeData()
	assert.NotEqual(t, "changed", second.Experience[0].Bullets[0])
	assert.NotEqual(t, "changed", second.TechnicalSkills[0].Label)
}

func TestResumeData_Clone(t *testing.T) {
	original := DefaultResumeData()
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Experience[0].Bullets[0] = "mutated"
	clone.Education[0].Bullets = append(clone.Education[0].Bullets, "extra")
	clone.TechnicalSkills[1].Value = "mutated"

	assert.NotEqual(t, "mutated", original.Experience[0].Bullets[0])
	assert.Len(t, original.Education[0].Bullets, 2)
	assert.NotEqual(t, "mutated", original.TechnicalSkills[1].Value)
}

func TestResumeHeader_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(ResumeHeader{LinkedInURL: "https://linkedin.com/in/x", GitHubLabel: "gh"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "https://linkedin.com/in/x", decoded["linkedinUrl"])
	assert.Equal(t, "gh", decoded["githubLabel"])
	assert.Contains(t, decoded, "fullName")
}

func TestResumePayload_SkillsArePairs(t *testing.T) {
	payload := ResumePayload{Skills: [][2]string{{"Go:", "net/http"}}}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"skills":[["Go:","net/http"]]`)
}
