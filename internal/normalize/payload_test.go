package normalize

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/resume-studio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(types.DefaultResumeData(), types.DefaultEmployer)

	assert.Equal(t, "Quantum Detectors", payload.Employer)
	assert.True(t, strings.HasSuffix(payload.Profile, " **Open to opportunities.**"))
	assert.Equal(t, [2]string{"Core Languages:", "TypeScript, JavaScript, Python"}, payload.Skills[0])
	assert.Equal(t, "MONTH YEAR - PRESENT", payload.Experience[2].Period)
	assert.Equal(t, "- Honors / GPA\n- Scholarships or awards", payload.Education[0].Description)
}

func TestBuildPayload_NoHighlight(t *testing.T) {
	data := types.DefaultResumeData()
	data.PersonalProfileHighlight = ""
	assert.Equal(t, data.PersonalProfile, BuildPayload(data, "").Profile)
}

func TestMarshalPayload_Indented(t *testing.T) {
	raw, err := MarshalPayload(types.ResumePayload{Employer: "R&D <Lab>"})
	require.NoError(t, err)

	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "{\n  \"employer\": \"R&D <Lab>\""))
	assert.False(t, strings.HasSuffix(text, "\n"))
}

func TestDefaultJSON(t *testing.T) {
	raw, err := DefaultJSON()
	require.NoError(t, err)

	var payload types.ResumePayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, types.DefaultEmployer, payload.Employer)
	assert.Len(t, payload.Experience, 3)
}

func TestSetEmployer_ReplacesInPlace(t *testing.T) {
	raw := []byte(`{"header": {"fullName": "Ada"}, "employer": "Old", "profile": "x"}`)

	out, err := SetEmployer(raw, "New Co")
	require.NoError(t, err)

	expected := "{\n  \"header\": {\n    \"fullName\": \"Ada\"\n  },\n  \"employer\": \"New Co\",\n  \"profile\": \"x\"\n}"
	assert.Equal(t, expected, string(out))
}

func TestSetEmployer_AppendsWhenMissing(t *testing.T) {
	out, err := SetEmployer([]byte(`{"profile": "x"}`), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"profile\": \"x\",\n  \"employer\": \"Acme\"\n}", string(out))

	out, err = SetEmployer([]byte(`{}`), "")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"employer\": \"\"\n}", string(out))
}

func TestSetEmployer_Malformed(t *testing.T) {
	for _, input := range []string{`{"profile": `, `[]`, `{"a": 1} {}`} {
		_, err := SetEmployer([]byte(input), "Acme")
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrMalformedInput), input)
	}
}

func TestEditor_Apply(t *testing.T) {
	editor := NewEditor(types.DefaultResumeData(), types.DefaultEmployer)

	require.NoError(t, editor.Apply([]byte(`{"employer": "Acme", "header": {"fullName": "Ada"}}`)))
	state := editor.Snapshot()
	assert.Equal(t, "Acme", state.Employer)
	assert.Equal(t, "Ada", state.Data.Header.FullName)
	assert.Empty(t, state.ParseError)

	err := editor.Apply([]byte(`{"employer": `))
	require.Error(t, err)
	state = editor.Snapshot()
	assert.Equal(t, ParseErrorMessage, state.ParseError)
	assert.Equal(t, "Ada", state.Data.Header.FullName, "last good record is kept")
	assert.Equal(t, "Acme", state.Employer)

	require.NoError(t, editor.Apply([]byte(`{"employer": "Beta"}`)))
	state = editor.Snapshot()
	assert.Empty(t, state.ParseError)
	assert.Equal(t, "Beta", state.Employer)
}

func TestEditor_SnapshotIsCopy(t *testing.T) {
	editor := NewEditor(types.DefaultResumeData(), "")
	snap := editor.Snapshot()
	snap.Data.Experience[0].Company = "mutated"

	assert.NotEqual(t, "mutated", editor.Snapshot().Data.Experience[0].Company)
}

func TestEditor_ConcurrentApply(t *testing.T) {
	editor := NewEditor(types.DefaultResumeData(), "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = editor.Apply([]byte(`{"employer": "Acme"}`))
			} else {
				_ = editor.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "Acme", editor.Snapshot().Employer)
}
