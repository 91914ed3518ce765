package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeXML_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeXML(""))
}

func TestEscapeXML_NoSpecialCharacters(t *testing.T) {
	text := "This is normal text with no special characters"
	assert.Equal(t, text, EscapeXML(text))
}

func TestEscapeXML_Markup(t *testing.T) {
	assert.Equal(t, "R&amp;D &lt;team&gt;", EscapeXML("R&D <team>"))
}

func TestEscapeXML_Quotes(t *testing.T) {
	assert.Equal(t, "&quot;quoted&quot; &apos;single&apos;", EscapeXML(`"quoted" 'single'`))
}

func TestEscapeXML_DropsControlCharacters(t *testing.T) {
	assert.Equal(t, "ab", EscapeXML("a\x00\x07b"))
}

func TestEscapeXML_KeepsWhitespaceAndUnicode(t *testing.T) {
	assert.Equal(t, "a\tb\nc • é — 日本", EscapeXML("a\tb\nc • é — 日本"))
}
