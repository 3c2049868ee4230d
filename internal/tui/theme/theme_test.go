package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#6B50FF")
	assert.Equal(t, [3]uint8{0x6b, 0x50, 0xff}, [3]uint8{r, g, b})

	r, g, b = hexToRGB("nope")
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestGradientTextKeepsLines(t *testing.T) {
	out := GradientText("ab\n\ncd", Default.Primary, Default.Accent)
	assert.Equal(t, 3, len(splitLines(out)))
	assert.Equal(t, 2, lipgloss.Width(splitLines(out)[0]))
}

func TestConfidenceColor(t *testing.T) {
	assert.Equal(t, Default.Success, Default.ConfidenceColor("high"))
	assert.Equal(t, Default.Warning, Default.ConfidenceColor("medium"))
	assert.Equal(t, Default.Error, Default.ConfidenceColor("low"))
	assert.Equal(t, Default.Muted, Default.ConfidenceColor("unknown"))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
