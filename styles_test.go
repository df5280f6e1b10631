package mythoscribe_test

import (
	"testing"

	"github.com/mythoscribe/mythoscribe"
	"github.com/stretchr/testify/assert"
)

func TestStyles_Alert(t *testing.T) {
	t.Parallel()

	styles := mythoscribe.Styles{
		Info:    mythoscribe.ColorPair{Foreground: "#0000ff"},
		Success: mythoscribe.ColorPair{Foreground: "#00ff00"},
		Warning: mythoscribe.ColorPair{Foreground: "#ffff00"},
		Danger:  mythoscribe.ColorPair{Foreground: "#ff0000", Background: "#330000"},
	}

	assert.Equal(t, "#0000ff", styles.Alert(mythoscribe.SeverityInfo).Foreground)
	assert.Equal(t, "#00ff00", styles.Alert(mythoscribe.SeveritySuccess).Foreground)
	assert.Equal(t, "#ffff00", styles.Alert(mythoscribe.SeverityWarning).Foreground)
	assert.Equal(t, mythoscribe.ColorPair{Foreground: "#ff0000", Background: "#330000"}, styles.Alert(mythoscribe.SeverityDanger))
}
