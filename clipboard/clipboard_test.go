package clipboard_test

import (
	"testing"

	"github.com/atotto/clipboard"
	mclipboard "github.com/mythoscribe/mythoscribe/clipboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Copy(t *testing.T) {
	cb := mclipboard.NewSystem()
	if !cb.Available() {
		assert.ErrorIs(t, cb.Copy("x"), mclipboard.ErrUnsupported)
		t.Skip("no clipboard utility available")
	}

	testContent := "Once upon a time a brave mouse..."

	if err := cb.Copy(testContent); err != nil {
		// Utilities such as xclip fail without a display.
		t.Skipf("clipboard not usable here: %v", err)
	}

	out, err := clipboard.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, testContent, out)
}
