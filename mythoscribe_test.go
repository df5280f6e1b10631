package mythoscribe_test

import (
	"encoding/json"
	"testing"

	"github.com/mythoscribe/mythoscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("accepts numeric id", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		require.NoError(t, json.Unmarshal([]byte(`{"id": 42, "title": "x"}`), &s))
		assert.Equal(t, mythoscribe.StoryID("42"), s.ID)
	})

	t.Run("accepts string id", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		require.NoError(t, json.Unmarshal([]byte(`{"id": "abc-1"}`), &s))
		assert.Equal(t, mythoscribe.StoryID("abc-1"), s.ID)
	})

	t.Run("rejects objects", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		assert.Error(t, json.Unmarshal([]byte(`{"id": {"n": 1}}`), &s))
	})

	t.Run("marshals as string and decodes back", func(t *testing.T) {
		t.Parallel()

		for _, id := range []mythoscribe.StoryID{"7", "007", "+5", "abc-1"} {
			data, err := json.Marshal(mythoscribe.Story{ID: id})
			require.NoError(t, err, "id %q", id)

			var s mythoscribe.Story
			require.NoError(t, json.Unmarshal(data, &s))
			assert.Equal(t, id, s.ID)
		}
	})
}

func TestCharacters_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("sequence joins with comma-space", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		require.NoError(t, json.Unmarshal([]byte(`{"characters": ["Rama", "Sita"]}`), &s))
		assert.Equal(t, "Rama, Sita", s.Characters.String())
	})

	t.Run("scalar renders verbatim", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		require.NoError(t, json.Unmarshal([]byte(`{"characters": "Rama"}`), &s))
		assert.Equal(t, "Rama", s.Characters.String())
	})

	t.Run("absent renders empty", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		require.NoError(t, json.Unmarshal([]byte(`{"title": "t"}`), &s))
		assert.Empty(t, s.Characters.String())
	})

	t.Run("rejects numbers", func(t *testing.T) {
		t.Parallel()

		var s mythoscribe.Story
		assert.Error(t, json.Unmarshal([]byte(`{"characters": 3}`), &s))
	})
}

func TestEnvelope_Decode(t *testing.T) {
	t.Parallel()

	t.Run("success carries story", func(t *testing.T) {
		t.Parallel()

		var env mythoscribe.Envelope
		body := `{"success": true, "story": {"id": 1, "title": "The Brave Mouse", "content": "a\nb", "images": ["/img/1.png"]}}`
		require.NoError(t, json.Unmarshal([]byte(body), &env))

		assert.True(t, env.Success)
		require.NotNil(t, env.Story)
		assert.Equal(t, "The Brave Mouse", env.Story.Title)
		assert.Empty(t, env.Error)
	})

	t.Run("failure without success flag", func(t *testing.T) {
		t.Parallel()

		var env mythoscribe.Envelope
		require.NoError(t, json.Unmarshal([]byte(`{"error": "AI Service Timeout"}`), &env))

		assert.False(t, env.Success)
		assert.Nil(t, env.Story)
		assert.Equal(t, mythoscribe.CodeTimeout, env.Error)
	})
}
