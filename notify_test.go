package mythoscribe_test

import (
	"testing"
	"time"

	"github.com/mythoscribe/mythoscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifications_Notify(t *testing.T) {
	t.Parallel()

	var n mythoscribe.Notifications

	first := n.Notify("one", mythoscribe.SeverityInfo, 0)
	second := n.Notify("two", mythoscribe.SeverityDanger, 3*time.Second)

	assert.Equal(t, mythoscribe.DefaultAlertDuration, first.Duration)
	assert.Equal(t, 3*time.Second, second.Duration)
	assert.NotEqual(t, first.ID, second.ID)

	active := n.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "one", active[0].Message)
	assert.Equal(t, "two", active[1].Message)
}

func TestNotifications_DismissIsIdempotent(t *testing.T) {
	t.Parallel()

	var n mythoscribe.Notifications
	note := n.Notify("bye", mythoscribe.SeverityWarning, 0)
	other := n.Notify("stay", mythoscribe.SeverityInfo, 0)

	// User dismisses first, then the timer fires.
	assert.True(t, n.Dismiss(note.ID))
	assert.False(t, n.Expire(note.ID))
	assert.False(t, n.Dismiss(note.ID))

	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, other.ID, active[0].ID)
}

func TestNotifications_DismissAt(t *testing.T) {
	t.Parallel()

	var n mythoscribe.Notifications
	n.Notify("older", mythoscribe.SeverityWarning, 0)
	newer := n.Notify("newer", mythoscribe.SeverityDanger, 0)

	assert.False(t, n.DismissAt(0))
	assert.False(t, n.DismissAt(3))
	assert.True(t, n.DismissAt(1))

	active := n.Active()
	require.Len(t, active, 1)
	assert.Equal(t, newer, active[0])
	assert.False(t, n.DismissAt(2), "positions follow the remaining alerts")
}

func TestNotifications_DefaultDurationOverride(t *testing.T) {
	t.Parallel()

	n := mythoscribe.Notifications{DefaultDuration: 2 * time.Second}

	note := n.Notify("x", mythoscribe.SeverityInfo, 0)

	assert.Equal(t, 2*time.Second, note.Duration)
}

func TestNotifications_Latest(t *testing.T) {
	t.Parallel()

	var n mythoscribe.Notifications
	_, ok := n.Latest()
	assert.False(t, ok)

	n.Notify("a", mythoscribe.SeverityInfo, 0)
	b := n.Notify("b", mythoscribe.SeverityInfo, 0)

	latest, ok := n.Latest()
	require.True(t, ok)
	assert.Equal(t, b.ID, latest.ID)
}

func TestSeverity_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "info", mythoscribe.SeverityInfo.String())
	assert.Equal(t, "success", mythoscribe.SeveritySuccess.String())
	assert.Equal(t, "warning", mythoscribe.SeverityWarning.String())
	assert.Equal(t, "danger", mythoscribe.SeverityDanger.String())
}
