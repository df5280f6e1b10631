package mythoscribe

import "time"

// DefaultAlertDuration is how long a notification stays visible unless the
// caller asks otherwise.
const DefaultAlertDuration = 5 * time.Second

// Severity classifies a notification.
type Severity int

// Severity levels.
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityDanger
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityDanger:
		return "danger"
	default:
		return "info"
	}
}

// Glyph returns the symbol shown before a message of this severity.
func (s Severity) Glyph() string {
	switch s {
	case SeveritySuccess:
		return "✨"
	case SeverityWarning:
		return "🪔"
	case SeverityDanger:
		return "🙏"
	default:
		return "🕉"
	}
}

// Notification is a transient, dismissible message.
type Notification struct {
	ID       int
	Message  string
	Severity Severity
	Duration time.Duration // time until automatic expiry
}

// Notifications holds the currently visible notifications in the order
// they were raised. Any number may be visible at once.
type Notifications struct {
	// DefaultDuration replaces DefaultAlertDuration when positive.
	DefaultDuration time.Duration

	nextID int
	active []Notification
}

// Notify adds a notification and returns it. A non-positive duration
// selects the default. The caller schedules expiry by calling Expire with
// the returned ID once Duration has elapsed.
func (n *Notifications) Notify(message string, severity Severity, duration time.Duration) Notification {
	if duration <= 0 {
		duration = n.DefaultDuration
	}
	if duration <= 0 {
		duration = DefaultAlertDuration
	}
	n.nextID++
	note := Notification{
		ID:       n.nextID,
		Message:  message,
		Severity: severity,
		Duration: duration,
	}
	n.active = append(n.active, note)
	return note
}

// Dismiss removes the notification with the given ID. It reports whether a
// notification was removed; dismissing an already removed one is a no-op,
// so a user dismissal and a later expiry never conflict.
func (n *Notifications) Dismiss(id int) bool {
	for i, note := range n.active {
		if note.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			return true
		}
	}
	return false
}

// Expire removes a notification whose timer elapsed. It is Dismiss under
// another name and equally idempotent.
func (n *Notifications) Expire(id int) bool {
	return n.Dismiss(id)
}

// DismissAt removes the notification at 1-based position pos in the order
// returned by Active. It reports whether pos named a visible notification.
func (n *Notifications) DismissAt(pos int) bool {
	if pos < 1 || pos > len(n.active) {
		return false
	}
	return n.Dismiss(n.active[pos-1].ID)
}

// Latest returns the most recently raised visible notification.
func (n *Notifications) Latest() (Notification, bool) {
	if len(n.active) == 0 {
		return Notification{}, false
	}
	return n.active[len(n.active)-1], true
}

// Active returns a copy of the visible notifications, oldest first.
func (n *Notifications) Active() []Notification {
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}
