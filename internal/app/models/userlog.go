package models

import (
	"fmt"
	"time"
)

// Log levels, lower is more severe.
const (
	LogLevelCritical = 0
	LogLevelError    = 1
	LogLevelWarning  = 2
	LogLevelInfo     = 3
	LogLevelDebug    = 4
)

// Log group tags.
const (
	LogGroupAccount = "gongu.account"
)

// UnknownIP is recorded when the client address could not be determined.
const UnknownIP = "0.0.0.0"

// AnonymousName is rendered when a log entry has no associated user.
const AnonymousName = "undefined"

// UserLog is one append-only audit entry for a user or system event.
// A nil UserID marks a system/global event. Time is set by the database on
// insert. IsHidden entries are not shown to end users.
type UserLog struct {
	ID       int64     `json:"id" db:"id"`
	UserID   *int64    `json:"userId,omitempty" db:"user_id"`
	Level    int       `json:"level" db:"level" example:"3"`
	Time     time.Time `json:"time" db:"time"`
	IP       string    `json:"ip" db:"ip" example:"203.0.113.7"`
	Group    string    `json:"group" db:"grp" example:"gongu.account"`
	Text     string    `json:"text" db:"text" example:"login"`
	IsHidden bool      `json:"isHidden" db:"is_hidden"`

	// Related entities
	User *User `json:"user,omitempty"`
}

// Pretty renders a human-readable one-line summary of the entry. Entries
// without a user render the anonymous sentinel as the display name.
func (l *UserLog) Pretty() string {
	username := AnonymousName
	if l.User != nil {
		username = l.User.Username
	}
	timeStr := l.Time.Local().Format(time.RFC3339)
	return fmt.Sprintf("%s/%s (%d, %s) %s.%s", username, timeStr, l.Level, l.IP, l.Group, l.Text)
}
