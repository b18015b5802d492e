package models

import "strings"

// SessionKey is the storage slot of the single session record.
const SessionKey = "vigil.session"

// Session is the minimal authenticated identity kept across restarts.
type Session struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
}

// Valid reports whether s identifies a user.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.UserID) != ""
}
