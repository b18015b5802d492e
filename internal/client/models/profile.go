package models

// ProfileKey is the storage slot of the single profile record.
const ProfileKey = "vigil.profile"

// DefaultSiteName is assigned to profiles derived from a session.
const DefaultSiteName = "Site principal"

// Profile holds user-editable contact and identity details.
//
// UpdatedAtIso is stamped by the profile manager on every write; values
// supplied by callers are overwritten. Empty optional fields are omitted
// from the stored JSON.
type Profile struct {
	FullName              string `json:"fullName"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	SiteName              string `json:"siteName,omitempty"`
	BadgeID               string `json:"badgeId,omitempty"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
	UpdatedAtIso          string `json:"updatedAtIso"`
}

// IsZero reports whether p carries no data at all, as decoded from a stored
// "null" or "{}".
func (p Profile) IsZero() bool {
	return p == Profile{}
}
