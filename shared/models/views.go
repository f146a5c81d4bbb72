package models

import "time"

// ProfileView is the profile portion of a provisioned user as served to readers.
type ProfileView struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	PhoneNo   string `json:"phoneNo,omitempty"`
}

// ProvisionedUserView is the read-optimised projection of a user and its profile.
// Profile is nil when the user row exists without a profile (an orphan left by a failed compensation).
type ProvisionedUserView struct {
	ID        string       `json:"id"`
	Email     string       `json:"email"`
	Profile   *ProfileView `json:"profile"`
	CreatedAt time.Time    `json:"createdTimestamp"`
}
