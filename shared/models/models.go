package models

import "time"

// SignupMetadata is the optional profile data the auth provider attaches to a new user.
type SignupMetadata struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	PhoneNo   string `json:"phone_no,omitempty"`
}

// SignupEvent is a "user created" notification from the auth provider.
type SignupEvent struct {
	ID       string         `json:"id" validate:"required"`
	Email    string         `json:"email" validate:"required"`
	Metadata SignupMetadata `json:"user_metadata"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Profile is keyed by email, not by user id.
type Profile struct {
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	PhoneNo   string    `json:"phoneNo,omitempty"`
	CreatedAt time.Time `json:"createdTimestamp"`
}
