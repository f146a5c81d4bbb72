package cqrs

// GetProvisionedUserQuery fetches a provisioned user and its profile by user ID.
type GetProvisionedUserQuery struct {
	UserID string
}
