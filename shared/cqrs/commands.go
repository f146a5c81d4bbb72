package cqrs

import "github.com/eaglebank/signup-service/shared/models"

// ProvisionSignupCommand asks the provisioner to create the user and profile rows for a signup.
type ProvisionSignupCommand struct {
	UserID   string
	Email    string
	Metadata models.SignupMetadata
}
