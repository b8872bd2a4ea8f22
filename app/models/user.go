package models

// PromoteAdmin is the body of PUT /addAdmin.
type PromoteAdmin struct {
	Email string `json:"email" validate:"required"`
}
