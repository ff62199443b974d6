package models

import "github.com/google/uuid"

// User is the identity overlay used for API access. A user may be linked to
// the student record it acts for.
type User struct {
	ID         uuid.UUID `json:"id"`
	Student    *Student  `json:"student,omitempty"`
	APIKeyHash string    `json:"-"`
}
