package models

import "github.com/google/uuid"

// Student represents a learner tracked by the catalog.
type Student struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name" binding:"required,max=255"`
	Email string    `json:"email" binding:"omitempty,email,max=255"`
}
