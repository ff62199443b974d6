package models

import "github.com/google/uuid"

// Institution represents a school that owns campuses, courses and programs
type Institution struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
}

// Campus represents a physical site of an institution
type Campus struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`

	Institution *Institution `json:"institution,omitempty" binding:"-"`
}
