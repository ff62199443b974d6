package models

import "github.com/google/uuid"

// Course represents a course taught by an institution.
type Course struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" binding:"required,max=255"`

	// Nil when the course has no institution or the institution was deleted
	Institution *Institution `json:"institution,omitempty" binding:"-"`
}

// InstitutionID returns the referenced institution id, or nil for none.
func (c *Course) InstitutionID() *uuid.UUID {
	if c.Institution == nil {
		return nil
	}
	id := c.Institution.ID
	return &id
}

// Requirement is something a course can satisfy or depend on, and that a
// program can demand.
type Requirement struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name" binding:"required,max=255"`
	Description string    `json:"description"`
}

// Program represents a degree or certificate track of an institution
type Program struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name" binding:"required,max=255"`

	Institution *Institution `json:"institution,omitempty" binding:"-"`
}
