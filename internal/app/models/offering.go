package models

import (
	"time"

	"github.com/google/uuid"
)

// Offering is one scheduled section of a course in a term. It is attached to
// courses through the course repository.
type Offering struct {
	ID       uuid.UUID `json:"id"`
	Term     string    `json:"term" binding:"max=64"`
	Section  string    `json:"section" binding:"max=64"`
	StartsOn time.Time `json:"startsOn" binding:"required"`
	EndsOn   time.Time `json:"endsOn" binding:"required,gtefield=StartsOn"`

	Campus *Campus `json:"campus,omitempty" binding:"-"`
}

// Meeting is a weekly recurring session of an offering
type Meeting struct {
	ID              uuid.UUID    `json:"id"`
	Day             time.Weekday `json:"day" binding:"min=0,max=6"`
	StartMinute     int          `json:"startMinute" binding:"min=0,max=1439"` // minutes after midnight
	DurationMinutes int          `json:"durationMinutes" binding:"min=0"`
	Room            string       `json:"room" binding:"max=255"`
}
