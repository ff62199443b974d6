package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

func SeedInstitution(tb testing.TB, ctx context.Context, q db.Querier, name string) *models.Institution {
	tb.Helper()
	inst := &models.Institution{ID: uuid.New(), Name: name, Description: name + " description"}
	if _, err := q.Exec(ctx, `INSERT INTO institutions (id, name, description) VALUES ($1, $2, $3)`,
		inst.ID, inst.Name, inst.Description); err != nil {
		tb.Fatalf("seed institution: %v", err)
	}
	return inst
}

func SeedCourse(tb testing.TB, ctx context.Context, q db.Querier, name string, inst *models.Institution) *models.Course {
	tb.Helper()
	course := &models.Course{ID: uuid.New(), Name: name, Institution: inst}
	if _, err := q.Exec(ctx, `INSERT INTO courses (id, name, institution) VALUES ($1, $2, $3)`,
		course.ID, course.Name, course.InstitutionID()); err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return course
}

func SeedRequirement(tb testing.TB, ctx context.Context, q db.Querier, name string) *models.Requirement {
	tb.Helper()
	req := &models.Requirement{ID: uuid.New(), Name: name, Description: name + " description"}
	if _, err := q.Exec(ctx, `INSERT INTO requirements (id, name, description) VALUES ($1, $2, $3)`,
		req.ID, req.Name, req.Description); err != nil {
		tb.Fatalf("seed requirement: %v", err)
	}
	return req
}

func SeedStudent(tb testing.TB, ctx context.Context, q db.Querier, name, email string) *models.Student {
	tb.Helper()
	s := &models.Student{ID: uuid.New(), Name: name, Email: email}
	if _, err := q.Exec(ctx, `INSERT INTO students (id, name, email) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.Email); err != nil {
		tb.Fatalf("seed student: %v", err)
	}
	return s
}

func SeedProgram(tb testing.TB, ctx context.Context, q db.Querier, name string, inst *models.Institution) *models.Program {
	tb.Helper()
	p := &models.Program{ID: uuid.New(), Name: name, Institution: inst}
	var instID *uuid.UUID
	if inst != nil {
		instID = &inst.ID
	}
	if _, err := q.Exec(ctx, `INSERT INTO programs (id, name, institution) VALUES ($1, $2, $3)`,
		p.ID, p.Name, instID); err != nil {
		tb.Fatalf("seed program: %v", err)
	}
	return p
}

func SeedCampus(tb testing.TB, ctx context.Context, q db.Querier, name string, inst *models.Institution) *models.Campus {
	tb.Helper()
	c := &models.Campus{ID: uuid.New(), Name: name, Institution: inst}
	var instID *uuid.UUID
	if inst != nil {
		instID = &inst.ID
	}
	if _, err := q.Exec(ctx, `INSERT INTO campuses (id, name, description, institution) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Description, instID); err != nil {
		tb.Fatalf("seed campus: %v", err)
	}
	return c
}

func SeedOffering(tb testing.TB, ctx context.Context, q db.Querier, term string, campus *models.Campus) *models.Offering {
	tb.Helper()
	o := &models.Offering{
		ID:       uuid.New(),
		Term:     term,
		Section:  "001",
		StartsOn: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC),
		Campus:   campus,
	}
	var campusID *uuid.UUID
	if campus != nil {
		campusID = &campus.ID
	}
	if _, err := q.Exec(ctx, `INSERT INTO offerings (id, term, section, starts_on, ends_on, campus) VALUES ($1, $2, $3, $4, $5, $6)`,
		o.ID, o.Term, o.Section, o.StartsOn, o.EndsOn, campusID); err != nil {
		tb.Fatalf("seed offering: %v", err)
	}
	return o
}

func SeedMeeting(tb testing.TB, ctx context.Context, q db.Querier, day time.Weekday, startMinute int) *models.Meeting {
	tb.Helper()
	m := &models.Meeting{ID: uuid.New(), Day: day, StartMinute: startMinute, DurationMinutes: 75, Room: "B-101"}
	if _, err := q.Exec(ctx, `INSERT INTO meetings (id, day, start_minute, duration_minutes, room) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, int16(m.Day), m.StartMinute, m.DurationMinutes, m.Room); err != nil {
		tb.Fatalf("seed meeting: %v", err)
	}
	return m
}

// CountLinks counts the rows of table matching the pair
func CountLinks(tb testing.TB, ctx context.Context, q db.Querier, table, ownerCol string, owner any, memberCol string, member any) int {
	tb.Helper()
	var n int
	sql := "SELECT count(*) FROM " + table + " WHERE " + ownerCol + " = $1 AND " + memberCol + " = $2"
	if err := q.QueryRow(ctx, sql, owner, member).Scan(&n); err != nil {
		tb.Fatalf("count %s: %v", table, err)
	}
	return n
}
