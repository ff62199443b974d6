package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/athena/internal/db"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

// Repositories holds all the repository instances, bound to one Querier
type Repositories struct {
	Courses      CourseRepository
	Offerings    OfferingRepository
	Meetings     MeetingRepository
	Requirements RequirementRepository
	Students     StudentRepository
	Campuses     CampusRepository
	Institutions InstitutionRepository
	Programs     ProgramRepository
	Users        UserRepository

	q  db.Querier
	tx Transactor
}

// Transactor runs fn with repositories bound to a single unit of work
type Transactor func(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error

// New initializes all repositories on q, which may be the pool or a transaction
func New(q db.Querier) *Repositories {
	return &Repositories{
		Courses:      NewCourseRepository(q),
		Offerings:    NewOfferingRepository(q),
		Meetings:     NewMeetingRepository(q),
		Requirements: NewRequirementRepository(q),
		Students:     NewStudentRepository(q),
		Campuses:     NewCampusRepository(q),
		Institutions: NewInstitutionRepository(q),
		Programs:     NewProgramRepository(q),
		Users:        NewUserRepository(q),
		q:            q,
	}
}

// SetTransactor replaces how InTransaction groups operations. Stores that do
// not run on a Querier use it to supply their own unit of work.
func (r *Repositories) SetTransactor(tx Transactor) {
	r.tx = tx
}

// InTransaction runs fn with a copy of the repositories bound to a single
// transaction. Every operation fn performs commits or rolls back together.
func (r *Repositories) InTransaction(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	if r.tx != nil {
		return r.tx(ctx, fn)
	}
	if r.q == nil {
		return fmt.Errorf("no store to run a transaction on: %w", apperrors.ErrStoreUnavailable)
	}
	return db.WithTransaction(ctx, r.q, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, New(tx))
	})
}
