package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
)

// Every Get returns (nil, nil) when the id does not resolve. Add fails with
// apperrors.ErrConflict on a duplicate id. Edit replaces the whole record and
// Delete removes the base row; both affect nothing when the id is unknown.
// Relationship mutations are idempotent: adding a present pair or removing an
// absent one succeeds without changing the store.

// CourseRepository owns courses and every course-centric relationship.
type CourseRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Course, error)
	Add(ctx context.Context, course *models.Course) error
	Edit(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, course *models.Course) error

	GetCoursesForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Course, error)
	GetCompletedCoursesForStudent(ctx context.Context, student *models.Student) ([]*models.Course, error)
	GetInProgressCoursesForStudent(ctx context.Context, student *models.Student) ([]*models.Course, error)

	MarkCourseAsCompletedForStudent(ctx context.Context, course *models.Course, student *models.Student) error
	MarkCourseAsUncompletedForStudent(ctx context.Context, course *models.Course, student *models.Student) error
	MarkCourseInProgressForStudent(ctx context.Context, course *models.Course, student *models.Student) error
	MarkCourseNotInProgressForStudent(ctx context.Context, course *models.Course, student *models.Student) error

	AddOffering(ctx context.Context, course *models.Course, offering *models.Offering) error
	RemoveOffering(ctx context.Context, course *models.Course, offering *models.Offering) error
	AddSatisfiedRequirement(ctx context.Context, course *models.Course, requirement *models.Requirement) error
	RemoveSatisfiedRequirement(ctx context.Context, course *models.Course, requirement *models.Requirement) error
	AddPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error
	RemovePrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error
	AddConcurrentPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error
	RemoveConcurrentPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error
}

// OfferingRepository owns offerings and their meetings. The course to
// offering relation is read here but only written by CourseRepository.
type OfferingRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Offering, error)
	Add(ctx context.Context, offering *models.Offering) error
	Edit(ctx context.Context, offering *models.Offering) error
	Delete(ctx context.Context, offering *models.Offering) error

	GetOfferingsForCourse(ctx context.Context, course *models.Course) ([]*models.Offering, error)
	AddMeeting(ctx context.Context, offering *models.Offering, meeting *models.Meeting) error
	RemoveMeeting(ctx context.Context, offering *models.Offering, meeting *models.Meeting) error
}

type MeetingRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Meeting, error)
	Add(ctx context.Context, meeting *models.Meeting) error
	Edit(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, meeting *models.Meeting) error

	GetMeetingsForOffering(ctx context.Context, offering *models.Offering) ([]*models.Meeting, error)
}

// RequirementRepository is read-oriented: course and program requirement
// links are written through CourseRepository and ProgramRepository.
type RequirementRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Requirement, error)
	Add(ctx context.Context, requirement *models.Requirement) error
	Edit(ctx context.Context, requirement *models.Requirement) error
	Delete(ctx context.Context, requirement *models.Requirement) error

	GetRequirementsCourseSatisfies(ctx context.Context, course *models.Course) ([]*models.Requirement, error)
	GetPrereqsForCourse(ctx context.Context, course *models.Course) ([]*models.Requirement, error)
	GetConcurrentPrereqsForCourse(ctx context.Context, course *models.Course) ([]*models.Requirement, error)
	GetRequirementsForProgram(ctx context.Context, program *models.Program) ([]*models.Requirement, error)
}

type StudentRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Add(ctx context.Context, student *models.Student) error
	Edit(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, student *models.Student) error
}

type CampusRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Campus, error)
	GetAll(ctx context.Context) ([]*models.Campus, error)
	Add(ctx context.Context, campus *models.Campus) error
	Edit(ctx context.Context, campus *models.Campus) error
	Delete(ctx context.Context, campus *models.Campus) error

	GetCampusesForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Campus, error)
}

type InstitutionRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Institution, error)
	GetAll(ctx context.Context) ([]*models.Institution, error)
	Add(ctx context.Context, institution *models.Institution) error
	Edit(ctx context.Context, institution *models.Institution) error
	Delete(ctx context.Context, institution *models.Institution) error

	GetInstitutionsForStudent(ctx context.Context, student *models.Student) ([]*models.Institution, error)
	EnrollStudent(ctx context.Context, institution *models.Institution, student *models.Student) error
	UnenrollStudent(ctx context.Context, institution *models.Institution, student *models.Student) error
}

// ProgramRepository owns programs, their requirements and student enrollment.
type ProgramRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Program, error)
	Add(ctx context.Context, program *models.Program) error
	Edit(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, program *models.Program) error

	GetProgramsForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Program, error)
	GetProgramsForStudent(ctx context.Context, student *models.Student) ([]*models.Program, error)
	EnrollStudent(ctx context.Context, program *models.Program, student *models.Student) error
	UnenrollStudent(ctx context.Context, program *models.Program, student *models.Student) error
	AddRequirement(ctx context.Context, program *models.Program, requirement *models.Requirement) error
	RemoveRequirement(ctx context.Context, program *models.Program, requirement *models.Requirement) error
}

// UserRepository manages API identities and their roles.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	// Add stores the user and, when it is not stored yet, the linked student
	// in a single transaction.
	Add(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error

	AddToRole(ctx context.Context, user *models.User, role models.Role) error
	RemoveFromRole(ctx context.Context, user *models.User, role models.Role) error
	IsInRole(ctx context.Context, user *models.User, role models.Role) (bool, error)
	GetUsersInRole(ctx context.Context, role models.Role) ([]*models.User, error)
}
