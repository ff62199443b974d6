package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type courseRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a CourseRepository running on q
func NewCourseRepository(q db.Querier) CourseRepository {
	return &courseRepository{q: q, sb: newStatementBuilder()}
}

func (r *courseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(append([]string{"c.id", "c.name"}, institutionColumns...)...).
		From("courses c")
}

func withCourseInstitution(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return qb.LeftJoin("institutions i ON i.id = c.institution").OrderBy("c.name", "c.id")
}

func scanCourse(row scanner) (*models.Course, error) {
	course := &models.Course{}
	var inst nullableInstitution
	if err := row.Scan(append([]any{&course.ID, &course.Name}, inst.dest()...)...); err != nil {
		return nil, err
	}
	course.Institution = inst.value()
	return course, nil
}

// Get retrieves a course with its institution
func (r *courseRepository) Get(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	qb := withCourseInstitution(r.selectCourses()).Where(squirrel.Eq{"c.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get course", qb, scanCourse)
}

// Add inserts a course, assigning an id if it has none
func (r *courseRepository) Add(ctx context.Context, course *models.Course) error {
	ensureID(&course.ID)
	return exec(ctx, r.q, "add course", r.sb.Insert("courses").
		Columns("id", "name", "institution").
		Values(course.ID, course.Name, course.InstitutionID()))
}

func (r *courseRepository) Edit(ctx context.Context, course *models.Course) error {
	return exec(ctx, r.q, "edit course", r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"name":        course.Name,
			"institution": course.InstitutionID(),
		}).
		Where(squirrel.Eq{"id": course.ID}))
}

// Delete removes the course row. Link rows go with it through ON DELETE CASCADE.
func (r *courseRepository) Delete(ctx context.Context, course *models.Course) error {
	return exec(ctx, r.q, "delete course", r.sb.Delete("courses").Where(squirrel.Eq{"id": course.ID}))
}

func (r *courseRepository) GetCoursesForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Course, error) {
	qb := withCourseInstitution(r.selectCourses()).Where(squirrel.Eq{"c.institution": institution.ID})
	return queryAll(ctx, r.q, "get courses for institution", qb, scanCourse)
}

func (r *courseRepository) coursesForStudent(ctx context.Context, op string, link Link, student *models.Student) ([]*models.Course, error) {
	qb := withCourseInstitution(r.selectCourses().Join(link.MemberJoin("c"))).Where(link.OwnerIs(student.ID))
	return queryAll(ctx, r.q, op, qb, scanCourse)
}

func (r *courseRepository) GetCompletedCoursesForStudent(ctx context.Context, student *models.Student) ([]*models.Course, error) {
	return r.coursesForStudent(ctx, "get completed courses", CompletedCourses, student)
}

func (r *courseRepository) GetInProgressCoursesForStudent(ctx context.Context, student *models.Student) ([]*models.Course, error) {
	return r.coursesForStudent(ctx, "get in-progress courses", InProgressCourses, student)
}

func (r *courseRepository) MarkCourseAsCompletedForStudent(ctx context.Context, course *models.Course, student *models.Student) error {
	return CompletedCourses.Add(ctx, r.q, student.ID, course.ID)
}

func (r *courseRepository) MarkCourseAsUncompletedForStudent(ctx context.Context, course *models.Course, student *models.Student) error {
	return CompletedCourses.Remove(ctx, r.q, student.ID, course.ID)
}

func (r *courseRepository) MarkCourseInProgressForStudent(ctx context.Context, course *models.Course, student *models.Student) error {
	return InProgressCourses.Add(ctx, r.q, student.ID, course.ID)
}

func (r *courseRepository) MarkCourseNotInProgressForStudent(ctx context.Context, course *models.Course, student *models.Student) error {
	return InProgressCourses.Remove(ctx, r.q, student.ID, course.ID)
}

func (r *courseRepository) AddOffering(ctx context.Context, course *models.Course, offering *models.Offering) error {
	return CourseOfferings.Add(ctx, r.q, course.ID, offering.ID)
}

func (r *courseRepository) RemoveOffering(ctx context.Context, course *models.Course, offering *models.Offering) error {
	return CourseOfferings.Remove(ctx, r.q, course.ID, offering.ID)
}

func (r *courseRepository) AddSatisfiedRequirement(ctx context.Context, course *models.Course, requirement *models.Requirement) error {
	return SatisfiedRequirements.Add(ctx, r.q, course.ID, requirement.ID)
}

func (r *courseRepository) RemoveSatisfiedRequirement(ctx context.Context, course *models.Course, requirement *models.Requirement) error {
	return SatisfiedRequirements.Remove(ctx, r.q, course.ID, requirement.ID)
}

func (r *courseRepository) AddPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error {
	return Prerequisites.Add(ctx, r.q, course.ID, prereq.ID)
}

func (r *courseRepository) RemovePrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error {
	return Prerequisites.Remove(ctx, r.q, course.ID, prereq.ID)
}

func (r *courseRepository) AddConcurrentPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error {
	return ConcurrentPrerequisites.Add(ctx, r.q, course.ID, prereq.ID)
}

func (r *courseRepository) RemoveConcurrentPrerequisite(ctx context.Context, course *models.Course, prereq *models.Requirement) error {
	return ConcurrentPrerequisites.Remove(ctx, r.q, course.ID, prereq.ID)
}
