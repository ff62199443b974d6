package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type studentRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a StudentRepository running on q
func NewStudentRepository(q db.Querier) StudentRepository {
	return &studentRepository{q: q, sb: newStatementBuilder()}
}

func (r *studentRepository) selectStudents() squirrel.SelectBuilder {
	return r.sb.Select("s.id", "s.name", "s.email").From("students s")
}

func scanStudent(row scanner) (*models.Student, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *studentRepository) Get(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	return queryOne(ctx, r.q, "get student", r.selectStudents().Where(squirrel.Eq{"s.id": id}).Limit(1), scanStudent)
}

// GetByEmail matches the address case-insensitively
func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	qb := r.selectStudents().
		Where(squirrel.Expr("lower(s.email) = lower(?)", email)).
		OrderBy("s.id").
		Limit(1)
	return queryOne(ctx, r.q, "get student by email", qb, scanStudent)
}

func (r *studentRepository) Add(ctx context.Context, student *models.Student) error {
	ensureID(&student.ID)
	return exec(ctx, r.q, "add student", r.sb.Insert("students").
		Columns("id", "name", "email").
		Values(student.ID, student.Name, student.Email))
}

func (r *studentRepository) Edit(ctx context.Context, student *models.Student) error {
	return exec(ctx, r.q, "edit student", r.sb.Update("students").
		Set("name", student.Name).
		Set("email", student.Email).
		Where(squirrel.Eq{"id": student.ID}))
}

func (r *studentRepository) Delete(ctx context.Context, student *models.Student) error {
	return exec(ctx, r.q, "delete student", r.sb.Delete("students").Where(squirrel.Eq{"id": student.ID}))
}
