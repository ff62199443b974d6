package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type institutionRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates an InstitutionRepository running on q
func NewInstitutionRepository(q db.Querier) InstitutionRepository {
	return &institutionRepository{q: q, sb: newStatementBuilder()}
}

func (r *institutionRepository) selectInstitutions() squirrel.SelectBuilder {
	return r.sb.Select(institutionColumns...).From("institutions i")
}

func scanInstitution(row scanner) (*models.Institution, error) {
	inst := &models.Institution{}
	if err := row.Scan(&inst.ID, &inst.Name, &inst.Description); err != nil {
		return nil, err
	}
	return inst, nil
}

func (r *institutionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	qb := r.selectInstitutions().Where(squirrel.Eq{"i.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get institution", qb, scanInstitution)
}

func (r *institutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	return queryAll(ctx, r.q, "get institutions", r.selectInstitutions().OrderBy("i.name", "i.id"), scanInstitution)
}

func (r *institutionRepository) Add(ctx context.Context, institution *models.Institution) error {
	ensureID(&institution.ID)
	return exec(ctx, r.q, "add institution", r.sb.Insert("institutions").
		Columns("id", "name", "description").
		Values(institution.ID, institution.Name, institution.Description))
}

func (r *institutionRepository) Edit(ctx context.Context, institution *models.Institution) error {
	return exec(ctx, r.q, "edit institution", r.sb.Update("institutions").
		Set("name", institution.Name).
		Set("description", institution.Description).
		Where(squirrel.Eq{"id": institution.ID}))
}

// Delete removes the institution. Courses, campuses and programs keep their
// rows with the institution reference cleared.
func (r *institutionRepository) Delete(ctx context.Context, institution *models.Institution) error {
	return exec(ctx, r.q, "delete institution", r.sb.Delete("institutions").Where(squirrel.Eq{"id": institution.ID}))
}

func (r *institutionRepository) GetInstitutionsForStudent(ctx context.Context, student *models.Student) ([]*models.Institution, error) {
	qb := r.selectInstitutions().
		Join(InstitutionEnrollments.MemberJoin("i")).
		Where(InstitutionEnrollments.OwnerIs(student.ID)).
		OrderBy("i.name", "i.id")
	return queryAll(ctx, r.q, "get institutions for student", qb, scanInstitution)
}

func (r *institutionRepository) EnrollStudent(ctx context.Context, institution *models.Institution, student *models.Student) error {
	return InstitutionEnrollments.Add(ctx, r.q, student.ID, institution.ID)
}

func (r *institutionRepository) UnenrollStudent(ctx context.Context, institution *models.Institution, student *models.Student) error {
	return InstitutionEnrollments.Remove(ctx, r.q, student.ID, institution.ID)
}
