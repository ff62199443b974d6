package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type campusRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewCampusRepository creates a CampusRepository running on q
func NewCampusRepository(q db.Querier) CampusRepository {
	return &campusRepository{q: q, sb: newStatementBuilder()}
}

func (r *campusRepository) selectCampuses() squirrel.SelectBuilder {
	return r.sb.Select(append([]string{"ca.id", "ca.name", "ca.description"}, institutionColumns...)...).
		From("campuses ca").
		LeftJoin("institutions i ON i.id = ca.institution")
}

func scanCampus(row scanner) (*models.Campus, error) {
	campus := &models.Campus{}
	var inst nullableInstitution
	if err := row.Scan(append([]any{&campus.ID, &campus.Name, &campus.Description}, inst.dest()...)...); err != nil {
		return nil, err
	}
	campus.Institution = inst.value()
	return campus, nil
}

func campusInstitutionID(c *models.Campus) *uuid.UUID {
	if c.Institution == nil {
		return nil
	}
	id := c.Institution.ID
	return &id
}

func (r *campusRepository) Get(ctx context.Context, id uuid.UUID) (*models.Campus, error) {
	qb := r.selectCampuses().Where(squirrel.Eq{"ca.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get campus", qb, scanCampus)
}

func (r *campusRepository) GetAll(ctx context.Context) ([]*models.Campus, error) {
	return queryAll(ctx, r.q, "get campuses", r.selectCampuses().OrderBy("ca.name", "ca.id"), scanCampus)
}

func (r *campusRepository) Add(ctx context.Context, campus *models.Campus) error {
	ensureID(&campus.ID)
	return exec(ctx, r.q, "add campus", r.sb.Insert("campuses").
		Columns("id", "name", "description", "institution").
		Values(campus.ID, campus.Name, campus.Description, campusInstitutionID(campus)))
}

func (r *campusRepository) Edit(ctx context.Context, campus *models.Campus) error {
	return exec(ctx, r.q, "edit campus", r.sb.Update("campuses").
		SetMap(map[string]interface{}{
			"name":        campus.Name,
			"description": campus.Description,
			"institution": campusInstitutionID(campus),
		}).
		Where(squirrel.Eq{"id": campus.ID}))
}

func (r *campusRepository) Delete(ctx context.Context, campus *models.Campus) error {
	return exec(ctx, r.q, "delete campus", r.sb.Delete("campuses").Where(squirrel.Eq{"id": campus.ID}))
}

func (r *campusRepository) GetCampusesForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Campus, error) {
	qb := r.selectCampuses().Where(squirrel.Eq{"ca.institution": institution.ID}).OrderBy("ca.name", "ca.id")
	return queryAll(ctx, r.q, "get campuses for institution", qb, scanCampus)
}
