package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type requirementRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewRequirementRepository creates a RequirementRepository running on q
func NewRequirementRepository(q db.Querier) RequirementRepository {
	return &requirementRepository{q: q, sb: newStatementBuilder()}
}

func (r *requirementRepository) selectRequirements() squirrel.SelectBuilder {
	return r.sb.Select("r.id", "r.name", "r.description").From("requirements r")
}

func scanRequirement(row scanner) (*models.Requirement, error) {
	req := &models.Requirement{}
	if err := row.Scan(&req.ID, &req.Name, &req.Description); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requirementRepository) Get(ctx context.Context, id uuid.UUID) (*models.Requirement, error) {
	qb := r.selectRequirements().Where(squirrel.Eq{"r.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get requirement", qb, scanRequirement)
}

func (r *requirementRepository) Add(ctx context.Context, requirement *models.Requirement) error {
	ensureID(&requirement.ID)
	return exec(ctx, r.q, "add requirement", r.sb.Insert("requirements").
		Columns("id", "name", "description").
		Values(requirement.ID, requirement.Name, requirement.Description))
}

func (r *requirementRepository) Edit(ctx context.Context, requirement *models.Requirement) error {
	return exec(ctx, r.q, "edit requirement", r.sb.Update("requirements").
		Set("name", requirement.Name).
		Set("description", requirement.Description).
		Where(squirrel.Eq{"id": requirement.ID}))
}

func (r *requirementRepository) Delete(ctx context.Context, requirement *models.Requirement) error {
	return exec(ctx, r.q, "delete requirement", r.sb.Delete("requirements").Where(squirrel.Eq{"id": requirement.ID}))
}

// linked reads the requirements reachable from owner through link
func (r *requirementRepository) linked(ctx context.Context, op string, link Link, owner uuid.UUID) ([]*models.Requirement, error) {
	qb := r.selectRequirements().
		Join(link.MemberJoin("r")).
		Where(link.OwnerIs(owner)).
		OrderBy("r.name", "r.id")
	return queryAll(ctx, r.q, op, qb, scanRequirement)
}

func (r *requirementRepository) GetRequirementsCourseSatisfies(ctx context.Context, course *models.Course) ([]*models.Requirement, error) {
	return r.linked(ctx, "get satisfied requirements", SatisfiedRequirements, course.ID)
}

func (r *requirementRepository) GetPrereqsForCourse(ctx context.Context, course *models.Course) ([]*models.Requirement, error) {
	return r.linked(ctx, "get prerequisites", Prerequisites, course.ID)
}

func (r *requirementRepository) GetConcurrentPrereqsForCourse(ctx context.Context, course *models.Course) ([]*models.Requirement, error) {
	return r.linked(ctx, "get concurrent prerequisites", ConcurrentPrerequisites, course.ID)
}

func (r *requirementRepository) GetRequirementsForProgram(ctx context.Context, program *models.Program) ([]*models.Requirement, error) {
	return r.linked(ctx, "get program requirements", ProgramRequirements, program.ID)
}
