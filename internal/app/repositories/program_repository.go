package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type programRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewProgramRepository creates a ProgramRepository running on q
func NewProgramRepository(q db.Querier) ProgramRepository {
	return &programRepository{q: q, sb: newStatementBuilder()}
}

func (r *programRepository) selectPrograms() squirrel.SelectBuilder {
	return r.sb.Select(append([]string{"p.id", "p.name"}, institutionColumns...)...).From("programs p")
}

func withProgramInstitution(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return qb.LeftJoin("institutions i ON i.id = p.institution").OrderBy("p.name", "p.id")
}

func scanProgram(row scanner) (*models.Program, error) {
	p := &models.Program{}
	var inst nullableInstitution
	if err := row.Scan(append([]any{&p.ID, &p.Name}, inst.dest()...)...); err != nil {
		return nil, err
	}
	p.Institution = inst.value()
	return p, nil
}

func programInstitutionID(p *models.Program) *uuid.UUID {
	if p.Institution == nil {
		return nil
	}
	id := p.Institution.ID
	return &id
}

func (r *programRepository) Get(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	qb := withProgramInstitution(r.selectPrograms()).Where(squirrel.Eq{"p.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get program", qb, scanProgram)
}

func (r *programRepository) Add(ctx context.Context, program *models.Program) error {
	ensureID(&program.ID)
	return exec(ctx, r.q, "add program", r.sb.Insert("programs").
		Columns("id", "name", "institution").
		Values(program.ID, program.Name, programInstitutionID(program)))
}

func (r *programRepository) Edit(ctx context.Context, program *models.Program) error {
	return exec(ctx, r.q, "edit program", r.sb.Update("programs").
		SetMap(map[string]interface{}{
			"name":        program.Name,
			"institution": programInstitutionID(program),
		}).
		Where(squirrel.Eq{"id": program.ID}))
}

func (r *programRepository) Delete(ctx context.Context, program *models.Program) error {
	return exec(ctx, r.q, "delete program", r.sb.Delete("programs").Where(squirrel.Eq{"id": program.ID}))
}

func (r *programRepository) GetProgramsForInstitution(ctx context.Context, institution *models.Institution) ([]*models.Program, error) {
	qb := withProgramInstitution(r.selectPrograms()).Where(squirrel.Eq{"p.institution": institution.ID})
	return queryAll(ctx, r.q, "get programs for institution", qb, scanProgram)
}

func (r *programRepository) GetProgramsForStudent(ctx context.Context, student *models.Student) ([]*models.Program, error) {
	qb := withProgramInstitution(r.selectPrograms().Join(ProgramEnrollments.MemberJoin("p"))).
		Where(ProgramEnrollments.OwnerIs(student.ID))
	return queryAll(ctx, r.q, "get programs for student", qb, scanProgram)
}

func (r *programRepository) EnrollStudent(ctx context.Context, program *models.Program, student *models.Student) error {
	return ProgramEnrollments.Add(ctx, r.q, student.ID, program.ID)
}

func (r *programRepository) UnenrollStudent(ctx context.Context, program *models.Program, student *models.Student) error {
	return ProgramEnrollments.Remove(ctx, r.q, student.ID, program.ID)
}

func (r *programRepository) AddRequirement(ctx context.Context, program *models.Program, requirement *models.Requirement) error {
	return ProgramRequirements.Add(ctx, r.q, program.ID, requirement.ID)
}

func (r *programRepository) RemoveRequirement(ctx context.Context, program *models.Program, requirement *models.Requirement) error {
	return ProgramRequirements.Remove(ctx, r.q, program.ID, requirement.ID)
}
