package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/app/repositories/testutil"
)

func TestProgramRepository_Requirements(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	inst := testutil.SeedInstitution(t, ctx, tx, "State U")
	program := testutil.SeedProgram(t, ctx, tx, "BSc CS", inst)
	req := testutil.SeedRequirement(t, ctx, tx, "Math core")

	require.NoError(t, repos.Programs.AddRequirement(ctx, program, req))
	require.NoError(t, repos.Programs.AddRequirement(ctx, program, req))

	got, err := repos.Requirements.GetRequirementsForProgram(ctx, program)
	require.NoError(t, err)
	assert.Equal(t, []*models.Requirement{req}, got)

	require.NoError(t, repos.Programs.RemoveRequirement(ctx, program, req))
	got, err = repos.Requirements.GetRequirementsForProgram(ctx, program)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProgramRepository_ForInstitutionAndStudent(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	inst := testutil.SeedInstitution(t, ctx, tx, "State U")
	cs := testutil.SeedProgram(t, ctx, tx, "BSc CS", inst)
	math := testutil.SeedProgram(t, ctx, tx, "BSc Math", inst)
	student := testutil.SeedStudent(t, ctx, tx, "S", "s@example.edu")

	got, err := repos.Programs.GetProgramsForInstitution(ctx, inst)
	require.NoError(t, err)
	assert.Equal(t, []*models.Program{cs, math}, got)

	require.NoError(t, repos.Programs.EnrollStudent(ctx, math, student))
	require.NoError(t, repos.Programs.EnrollStudent(ctx, math, student))

	got, err = repos.Programs.GetProgramsForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, []*models.Program{math}, got)

	require.NoError(t, repos.Programs.UnenrollStudent(ctx, math, student))
	got, err = repos.Programs.GetProgramsForStudent(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProgramRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repositories.NewProgramRepository(tx)

	program := &models.Program{Name: "Certificate"}
	require.NoError(t, repo.Add(ctx, program))

	program.Name = "Graduate Certificate"
	require.NoError(t, repo.Edit(ctx, program))

	got, err := repo.Get(ctx, program.ID)
	require.NoError(t, err)
	assert.Equal(t, program, got)

	require.NoError(t, repo.Delete(ctx, program))
	got, err = repo.Get(ctx, program.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
