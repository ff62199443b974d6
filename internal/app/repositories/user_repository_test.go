package repositories_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/app/repositories/testutil"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

func TestStudentRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repositories.NewStudentRepository(tx)

	student := &models.Student{Name: "Ada", Email: "Ada@Example.edu"}
	require.NoError(t, repo.Add(ctx, student))

	got, err := repo.GetByEmail(ctx, "ada@example.edu")
	require.NoError(t, err)
	assert.Equal(t, student, got)

	got, err = repo.GetByEmail(ctx, "nobody@example.edu")
	require.NoError(t, err)
	assert.Nil(t, got)

	student.Name = "Ada L."
	require.NoError(t, repo.Edit(ctx, student))
	got, err = repo.Get(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.Name)
}

func TestUserRepository_AddWithStudentAndRoles(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	user := &models.User{
		Student:    &models.Student{Name: "Admin", Email: "admin@localhost"},
		APIKeyHash: "hash",
	}
	require.NoError(t, repos.Users.Add(ctx, user))
	require.NotEqual(t, uuid.Nil, user.Student.ID)

	student, err := repos.Students.Get(ctx, user.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Student, student)

	got, err := repos.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	in, err := repos.Users.IsInRole(ctx, user, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, repos.Users.AddToRole(ctx, user, models.RoleAdmin))
	require.NoError(t, repos.Users.AddToRole(ctx, user, models.RoleAdmin))

	in, err = repos.Users.IsInRole(ctx, user, models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, in)

	admins, err := repos.Users.GetUsersInRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Contains(t, admins, user)

	require.NoError(t, repos.Users.RemoveFromRole(ctx, user, models.RoleAdmin))
	in, err = repos.Users.IsInRole(ctx, user, models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, in)
}

func TestUserRepository_AddReusesExistingStudent(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	student := testutil.SeedStudent(t, ctx, tx, "S", "s@example.edu")
	user := &models.User{Student: student, APIKeyHash: "hash"}
	require.NoError(t, repos.Users.Add(ctx, user))

	got, err := repos.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, student, got.Student)
}

func TestUserRepository_UnknownRole(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	user := &models.User{APIKeyHash: "hash"}
	require.NoError(t, repos.Users.Add(ctx, user))

	err := repos.Users.AddToRole(ctx, user, models.Role("root"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestRepositories_InTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	course := testutil.SeedCourse(t, ctx, tx, "C", nil)
	req := testutil.SeedRequirement(t, ctx, tx, "R")

	err := repos.InTransaction(ctx, func(ctx context.Context, inner *repositories.Repositories) error {
		if err := inner.Courses.AddPrerequisite(ctx, course, req); err != nil {
			return err
		}
		// fails on the unknown requirement and takes the prerequisite with it
		return inner.Courses.AddSatisfiedRequirement(ctx, course, &models.Requirement{ID: uuid.New()})
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	prereqs, err := repos.Requirements.GetPrereqsForCourse(ctx, course)
	require.NoError(t, err)
	assert.Empty(t, prereqs)
}

func TestStudentRepository_Delete(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	student := testutil.SeedStudent(t, ctx, tx, "S", "s@example.edu")
	course := testutil.SeedCourse(t, ctx, tx, "C", nil)
	require.NoError(t, repos.Courses.MarkCourseAsCompletedForStudent(ctx, course, student))

	user := &models.User{Student: student, APIKeyHash: "hash"}
	require.NoError(t, repos.Users.Add(ctx, user))

	require.NoError(t, repos.Students.Delete(ctx, student))

	got, err := repos.Students.Get(ctx, student.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, testutil.CountLinks(t, ctx, tx, "student_x_completed_course", "student", student.ID, "course", course.ID))

	// the user survives without its student
	u, err := repos.Users.Get(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Nil(t, u.Student)

	// the course is untouched
	c, err := repos.Courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
