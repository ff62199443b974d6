package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
	"github.com/yigit/athena/internal/pkg/apperrors"
	"github.com/yigit/athena/internal/pkg/logger"
)

type userRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a UserRepository running on q
func NewUserRepository(q db.Querier) UserRepository {
	return &userRepository{q: q, sb: newStatementBuilder()}
}

func (r *userRepository) selectUsers() squirrel.SelectBuilder {
	return r.sb.Select("u.id", "u.api_key_hash", "s.id", "s.name", "s.email").
		From("users u")
}

func withUserStudent(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return qb.LeftJoin("students s ON s.id = u.student").OrderBy("u.id")
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	var (
		studentID    *uuid.UUID
		studentName  *string
		studentEmail *string
	)
	if err := row.Scan(&u.ID, &u.APIKeyHash, &studentID, &studentName, &studentEmail); err != nil {
		return nil, err
	}
	if studentID != nil {
		u.Student = &models.Student{ID: *studentID}
		if studentName != nil {
			u.Student.Name = *studentName
		}
		if studentEmail != nil {
			u.Student.Email = *studentEmail
		}
	}
	return u, nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	qb := withUserStudent(r.selectUsers()).Where(squirrel.Eq{"u.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get user", qb, scanUser)
}

// Add stores the user together with its student. The student row is only
// inserted when it does not exist yet.
func (r *userRepository) Add(ctx context.Context, user *models.User) error {
	ensureID(&user.ID)

	return db.WithTransaction(ctx, r.q, func(ctx context.Context, tx pgx.Tx) error {
		var studentID *uuid.UUID
		if user.Student != nil {
			students := NewStudentRepository(tx)
			existing, err := students.Get(ctx, user.Student.ID)
			if err != nil {
				return err
			}
			if existing == nil {
				if err := students.Add(ctx, user.Student); err != nil {
					return err
				}
			}
			id := user.Student.ID
			studentID = &id
		}

		err := exec(ctx, tx, "add user", r.sb.Insert("users").
			Columns("id", "student", "api_key_hash").
			Values(user.ID, studentID, user.APIKeyHash))
		if err != nil {
			logger.Error().Err(err).Str("userID", user.ID.String()).Msg("Error adding user")
		}
		return err
	})
}

// Delete removes the user and its role memberships. The linked student stays.
func (r *userRepository) Delete(ctx context.Context, user *models.User) error {
	return exec(ctx, r.q, "delete user", r.sb.Delete("users").Where(squirrel.Eq{"id": user.ID}))
}

func checkRole(role models.Role) error {
	if !role.Valid() {
		return fmt.Errorf("role %q: %w", role, apperrors.ErrInvalidArgument)
	}
	return nil
}

func (r *userRepository) AddToRole(ctx context.Context, user *models.User, role models.Role) error {
	if err := checkRole(role); err != nil {
		return err
	}
	return UserRoles.Add(ctx, r.q, user.ID, string(role))
}

func (r *userRepository) RemoveFromRole(ctx context.Context, user *models.User, role models.Role) error {
	return UserRoles.Remove(ctx, r.q, user.ID, string(role))
}

func (r *userRepository) IsInRole(ctx context.Context, user *models.User, role models.Role) (bool, error) {
	return UserRoles.Has(ctx, r.q, user.ID, string(role))
}

func (r *userRepository) GetUsersInRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	qb := withUserStudent(r.selectUsers().Join(UserRoles.OwnerJoin("u"))).
		Where(UserRoles.MemberIs(string(role)))
	return queryAll(ctx, r.q, "get users in role", qb, scanUser)
}
