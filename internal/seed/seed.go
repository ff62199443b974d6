package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/config"
	"github.com/yigit/athena/internal/pkg/auth"
)

// adminKey turns the configured value into a key. A full "<id>.<secret>"
// value is used as is, anything else is taken as the secret of a new user.
func adminKey(configured string) (auth.APIKey, bool) {
	if configured == "" {
		return auth.NewAPIKey(uuid.New()), true
	}
	if key, err := auth.ParseAPIKey(configured); err == nil {
		return key, false
	}
	return auth.APIKey{UserID: uuid.New(), Secret: configured}, false
}

// EnsureAdmin makes sure at least one user holds the admin role. When one
// already does it changes nothing and returns a nil key. Otherwise it creates
// the administrator described by cfg and returns its key.
func EnsureAdmin(ctx context.Context, users repositories.UserRepository, students repositories.StudentRepository, cfg config.AdminConfig, lgr zerolog.Logger) (*auth.APIKey, error) {
	admins, err := users.GetUsersInRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	if len(admins) > 0 {
		lgr.Info().Int("admins", len(admins)).Msg("Administrator present, skipping bootstrap")
		return nil, nil
	}

	key, generated := adminKey(cfg.APIKey)

	existing, err := users.Get(ctx, key.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up administrator user: %w", err)
	}
	if existing != nil {
		// The configured key belongs to a user that lost the role
		lgr.Warn().Str("userID", existing.ID.String()).Msg("Restoring admin role to configured user")
		if err := users.AddToRole(ctx, existing, models.RoleAdmin); err != nil {
			return nil, err
		}
		return &key, nil
	}

	student, err := students.GetByEmail(ctx, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up administrator student: %w", err)
	}
	if student == nil {
		student = &models.Student{Name: cfg.Name, Email: cfg.Email}
	}

	hash, err := auth.HashSecret(key.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash administrator key: %w", err)
	}

	user := &models.User{ID: key.UserID, Student: student, APIKeyHash: hash}
	var finalErr error
	if err := users.Add(ctx, user); err != nil {
		finalErr = errors.Join(finalErr, err)
	} else if err := users.AddToRole(ctx, user, models.RoleAdmin); err != nil {
		finalErr = errors.Join(finalErr, err)
	}
	if finalErr != nil {
		lgr.Error().Err(finalErr).Msg("Error creating administrator")
		return nil, finalErr
	}

	event := lgr.Warn().Str("userID", user.ID.String()).Str("email", student.Email)
	if generated {
		event = event.Str("apiKey", key.String())
	}
	event.Msg("Created administrator")

	return &key, nil
}
