package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

// Scheme is the Authorization header scheme carrying an API key
const Scheme = "ApiKey"

// APIKey identifies a user and proves possession of its secret. Its text
// form is "<user id>.<secret>"; only a hash of the secret is stored.
type APIKey struct {
	UserID uuid.UUID
	Secret string
}

func (k APIKey) String() string {
	return k.UserID.String() + "." + k.Secret
}

// NewAPIKey issues a key with a random secret for userID
func NewAPIKey(userID uuid.UUID) APIKey {
	return APIKey{
		UserID: userID,
		Secret: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
}

// ParseAPIKey reads the text form produced by APIKey.String
func ParseAPIKey(s string) (APIKey, error) {
	id, secret, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || secret == "" {
		return APIKey{}, fmt.Errorf("malformed key: %w", apperrors.ErrInvalidAPIKey)
	}
	userID, err := uuid.Parse(id)
	if err != nil {
		return APIKey{}, fmt.Errorf("malformed key id: %w", apperrors.ErrInvalidAPIKey)
	}
	return APIKey{UserID: userID, Secret: secret}, nil
}

// ParseAuthorization extracts the key from an "ApiKey <key>" header value
func ParseAuthorization(header string) (APIKey, error) {
	scheme, value, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return APIKey{}, fmt.Errorf("expected %s authorization: %w", Scheme, apperrors.ErrUnauthorized)
	}
	return ParseAPIKey(value)
}
