package models

// Role names a permission group a User can belong to
type Role string

const (
	// RoleAdmin may mutate the catalog
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}
