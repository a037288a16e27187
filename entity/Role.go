package entity

// Role is the stored role string of a user. Values match the user_roles table.
type Role string

const (
	RoleStudent Role = "Student"
	RoleDozent  Role = "Dozent"
	RoleKoch    Role = "Koch"
	RoleGast    Role = "Gast"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleDozent, RoleKoch, RoleGast:
		return true
	}
	return false
}
