package services

import (
	"strings"

	"github.com/dhbw-mensa/backend/entity"
)

// Area is where a client lands after resolving its session.
type Area string

const (
	AreaLogin Area = "login"
	AreaChef  Area = "chef"
	AreaHome  Area = "home"
)

// checked in order; the student subdomain must come before the staff domain
var emailRoles = []struct {
	suffix string
	role   entity.Role
}{
	{"@student.dhbw-mannheim.de", entity.RoleStudent},
	{"@dhbw-mannheim.de", entity.RoleDozent},
	{"@mensa.de", entity.RoleKoch},
}

// RoleForEmail infers the role from the email domain. Unknown domains are guests.
func RoleForEmail(email string) entity.Role {
	lower := strings.ToLower(strings.TrimSpace(email))
	for _, er := range emailRoles {
		if strings.HasSuffix(lower, er.suffix) {
			return er.role
		}
	}
	return entity.RoleGast
}

func AreaFor(role entity.Role) Area {
	if role == entity.RoleKoch {
		return AreaChef
	}
	return AreaHome
}
