package services

import (
	"testing"

	"github.com/dhbw-mensa/backend/entity"

	"github.com/stretchr/testify/assert"
)

func TestRoleForEmail(t *testing.T) {
	cases := map[string]entity.Role{
		"max@student.dhbw-mannheim.de":  entity.RoleStudent,
		"MAX@Student.DHBW-Mannheim.de":  entity.RoleStudent,
		"prof@dhbw-mannheim.de":         entity.RoleDozent,
		"koch@mensa.de":                 entity.RoleKoch,
		" Koch@MENSA.de ":               entity.RoleKoch,
		"someone@gmail.com":             entity.RoleGast,
		"fake@mensa.de.example.com":     entity.RoleGast,
		"x@notstudent-dhbw-mannheim.de": entity.RoleGast,
		"":                              entity.RoleGast,
	}
	for email, want := range cases {
		assert.Equal(t, want, RoleForEmail(email), email)
	}
}

func TestAreaFor(t *testing.T) {
	assert.Equal(t, AreaChef, AreaFor(entity.RoleKoch))
	for _, r := range []entity.Role{entity.RoleStudent, entity.RoleDozent, entity.RoleGast, ""} {
		assert.Equal(t, AreaHome, AreaFor(r))
	}
}
