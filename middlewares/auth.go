package middlewares

import (
	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware requires a live session and, if roles are given, one of them.
func AuthMiddleware(sessions *services.SessionService, roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := utils.BearerToken(c)
		if token == "" {
			resp.Unauthorized(c, "missing or invalid token")
			c.Abort()
			return
		}

		sess, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			resp.Error(c, err)
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Set("userId", sess.UserID)
		c.Set("role", string(sess.Role))

		if len(roles) > 0 {
			// the gate follows the stored role, not the one cached at sign-in
			role, err := sessions.StoredRole(c.Request.Context(), sess.UserID)
			if err != nil {
				resp.Error(c, err)
				c.Abort()
				return
			}
			if !hasRole(role, roles) {
				resp.Forbidden(c, "forbidden")
				c.Abort()
				return
			}
			c.Set("role", string(role))
		}
		c.Next()
	}
}

func hasRole(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// CurrentSession returns the session set by AuthMiddleware.
func CurrentSession(c *gin.Context) *services.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*services.Session); ok {
			return s
		}
	}
	return nil
}
