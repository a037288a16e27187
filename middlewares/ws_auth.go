package middlewares

import (
	"net/http"

	"github.com/dhbw-mensa/backend/services"
	"github.com/dhbw-mensa/backend/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware authenticates websocket upgrades. Browsers cannot set headers
// on the handshake, so the token may also come as ?token=.
func WSAuthMiddleware(sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := utils.BearerToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing token"})
			return
		}

		sess, err := sessions.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
			return
		}

		c.Set(sessionKey, sess)
		c.Set("userId", sess.UserID)
		c.Set("role", string(sess.Role))
		c.Next()
	}
}
