package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "SKRIBBL_SESSION"

	clientIDKey = "clientId"
)

// Session makes sure every request carries a client id, issuing a fresh
// one in the session cookie when the request has none.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(clientID) != nil {
			clientID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, clientID, 0, "/", "", false, true)
		}
		c.Set(clientIDKey, clientID)
		c.Next()
	}
}

// ClientID returns the client id set by Session, or "" when the middleware
// did not run.
func ClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}
