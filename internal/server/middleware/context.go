package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey = "auth.user_id"
	emailKey  = "auth.email"
)

// SetIdentity stores the authenticated identity on the request context.
// Handlers read it via Identity.
func SetIdentity(c *gin.Context, userID, email string) {
	c.Set(userIDKey, userID)
	c.Set(emailKey, email)
}

// Identity returns the authenticated identity and true if set; otherwise
// empty strings and false.
func Identity(c *gin.Context) (userID, email string, ok bool) {
	uid, uok := c.Get(userIDKey)
	em, eok := c.Get(emailKey)
	if !uok || !eok {
		return "", "", false
	}
	userID, uok = uid.(string)
	email, eok = em.(string)
	return userID, email, uok && eok
}
