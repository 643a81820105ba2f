package middleware

import (
	"marketadmin/internal/app/ds"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// CurrentUser is the authenticated caller taken from the bearer token.
type CurrentUser struct {
	ID    string
	Email string
	Role  ds.Role
}

func SetCurrentUser(c *gin.Context, user *CurrentUser) {
	c.Set(currentUserKey, user)
}

// GetUserFromContext returns the caller set by WithAuthCheck.
func GetUserFromContext(c *gin.Context) (*CurrentUser, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	u, ok := v.(*CurrentUser)
	return u, ok
}
