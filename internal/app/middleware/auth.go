package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"marketadmin/internal/app/config"
	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// Claims is the payload of the tokens the development backend issues.
type Claims struct {
	jwt.StandardClaims
	UserID string  `json:"user_id"`
	Email  string  `json:"email"`
	Role   ds.Role `json:"role"`
}

type AuthMiddleware struct {
	Config *config.JWTConfig
}

func NewAuthMiddleware(cfg *config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{Config: cfg}
}

// IssueToken signs a token for user that expires after the configured TTL.
func (am *AuthMiddleware) IssueToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(am.Config.SigningMethod, Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			ExpiresAt: now.Add(am.Config.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "marketadmin-fakeapi",
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	return token.SignedString([]byte(am.Config.Secret))
}

// WithAuthCheck rejects requests without a valid bearer token and, when
// roles are given, requests whose token carries another role.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...ds.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, http.StatusUnauthorized, "missing authorization header")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := am.parseToken(tokenStr)
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(claims.Role, assignedRoles) {
			abort(c, http.StatusForbidden, "admin access required")
			return
		}

		SetCurrentUser(c, &CurrentUser{ID: claims.UserID, Email: claims.Email, Role: claims.Role})
		c.Next()
	}
}

func (am *AuthMiddleware) parseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != am.Config.SigningMethod.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(am.Config.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func hasRequiredRole(userRole ds.Role, requiredRoles []ds.Role) bool {
	for _, r := range requiredRoles {
		if userRole == r {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}
