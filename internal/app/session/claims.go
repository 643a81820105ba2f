package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims is what the client can read out of a JWT bearer token. The
// signature is not checked; only the backend can do that.
type Claims struct {
	Subject   string
	UserID    string
	Email     string
	Role      string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// Claims decodes the held token. Opaque (non-JWT) tokens yield an error but
// remain perfectly usable for requests.
func (s *Session) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoToken
	}
	return ParseClaims(token)
}

// ParseClaims decodes a JWT payload without verifying its signature.
func ParseClaims(token string) (*Claims, error) {
	mc := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, mc); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	c := &Claims{
		Subject: stringClaim(mc, "sub"),
		UserID:  stringClaim(mc, "user_id"),
		Email:   stringClaim(mc, "email"),
		Role:    stringClaim(mc, "role"),
	}
	if exp, ok := mc["exp"].(float64); ok {
		t := time.Unix(int64(exp), 0)
		c.ExpiresAt = &t
	}
	return c, nil
}

func stringClaim(mc jwt.MapClaims, key string) string {
	switch v := mc[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	}
	return ""
}
