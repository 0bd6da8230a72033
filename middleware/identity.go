package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// Identity is the resolved caller: either an authenticated account or the
// zero value (anonymous). It is resolved once per request and threaded
// through the context; nothing is stored process-wide.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   string
}

// IsAdmin reports whether the identity's role grants admin access. The
// comparison is case-insensitive; every other role is treated as anonymous.
func (id Identity) IsAdmin() bool {
	return strings.EqualFold(id.Role, "admin")
}

// ResolveIdentity parses the Authorization bearer JWT, if any, and stores the
// resulting Identity in the gin context. A missing, malformed or expired
// token degrades to anonymous rather than failing the request; public routes
// must keep working without credentials.
func ResolveIdentity(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, parseIdentity(c.GetHeader("Authorization"), jwtSecret))
		c.Next()
	}
}

func parseIdentity(authHeader, jwtSecret string) Identity {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return Identity{}
	}
	tokenString := strings.TrimSpace(authHeader[len(prefix):])
	if tokenString == "" {
		return Identity{}
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}
	}

	var identity Identity
	if sub, err := claims.GetSubject(); err == nil {
		if id, err := strconv.ParseUint(sub, 10, 32); err == nil {
			identity.UserID = uint(id)
		}
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		identity.Role = role
	}
	return identity
}

// CurrentIdentity returns the identity resolved for this request, anonymous
// if the resolver did not run.
func CurrentIdentity(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(Identity); ok {
			return identity
		}
	}
	return Identity{}
}

// RequireAdmin aborts with 403 unless the resolved identity is an admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentIdentity(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}
