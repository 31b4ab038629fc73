package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"afrisoutien/internal/authz"
	"afrisoutien/internal/models"
	"afrisoutien/internal/tokens"
)

// AccessCookie is the HttpOnly cookie carrying the access token.
const AccessCookie = "jwt"

// UserLoader is the single persistence read the auth path needs.
type UserLoader interface {
	GetByID(id int) (*models.User, error)
}

// Auth gates every protected route. Token source order: Authorization header,
// then the access cookie. The failure codes are part of the client contract:
// the interceptor retries only on TOKEN_EXPIRED.
func Auth(issuer *tokens.Issuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if v, err := c.Cookie(AccessCookie); err == nil {
				tokenStr = v
			}
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": "TOKEN_MISSING", "error": "Authentication required",
			})
			return
		}

		userID, err := issuer.VerifyAccess(tokenStr)
		if err != nil {
			if errors.Is(err, tokens.ErrExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code": "TOKEN_EXPIRED", "error": "Access token expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": "TOKEN_INVALID", "error": "Invalid token",
			})
			return
		}

		user, err := users.GetByID(userID)
		if err != nil || user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": "USER_NOT_FOUND", "error": "Account no longer exists",
			})
			return
		}

		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)

		c.Next()
	}
}

// OptionalAuth attaches the user when a valid access token rides along, but
// never rejects the request. For routes open to anonymous callers.
func OptionalAuth(issuer *tokens.Issuer, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if v, err := c.Cookie(AccessCookie); err == nil {
				tokenStr = v
			}
		}
		if tokenStr != "" {
			if userID, err := issuer.VerifyAccess(tokenStr); err == nil {
				if user, err := users.GetByID(userID); err == nil && user != nil {
					c.Set("user", user)
					c.Set("user_id", user.ID)
					c.Set("role", user.Role)
				}
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the user attached by Auth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok
}

// RequireAdmin composes after Auth. No machine code here: the client never
// auto-retries on a role failure.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if u.Role != authz.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles.
func RequireRoles(allowed ...authz.Role) gin.HandlerFunc {
	allowedSet := map[authz.Role]struct{}{}
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if _, ok := allowedSet[u.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
