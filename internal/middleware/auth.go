package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"besfit/internal/auth"
	"besfit/internal/models"
	"besfit/internal/util"
)

// Context keys set by AuthMiddleware.
const (
	CurrentUserKey = "currentUser"
	ClaimsKey      = "claims"
)

// TokenCookie is the cookie checked when no bearer token is sent.
const TokenCookie = "bf_token"

// AuthMiddleware verifies the login token and stores the current user in the
// context.
func AuthMiddleware(tokens *auth.Tokens, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "session expired, please log in again")
			c.Abort()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account not found")
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load account")
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// extractToken looks at the Authorization header, then ?token= (for
// downloads opened as plain links), then the bf_token cookie.
func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if t := c.Query("token"); t != "" {
		return t
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// CurrentClaims returns the token claims set by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*util.Claims)
	return cl, ok && cl != nil
}
