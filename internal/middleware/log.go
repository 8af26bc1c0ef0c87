package middleware

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"besfit/internal/models"
	"besfit/internal/util"
)

const maxAuditBody = 2000

// AuditMiddleware records every request of a logged-in user. Path and action
// are stored encrypted when encryptKey is set. Request bodies on auth routes
// are never recorded.
func AuditMiddleware(db *gorm.DB, encryptKey string, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		user, ok := CurrentUser(c)
		if !ok {
			return
		}
		userID := user.ID

		path := c.Request.URL.Path
		action := c.Request.Method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < maxAuditBody && !isSecretPath(path) {
			action += " " + string(bodyBytes)
		}

		encPath, err := util.EncryptString(encryptKey, path)
		if err != nil {
			log.WithError(err).Warn("audit: encrypt path")
			return
		}
		encAction, err := util.EncryptString(encryptKey, action)
		if err != nil {
			log.WithError(err).Warn("audit: encrypt action")
			return
		}

		entry := models.AuditLog{
			UserID:    &userID,
			PathEnc:   encPath,
			Method:    c.Request.Method,
			ActionEnc: encAction,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.WithError(err).Warn("audit: write log")
		}
	}
}

func isSecretPath(path string) bool {
	return path == "/api/profile/password"
}
