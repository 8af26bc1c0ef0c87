package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"besfit/internal/middleware"
	"besfit/internal/models"
	"besfit/internal/tracker"
	"besfit/internal/util"
)

// currentUser returns the logged-in user or writes a 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

// currentSession loads the ledger session of the logged-in user.
func currentSession(c *gin.Context, m *tracker.Manager, log logrus.FieldLogger) (*tracker.Session, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	s, err := m.Session(c.Request.Context(), user.ID)
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("load session")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load today's log")
		return nil, false
	}
	return s, true
}

// ledgerError maps ledger and profile errors to a response.
func ledgerError(c *gin.Context, err error) {
	var ve *tracker.ValidationError
	switch {
	case errors.Is(err, tracker.ErrEntryNotFound):
		util.Error(c, http.StatusNotFound, util.CodeNotFound, tracker.ErrEntryNotFound.Error())
	case errors.As(err, &ve):
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ve.Error())
	default:
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "server error")
	}
}

// pageParams reads page and page_size with the given default size.
func pageParams(c *gin.Context, defSize int) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defSize)))
	if size <= 0 || size > 100 {
		size = defSize
	}
	return page, size
}
