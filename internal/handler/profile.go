package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"besfit/internal/auth"
	"besfit/internal/tracker"
	"besfit/internal/util"
)

// ProfileHandler serves body value and password changes.
type ProfileHandler struct {
	Manager *tracker.Manager
	Gateway *auth.Gateway
	Log     logrus.FieldLogger
}

func NewProfileHandler(m *tracker.Manager, gateway *auth.Gateway, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{Manager: m, Gateway: gateway, Log: log}
}

type adjustBodyReq struct {
	Field string   `json:"field" binding:"required"`
	Delta *float64 `json:"delta" binding:"required"`
}

// AdjustBody adds delta to weight or height.
func (h *ProfileHandler) AdjustBody(c *gin.Context) {
	var req adjustBodyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "field and delta are required")
		return
	}
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}

	value, err := s.AdjustBodyValue(tracker.BodyField(req.Field), *req.Delta)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{
		"field":   req.Field,
		"value":   value,
		"profile": s.Profile(),
	})
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	err := h.Gateway.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		var ae *auth.Error
		errors.As(err, &ae)
		switch auth.ReasonOf(err) {
		case auth.MissingFields, auth.InvalidInput:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, ae.Message)
		case auth.WrongSecret:
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "current password is incorrect")
		default:
			h.Log.WithError(err).WithField("user_id", user.ID).Error("change password")
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to change password")
		}
		return
	}
	util.Success(c, util.Response{"message": "password changed"})
}
