package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"besfit/internal/auth"
	"besfit/internal/middleware"
	"besfit/internal/util"
)

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	Gateway *auth.Gateway
	Tokens  *auth.Tokens
	Log     logrus.FieldLogger
}

func NewAuthHandler(gateway *auth.Gateway, tokens *auth.Tokens, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Gateway: gateway, Tokens: tokens, Log: log}
}

type signupReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"ePosta"`
	Password  string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	acc, err := h.Gateway.Register(c.Request.Context(), auth.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.authError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": util.CodeOK,
		"data": util.Response{
			"message": "signup successful, you can log in now",
			"user":    acc,
		},
	})
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"ePosta"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	acc, err := h.Gateway.Authenticate(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.authError(c, err)
		return
	}

	token, expires, err := h.Tokens.Issue(c.Request.Context(), acc.ID, c.ClientIP())
	if err != nil {
		h.Log.WithError(err).WithField("user_id", acc.ID).Error("issue token")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create session")
		return
	}

	util.Success(c, util.Response{
		"token":      token,
		"expires_at": expires,
		"userId":     acc.ID,
		"username":   acc.Username,
		"firstName":  acc.FirstName,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return
	}
	if err := h.Tokens.Revoke(c.Request.Context(), claims.ID); err != nil {
		h.Log.WithError(err).Error("revoke session")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "logout failed")
		return
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	util.Success(c, util.Response{"message": "logged out"})
}

// Me returns the current account.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":            user.ID,
			"firstName":     user.FirstName,
			"lastName":      user.LastName,
			"username":      user.Username,
			"ePosta":        user.Email,
			"created_at":    user.CreatedAt,
			"last_login_at": user.LastLoginAt,
		},
	})
}

func (h *AuthHandler) authError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, util.CodeServerErr
	switch auth.ReasonOf(err) {
	case auth.MissingFields, auth.InvalidInput:
		status, code = http.StatusBadRequest, util.CodeInvalidParam
	case auth.NoSuchAccount, auth.WrongSecret:
		status, code = http.StatusUnauthorized, util.CodeAuth
	case auth.AccountExists:
		status, code = http.StatusConflict, util.CodeConflict
	default:
		h.Log.WithError(err).Error("auth")
	}

	msg := "server error, please try again"
	var ae *auth.Error
	if errors.As(err, &ae) {
		msg = ae.Message
	}
	util.Error(c, status, code, msg)
}
