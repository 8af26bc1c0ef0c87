package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"besfit/internal/util"
)

func TestSignup(t *testing.T) {
	e := newEnv(t)

	body := gin.H{"firstName": "Bob", "lastName": "Builder", "username": "bob", "ePosta": "bob@example.com", "password": "canwefix1"}
	w, resp := e.do(http.MethodPost, "/api/auth/signup", body, false)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, util.CodeOK, resp.Code)

	w, resp = e.do(http.MethodPost, "/api/auth/signup", body, false)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, util.CodeConflict, resp.Code)

	w, resp = e.do(http.MethodPost, "/api/auth/signup", gin.H{"username": "carol"}, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.CodeInvalidParam, resp.Code)
	assert.NotEmpty(t, resp.Message)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)

	cases := []struct {
		name   string
		body   gin.H
		status int
		code   int
	}{
		{"ok", gin.H{"username": "ada", "ePosta": "ada@example.com", "password": "engine42"}, http.StatusOK, util.CodeOK},
		{"missing email", gin.H{"username": "ada", "password": "engine42"}, http.StatusBadRequest, util.CodeInvalidParam},
		{"wrong email", gin.H{"username": "ada", "ePosta": "x@example.com", "password": "engine42"}, http.StatusUnauthorized, util.CodeAuth},
		{"wrong password", gin.H{"username": "ada", "ePosta": "ada@example.com", "password": "nope"}, http.StatusUnauthorized, util.CodeAuth},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, resp := e.do(http.MethodPost, "/api/auth/login", c.body, false)
			assert.Equal(t, c.status, w.Code)
			assert.Equal(t, c.code, resp.Code)
		})
	}

	_, resp := e.do(http.MethodPost, "/api/auth/login", gin.H{"username": "ada", "ePosta": "ada@example.com", "password": "engine42"}, false)
	data := decode[struct {
		Token     string `json:"token"`
		UserID    uint   `json:"userId"`
		FirstName string `json:"firstName"`
	}](t, resp.Data)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, e.userID, data.UserID)
	assert.Equal(t, "Ada", data.FirstName)
}

func TestMeAndLogout(t *testing.T) {
	e := newEnv(t)

	w, resp := e.do(http.MethodGet, "/api/me", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(resp.Data), `"username":"ada"`)

	w, _ = e.do(http.MethodPost, "/api/auth/logout", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = e.do(http.MethodGet, "/api/me", nil, true)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, util.CodeAuth, resp.Code)
}

func TestChangePassword(t *testing.T) {
	e := newEnv(t)

	w, _ := e.do(http.MethodPost, "/api/profile/password", gin.H{"old_password": "wrong", "new_password": "newpass1"}, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = e.do(http.MethodPost, "/api/profile/password", gin.H{"old_password": "engine42", "new_password": "newpass1"}, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = e.do(http.MethodPost, "/api/auth/login", gin.H{"username": "ada", "ePosta": "ada@example.com", "password": "newpass1"}, false)
	assert.Equal(t, http.StatusOK, w.Code)
}
