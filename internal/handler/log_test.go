package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLogs(t *testing.T) {
	e := newEnv(t)
	_, _ = e.do(http.MethodPut, "/api/day/water", gin.H{"count": 2}, true)
	_, _ = e.do(http.MethodPost, "/api/day/reset", nil, true)

	w, resp := e.do(http.MethodGet, "/api/logs", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	logs := decode[struct {
		Items []logResp `json:"items"`
		Total int       `json:"total"`
	}](t, resp.Data)
	require.Equal(t, 2, logs.Total)
	assert.Equal(t, "/api/day/reset", logs.Items[0].Path)
	assert.Equal(t, `PUT /api/day/water {"count":2}`+"\n", logs.Items[1].Action)

	_, resp = e.do(http.MethodGet, "/api/logs?q=water", nil, true)
	filtered := decode[struct {
		Total int `json:"total"`
	}](t, resp.Data)
	assert.Equal(t, 1, filtered.Total)

	w, _ = e.do(http.MethodGet, "/api/logs?start=bad", nil, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordBodyNotAudited(t *testing.T) {
	e := newEnv(t)
	_, _ = e.do(http.MethodPost, "/api/profile/password", gin.H{"old_password": "engine42", "new_password": "secret99"}, true)

	_, resp := e.do(http.MethodGet, "/api/logs", nil, true)
	assert.NotContains(t, string(resp.Data), "secret99")
}
