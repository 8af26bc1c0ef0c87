package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogEndpoints(t *testing.T) {
	e := newEnv(t)

	_, resp := e.do(http.MethodGet, "/api/foods/search?q=EGG", nil, false)
	items := decode[struct {
		Items []struct {
			Name        string  `json:"name"`
			ServingSize float64 `json:"servingSize"`
		} `json:"items"`
	}](t, resp.Data).Items
	require.Len(t, items, 1)
	assert.Equal(t, "Scrambled Egg", items[0].Name)
	assert.Equal(t, 60.0, items[0].ServingSize)

	_, resp = e.do(http.MethodGet, "/api/exercises/search?q=&limit=5", nil, false)
	assert.JSONEq(t, `{"items":[]}`, string(resp.Data))

	_, resp = e.do(http.MethodGet, "/api/foods", nil, false)
	assert.Contains(t, string(resp.Data), `"Oats"`)
}

func TestSearchWithHugeLimit(t *testing.T) {
	e := newEnv(t)

	for _, limit := range []string{"4611686018427387904", "1000000000", "99999999999999999999999"} {
		w, resp := e.do(http.MethodGet, "/api/foods/search?q=egg&limit="+limit, nil, false)
		require.Equal(t, http.StatusOK, w.Code, limit)
		assert.Contains(t, string(resp.Data), "Scrambled Egg", limit)

		w, _ = e.do(http.MethodGet, "/api/exercises/search?q=run&limit="+limit, nil, false)
		assert.Equal(t, http.StatusOK, w.Code, limit)
	}
}
