package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/day/foods/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/day/foods/:id", "204"))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/day/foods/"+id, nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/day/foods/:id", "204"))
	assert.Equal(t, before+2, after)
}

func TestRecordMutation(t *testing.T) {
	okBefore := testutil.ToFloat64(ledgerMutations.WithLabelValues("add_food", "ok"))
	badBefore := testutil.ToFloat64(ledgerMutations.WithLabelValues("add_food", "rejected"))

	RecordMutation("add_food", nil)
	RecordMutation("add_food", errors.New("empty batch"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ledgerMutations.WithLabelValues("add_food", "ok")))
	assert.Equal(t, badBefore+1, testutil.ToFloat64(ledgerMutations.WithLabelValues("add_food", "rejected")))
}

func TestSetCatalogSize(t *testing.T) {
	SetCatalogSize(12, 4)

	assert.Equal(t, 12.0, testutil.ToFloat64(catalogSize.WithLabelValues("food")))
	assert.Equal(t, 4.0, testutil.ToFloat64(catalogSize.WithLabelValues("exercise")))
}
