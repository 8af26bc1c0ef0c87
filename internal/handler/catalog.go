package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"besfit/internal/catalog"
	"besfit/internal/util"
)

// CatalogHandler serves the read-only food and exercise catalog.
type CatalogHandler struct {
	Store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{Store: store}
}

func (h *CatalogHandler) ListFoods(c *gin.Context) {
	util.Success(c, util.Response{"items": h.Store.Foods()})
}

func (h *CatalogHandler) ListExercises(c *gin.Context) {
	util.Success(c, util.Response{"items": h.Store.Exercises()})
}

// SearchFoods handles GET /api/foods/search?q=&limit=.
func (h *CatalogHandler) SearchFoods(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	util.Success(c, util.Response{"items": h.Store.SearchFoods(c.Query("q"), limit)})
}

func (h *CatalogHandler) SearchExercises(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	util.Success(c, util.Response{"items": h.Store.SearchExercises(c.Query("q"), limit)})
}
