package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"besfit/internal/catalog"
	"besfit/internal/tracker"
	"besfit/internal/util"
)

// DefaultExerciseDuration is used when an exercise item omits its duration.
const DefaultExerciseDuration = 30

// DayHandler serves the current day's ledger of the logged-in user.
type DayHandler struct {
	Manager *tracker.Manager
	Catalog *catalog.Store
	Log     logrus.FieldLogger
}

func NewDayHandler(m *tracker.Manager, store *catalog.Store, log logrus.FieldLogger) *DayHandler {
	return &DayHandler{Manager: m, Catalog: store, Log: log}
}

// GetDay returns the raw entries together with the computed summary.
func (h *DayHandler) GetDay(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"day":     s.Snapshot(),
		"summary": s.Summary(),
	})
}

func (h *DayHandler) Summary(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	util.Success(c, util.Response{"summary": s.Summary()})
}

type addFoodsReq struct {
	Items []struct {
		Name     string `json:"name"`
		MealType string `json:"meal_type"`
	} `json:"items"`
}

// AddFoods logs a batch of catalog foods. Unknown foods reject the batch.
func (h *DayHandler) AddFoods(c *gin.Context) {
	var req addFoodsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}

	batch := make([]tracker.FoodSelection, 0, len(req.Items))
	for _, it := range req.Items {
		food, found := h.Catalog.FoodByName(it.Name)
		if !found {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, fmt.Sprintf("unknown food %q", it.Name))
			return
		}
		meal, err := tracker.ParseMealType(it.MealType)
		if err != nil {
			ledgerError(c, err)
			return
		}
		batch = append(batch, tracker.FoodSelection{Food: food, MealType: meal})
	}

	added, err := s.AddFoods(batch)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"added": added, "summary": s.Summary()})
}

func (h *DayHandler) RemoveFood(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	if err := s.RemoveFood(c.Param("id")); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": s.Summary()})
}

type addExercisesReq struct {
	Items []struct {
		ExerciseID uint     `json:"exercise_id"`
		Duration   *float64 `json:"duration"`
	} `json:"items"`
}

// AddExercises logs a batch of catalog exercises using the profile weight.
func (h *DayHandler) AddExercises(c *gin.Context) {
	var req addExercisesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}

	batch := make([]tracker.ExerciseSelection, 0, len(req.Items))
	for _, it := range req.Items {
		ex, found := h.Catalog.ExerciseByID(it.ExerciseID)
		if !found {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, fmt.Sprintf("unknown exercise %d", it.ExerciseID))
			return
		}
		duration := float64(DefaultExerciseDuration)
		if it.Duration != nil {
			duration = *it.Duration
		}
		batch = append(batch, tracker.ExerciseSelection{Exercise: ex, Duration: duration})
	}

	added, err := s.AddExercises(batch)
	if err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"added": added, "summary": s.Summary()})
}

func (h *DayHandler) RemoveExercise(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	if err := s.RemoveExercise(c.Param("id")); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": s.Summary()})
}

type setWaterReq struct {
	Count *int `json:"count" binding:"required"`
}

func (h *DayHandler) SetWater(c *gin.Context) {
	var req setWaterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "count is required")
		return
	}
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	if err := s.SetWater(*req.Count); err != nil {
		ledgerError(c, err)
		return
	}
	util.Success(c, util.Response{"waterCount": *req.Count})
}

// Reset clears today's entries and water count.
func (h *DayHandler) Reset(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	s.Reset()
	util.Success(c, util.Response{"summary": s.Summary()})
}
