package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"besfit/internal/auth"
	"besfit/internal/catalog"
	"besfit/internal/database"
	"besfit/internal/middleware"
	"besfit/internal/repository"
	"besfit/internal/tracker"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	t       *testing.T
	db      *gorm.DB
	engine  *gin.Engine
	manager *tracker.Manager
	gateway *auth.Gateway
	tokens  *auth.Tokens
	log     logrus.FieldLogger
	token   string
	userID  uint
}

var (
	testFoods = []catalog.FoodItem{
		{Name: "Oats", Category: "Grains", ServingSize: 40, Calories: 150, Protein: 5, Fat: 3, Carbs: 27},
		{Name: "Scrambled Egg", Category: "Protein", ServingSize: 60, Calories: 90, Protein: 6, Fat: 7, Carbs: 1},
	}
	testExercises = []catalog.ExerciseItem{
		{ID: 1, Name: "Running", Category: "Cardio", MET: 8},
		{ID: 2, Name: "Walking", Category: "Cardio", MET: 3.5},
	}
)

// newEnv wires handlers on a fresh database with one registered user whose
// token is in env.token.
func newEnv(t *testing.T) *env {
	t.Helper()
	db := database.OpenForTest(t)
	log, _ := test.NewNullLogger()

	e := &env{
		t:       t,
		db:      db,
		gateway: auth.NewGateway(db, bcrypt.MinCost),
		tokens:  auth.NewTokens(db, "test-secret", "besfit", 1),
		log:     log,
		manager: tracker.NewManager(repository.NewSnapshotRepository(db), tracker.DefaultProfile(),
			tracker.BodyLimits{Weight: tracker.Bounds{Min: 20, Max: 400}, Height: tracker.Bounds{Min: 50, Max: 260}}, log),
	}

	// pending snapshot writes finish before the database is closed
	t.Cleanup(e.manager.Flush)

	acc, err := e.gateway.Register(context.Background(), auth.RegisterInput{
		FirstName: "Ada", LastName: "Lovelace", Username: "ada", Email: "ada@example.com", Password: "engine42",
	})
	require.NoError(t, err)
	e.userID = acc.ID
	e.token, _, err = e.tokens.Issue(context.Background(), acc.ID, "127.0.0.1")
	require.NoError(t, err)

	store := catalog.NewStoreWith(testFoods, testExercises)
	r := gin.New()

	authH := NewAuthHandler(e.gateway, e.tokens, log)
	r.POST("/api/auth/signup", authH.Signup)
	r.POST("/api/auth/login", authH.Login)
	cat := NewCatalogHandler(store)
	r.GET("/api/foods", cat.ListFoods)
	r.GET("/api/foods/search", cat.SearchFoods)
	r.GET("/api/exercises/search", cat.SearchExercises)

	p := r.Group("/api", middleware.AuditMiddleware(db, "k", log), middleware.AuthMiddleware(e.tokens, db))
	p.GET("/me", authH.Me)
	p.POST("/auth/logout", authH.Logout)
	day := NewDayHandler(e.manager, store, log)
	p.GET("/day", day.GetDay)
	p.GET("/day/summary", day.Summary)
	p.POST("/day/foods", day.AddFoods)
	p.DELETE("/day/foods/:id", day.RemoveFood)
	p.POST("/day/exercises", day.AddExercises)
	p.DELETE("/day/exercises/:id", day.RemoveExercise)
	p.PUT("/day/water", day.SetWater)
	p.POST("/day/reset", day.Reset)
	prof := NewProfileHandler(e.manager, e.gateway, log)
	p.POST("/profile/body", prof.AdjustBody)
	p.POST("/profile/password", prof.ChangePassword)
	bk := NewBackupHandler(db, e.manager, "backup-key", t.TempDir(), log)
	p.POST("/backups", bk.CreateBackup)
	p.GET("/backups", bk.ListBackups)
	p.GET("/backups/:id/download", bk.DownloadBackup)
	p.POST("/backups/:id/restore", bk.RestoreBackup)
	p.DELETE("/backups/:id", bk.DeleteBackup)
	exp := NewExportHandler(e.manager, log)
	p.GET("/export/csv", exp.ExportCSV)
	p.GET("/export/xlsx", exp.ExportXLSX)
	lh := NewLogHandler(db, "k")
	p.GET("/logs", lh.ListLogs)

	e.engine = r
	return e
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends a request, with the env token when withToken is set, and decodes the
// envelope.
func (e *env) do(method, path string, body interface{}, withToken bool) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var out envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
