package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"besfit/internal/auth"
	"besfit/internal/catalog"
	"besfit/internal/config"
	"besfit/internal/handler"
	"besfit/internal/metrics"
	"besfit/internal/middleware"
	"besfit/internal/tracker"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	DB      *gorm.DB
	Catalog *catalog.Store
	Manager *tracker.Manager
	Gateway *auth.Gateway
	Tokens  *auth.Tokens
	Log     logrus.FieldLogger
}

// SetupRouter configures the Gin engine and all API routes.
func SetupRouter(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Log),
		metrics.Middleware(),
		cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	r.GET("/healthz", func(c *gin.Context) {
		foods, exercises := d.Catalog.Len()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "foods": foods, "exercises": exercises})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(d.Gateway, d.Tokens, d.Log)
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	api.POST("/auth/signup", middleware.RateLimit(limiter), authHandler.Signup)
	api.POST("/auth/login", middleware.RateLimit(limiter), authHandler.Login)

	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	api.GET("/foods", catalogHandler.ListFoods)
	api.GET("/foods/search", catalogHandler.SearchFoods)
	api.GET("/exercises", catalogHandler.ListExercises)
	api.GET("/exercises/search", catalogHandler.SearchExercises)

	// routes below require a login
	protected := api.Group("")
	protected.Use(
		middleware.AuditMiddleware(d.DB, cfg.Security.EncryptionKey, d.Log),
		middleware.AuthMiddleware(d.Tokens, d.DB),
	)

	protected.GET("/me", authHandler.Me)
	protected.POST("/auth/logout", authHandler.Logout)

	dayHandler := handler.NewDayHandler(d.Manager, d.Catalog, d.Log)
	protected.GET("/day", dayHandler.GetDay)
	protected.GET("/day/summary", dayHandler.Summary)
	protected.POST("/day/foods", dayHandler.AddFoods)
	protected.DELETE("/day/foods/:id", dayHandler.RemoveFood)
	protected.POST("/day/exercises", dayHandler.AddExercises)
	protected.DELETE("/day/exercises/:id", dayHandler.RemoveExercise)
	protected.PUT("/day/water", dayHandler.SetWater)
	protected.POST("/day/reset", dayHandler.Reset)

	profileHandler := handler.NewProfileHandler(d.Manager, d.Gateway, d.Log)
	protected.POST("/profile/body", profileHandler.AdjustBody)
	protected.POST("/profile/password", profileHandler.ChangePassword)

	backupHandler := handler.NewBackupHandler(d.DB, d.Manager, cfg.Security.EncryptionKey, cfg.Backup.Dir, d.Log)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	exportHandler := handler.NewExportHandler(d.Manager, d.Log)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	logHandler := handler.NewLogHandler(d.DB, cfg.Security.EncryptionKey)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
