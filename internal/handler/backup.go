package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"besfit/internal/models"
	"besfit/internal/tracker"
	"besfit/internal/util"
)

// BackupHandler writes encrypted copies of a user's day snapshot to disk and
// restores them.
type BackupHandler struct {
	DB         *gorm.DB
	Manager    *tracker.Manager
	EncryptKey string
	BackupDir  string
	Log        logrus.FieldLogger
}

func NewBackupHandler(db *gorm.DB, m *tracker.Manager, encryptKey, backupDir string, log logrus.FieldLogger) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		Manager:    m,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
		Log:        log,
	}
}

// backupData is the plaintext of a backup file.
type backupData struct {
	UserID   uint            `json:"user_id"`
	Created  time.Time       `json:"created"`
	Snapshot json.RawMessage `json:"snapshot"`
}

func backupResp(b *models.Backup) gin.H {
	return gin.H{
		"id":         b.ID,
		"file_name":  b.FileName,
		"size":       b.Size,
		"created_at": b.CreatedAt,
	}
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	userID := s.AccountID()

	snap, err := tracker.EncodeSnapshot(s.Snapshot())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encode snapshot")
		return
	}
	raw, err := json.MarshalIndent(&backupData{UserID: userID, Created: time.Now(), Snapshot: snap}, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encode backup")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to encrypt backup")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create backup dir")
		return
	}

	fileName := fmt.Sprintf("backup-%d-%s.bin", userID, uuid.NewString())
	filePath := filepath.Join(h.BackupDir, fileName)
	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		h.Log.WithError(err).Error("write backup")
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to write backup file")
		return
	}

	backup := models.Backup{
		UserID:   userID,
		FileName: fileName,
		FilePath: filePath,
		Size:     int64(len(enc)),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save backup record")
		return
	}

	util.Success(c, util.Response{"backup": backupResp(&backup)})
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var list []models.Backup
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id DESC").
		Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to list backups")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		items = append(items, backupResp(&list[i]))
	}
	util.Success(c, util.Response{"items": items})
}

// findBackup loads the backup :id owned by the current user or writes an
// error response.
func (h *BackupHandler) findBackup(c *gin.Context, userID uint) (*models.Backup, bool) {
	var backup models.Backup
	err := h.DB.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&backup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		return nil, false
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load backup")
		return nil, false
	}
	return &backup, true
}

func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user.ID)
	if !ok {
		return
	}

	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete backup")
		return
	}
	util.Success(c, util.Response{"message": "deleted"})
}

// RestoreBackup replaces the current day with the backup's snapshot.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	s, ok := currentSession(c, h.Manager, h.Log)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, s.AccountID())
	if !ok {
		return
	}

	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to read backup file")
		return
	}
	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to decrypt backup")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to parse backup")
		return
	}
	if data.UserID != 0 && data.UserID != s.AccountID() {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "backup belongs to another account")
		return
	}

	snap, err := tracker.DecodeSnapshot(data.Snapshot, h.Manager.Defaults())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to parse backup")
		return
	}
	s.Restore(snap)

	util.Success(c, util.Response{
		"message": "restored",
		"summary": s.Summary(),
	})
}
