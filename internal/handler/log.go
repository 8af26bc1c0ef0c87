package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"besfit/internal/models"
	"besfit/internal/util"
)

// LogHandler lists the current user's audit log.
type LogHandler struct {
	DB         *gorm.DB
	EncryptKey string
}

func NewLogHandler(db *gorm.DB, encryptKey string) *LogHandler {
	return &LogHandler{DB: db, EncryptKey: encryptKey}
}

// decryptField returns the stored value as-is when it cannot be decrypted.
func (h *LogHandler) decryptField(enc string) string {
	plain, err := util.DecryptString(h.EncryptKey, enc)
	if err != nil {
		return enc
	}
	return plain
}

type logResp struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Status    int       `json:"status"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// ListLogs pages through the audit log, newest first. start/end filter by
// date (YYYY-MM-DD, end inclusive) and q matches the decrypted action.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	page, size := pageParams(c, 20)

	base := h.DB.Model(&models.AuditLog{}).Where("user_id = ?", user.ID)
	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid start date")
			return
		}
		base = base.Where("created_at >= ?", t)
	}
	if e := c.Query("end"); e != "" {
		t, err := time.ParseInLocation("2006-01-02", e, time.Local)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid end date")
			return
		}
		base = base.Where("created_at < ?", t.Add(24*time.Hour))
	}

	var logs []models.AuditLog
	if err := base.Order("created_at DESC, id DESC").Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	// fields are encrypted, so keyword filtering happens after decryption
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	items := make([]logResp, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		item := logResp{
			ID:        l.ID,
			Action:    h.decryptField(l.ActionEnc),
			Path:      h.decryptField(l.PathEnc),
			Method:    l.Method,
			Status:    l.Status,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		}
		if q != "" && !strings.Contains(strings.ToLower(item.Action), q) {
			continue
		}
		items = append(items, item)
	}

	total := len(items)
	from := (page - 1) * size
	if from > total {
		from = total
	}
	to := from + size
	if to > total {
		to = total
	}

	util.Success(c, util.Response{
		"items": items[from:to],
		"total": total,
		"page":  page,
		"size":  size,
	})
}
