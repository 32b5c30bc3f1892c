package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/rootbits-api/internal/httperr"
	"github.com/BruksfildServices01/rootbits-api/internal/httpresp"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
	"github.com/BruksfildServices01/rootbits-api/internal/models"
	"github.com/BruksfildServices01/rootbits-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogsHandler(db *gorm.DB, log *logger.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, log: log}
}

// List filters by action, entity, user and a from/to day range (YYYY-MM-DD,
// inclusive, in the configured time zone).
func (h *AuditLogsHandler) List(c *gin.Context) {
	page := httpresp.ParsePage(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if user := c.Query("user"); user != "" {
		q = q.Where("user_id = ?", user)
	}

	loc := timezone.Location()
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.ParseInLocation("2006-01-02", fromStr, loc); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.ParseInLocation("2006-01-02", toStr, loc); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, logs, total, page)
}
