package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/trainer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler reads back the trail written by the notification
// gateway's audit sink. Admins only.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if !middleware.ActorFrom(c).IsAdmin() {
		httperr.Forbidden(c, "Only admins read the audit trail.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	entityID, err := parseUintQuery(c, "entity_id")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}
	if entityID != nil {
		q = q.Where("entity_id = ?", *entityID)
	}

	if from, err := parseDateQuery(c, "from"); err == nil && from != nil {
		q = q.Where("created_at >= ?", from.UTC())
	}

	if to, err := parseDateQuery(c, "to"); err == nil && to != nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour).UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
