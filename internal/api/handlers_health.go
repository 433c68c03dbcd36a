package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthDBTimeout = 2 * time.Second

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	message := "ok"
	if !h.pingDatabase(c.Request.Context()) {
		status = http.StatusInternalServerError
		message = "down"
	}

	c.JSON(status, gin.H{
		"message":             message,
		"current_system_time": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (h *HealthHandler) pingDatabase(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	// Avoid hanging health checks if the database stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthDBTimeout)
	defer cancel()
	return sqlDB.PingContext(timeoutCtx) == nil
}
