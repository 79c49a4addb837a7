package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController 存活检查
type HealthController struct {
	db       *gorm.DB
	sessions interface{ Count() int }
}

func NewHealthController(db *gorm.DB, sessions interface{ Count() int }) *HealthController {
	return &HealthController{db: db, sessions: sessions}
}

// Check GET /health
func (ctrl *HealthController) Check(c *gin.Context) {
	status := http.StatusOK
	dbState := "ok"

	sqlDB, err := ctrl.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		dbState = err.Error()
	}

	body := gin.H{"status": "ok", "database": dbState}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	if ctrl.sessions != nil {
		body["sessions"] = ctrl.sessions.Count()
	}
	c.JSON(status, body)
}
