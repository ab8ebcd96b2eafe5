package handlers

import (
	"errors"
	"net/http"

	"guardrail-quote/database"
	"guardrail-quote/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler holds what the HTTP handlers share.
type Handler struct {
	log      *zap.Logger
	activity *database.ActivityLogger
}

func New(logger *zap.Logger, activity *database.ActivityLogger) *Handler {
	return &Handler{log: logger, activity: activity}
}

func (h *Handler) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// internalError logs err and answers 500 without leaking the cause.
func (h *Handler) internalError(c *gin.Context, op string, err error) {
	h.log.Error(op+" failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err),
	)
	h.fail(c, http.StatusInternalServerError, "Database Error")
}

func (h *Handler) storeError(c *gin.Context, op string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		h.fail(c, http.StatusNotFound, "not found")
		return
	}
	h.internalError(c, op, err)
}

func currentUser(c *gin.Context) string {
	name, _ := sessions.Default(c).Get(middleware.SessionUsername).(string)
	return name
}

func isAdmin(c *gin.Context) bool {
	return sessions.Default(c).Get(middleware.SessionRole) == database.RoleAdmin
}
