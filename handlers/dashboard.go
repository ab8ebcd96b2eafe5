package handlers

import (
	"net/http"
	"strconv"

	"guardrail-quote/calc"
	"guardrail-quote/database"

	"github.com/gin-gonic/gin"
)

// Dashboard is everything the quoting screen needs on first load.
func (h *Handler) Dashboard(c *gin.Context) {
	settings, err := database.LoadSettings()
	if err != nil {
		h.internalError(c, "dashboard", err)
		return
	}
	count, err := database.CountQuotes(c.Request.Context())
	if err != nil {
		h.internalError(c, "dashboard", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          currentUser(c),
		"isAdmin":       isAdmin(c),
		"parts":         calc.Parts(),
		"coatingGrades": settings.CoatingGrades,
		"rates":         settings.Rates,
		"quoteCount":    count,
	})
}

const maxActivityLimit = 500

// activityLimit parses the limit query value, capping it at maxActivityLimit.
func activityLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return limit, nil
}

func (h *Handler) Activity(c *gin.Context) {
	limit, err := activityLimit(c.DefaultQuery("limit", "50"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "invalid limit")
		return
	}
	items, err := database.ListActivity(c.Request.Context(), limit)
	if err != nil {
		h.internalError(c, "activity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"activity": items})
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := database.DB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
