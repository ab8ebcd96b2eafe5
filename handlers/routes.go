package handlers

import (
	"guardrail-quote/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter builds the gin engine with every route registered.
func NewRouter(h *Handler, store sessions.Store, sessionName string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(sessions.Sessions(sessionName, store))

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/me", h.Me)
		api.GET("/dashboard", h.Dashboard)
		api.GET("/parts", h.Parts)
		api.POST("/calculate", h.Calculate)
		api.POST("/weights/:part", h.Weights)

		api.POST("/quotes", h.SaveQuote)
		api.GET("/quotes", h.ListQuotes)
		api.GET("/quotes/:id", h.LoadQuote)

		admin := api.Group("")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/activity", h.Activity)
			admin.GET("/settings", h.ShowSettings)
			admin.PUT("/settings/rates", h.UpdateRates)
			admin.POST("/settings/coatings", h.AddCoating)
			admin.DELETE("/settings/coatings/:gsm", h.DeleteCoating)
		}
	}

	return r
}
