package api

import (
	"net/http"

	"menux/config"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, cfg config.HTTPConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORSMiddleware(cfg.AllowedOrigin))

	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/menu/:id", h.GetMenu)
	router.POST("/menu/:id/sessions", h.CreateSession)

	sessions := router.Group("/sessions/:sid")
	{
		sessions.GET("", h.GetSession)
		sessions.POST("/events", h.PostEvent)
		sessions.POST("/checkout", h.Checkout)
	}
	return router
}
