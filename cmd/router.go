package main

import (
	"net/http"

	"github.com/eaglebank/signup-service/internal/handler"
	"github.com/eaglebank/signup-service/internal/metrics"
	"github.com/eaglebank/signup-service/shared/middleware"
	"github.com/gin-gonic/gin"
)

type routerDeps struct {
	Webhook   *handler.WebhookHandler
	Users     *handler.UserHandler
	Metrics   *metrics.Metrics
	JWTSecret []byte
}

func newRouter(deps routerDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware(), deps.Metrics.Middleware())

	// Wrong-method requests on known routes get 405 before any auth or body parsing.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	auth := middleware.AuthMiddleware(deps.JWTSecret)

	router.POST("/v1/webhooks/signup", auth, deps.Webhook.HandleSignup)
	router.GET("/v1/users/:userId", auth, deps.Users.GetUser)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	return router
}
