package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/v1/auth/login", handler.login)

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/orders", handler.listOrders)
		protected.POST("/orders", handler.createOrder)
		protected.GET("/orders/:id", handler.getOrder)
		protected.PUT("/orders/:id/technician", handler.assignTechnician)
		protected.POST("/orders/:id/start", handler.startService)
		protected.PUT("/orders/:id/status", handler.setOrderStatus)
		protected.DELETE("/orders/:id", handler.cancelOrder)
		protected.GET("/orders/:id/cost", handler.getCostBreakdown)
		protected.POST("/orders/:id/visits", handler.addVisit)
		protected.PATCH("/orders/:id/visits/:seq", handler.updateVisit)

		protected.GET("/technicians", handler.listTechnicians)
		protected.POST("/technicians", handler.createTechnician)
		protected.GET("/technicians/:id", handler.getTechnician)
		protected.PUT("/technicians/:id", handler.updateTechnician)
		protected.DELETE("/technicians/:id", handler.deactivateTechnician)

		protected.GET("/clients", handler.listClients)
		protected.POST("/clients", handler.createClient)
		protected.GET("/clients/:id", handler.getClient)
		protected.PUT("/clients/:id", handler.updateClient)
		protected.DELETE("/clients/:id", handler.deactivateClient)
	}

	return router
}
