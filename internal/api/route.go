package api

import (
	"Sundial/internal/api/middleware"
	"Sundial/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		counterGroup := apiGroup.Group("/counter")
		{
			counterGroup.GET("", group.CounterHandler.GetCounter)

			authGroup := counterGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/apply", group.CounterHandler.Apply)
				authGroup.GET("/events", group.CounterHandler.GetRecentEvents)
			}
		}

		apiGroup.GET("/history", group.HistoryHandler.GetHistoryPage)
		apiGroup.GET("/stats", group.StatsHandler.GetSiteStats)
		apiGroup.GET("/ws", group.WSHandler.Connect)
	}

	return r
}
