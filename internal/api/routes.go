package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infragin "github.com/Sahil-memane/urban-resource-harmony-sub000/infrastructure/gin"
)

// SetupRoutes configures all service routes. /health is registered by the
// server builder. metrics may be nil.
func SetupRoutes(router *gin.Engine, handler *Handler, jwtSecret string, metrics http.Handler) {
	router.GET("/ready", handler.ReadyCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	router.POST("/classify-priority", handler.ClassifyPriority)

	v1 := infragin.ProtectedGroup(router, "/api/v1", jwtSecret)
	{
		v1.POST("/classify", handler.Classify) // POST /api/v1/classify

		complaints := v1.Group("/complaints")
		{
			complaints.POST("", handler.CreateComplaint)                   // POST /api/v1/complaints
			complaints.GET("", handler.ListComplaints)                     // GET /api/v1/complaints
			complaints.GET("/:id", handler.GetComplaint)                   // GET /api/v1/complaints/:id
			complaints.PATCH("/:id/status", handler.UpdateComplaintStatus) // PATCH /api/v1/complaints/:id/status
		}

		v1.GET("/stats/priorities", handler.PriorityStats) // GET /api/v1/stats/priorities
	}
}
