package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/internal/middleware"
)

// RegisterAPIRoutes registers the /api endpoints. Every API request is
// held behind the readiness gate until the store init has completed.
func RegisterAPIRoutes(r *gin.Engine, gate *middleware.ReadyGate, h Handlers) {
	api := r.Group("/api")
	api.Use(gate.Middleware())
	{
		api.GET("/groups", h.Groups.ListGroupsHandler)
		api.GET("/students", h.Students.ListStudentsHandler)
		api.GET("/students/export", h.Students.ExportStudentsHandler)
		api.POST("/register", h.Register.RegisterHandler)
		api.GET("/config", h.SiteConfig.GetConfigHandler)
	}
}
