package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/internal/handlers"
	"github.com/cardano2vn/group-signup/internal/middleware"
)

// Handlers collects the request handlers the router wires up.
type Handlers struct {
	Groups     *handlers.GroupHandler
	Students   *handlers.StudentHandler
	Register   *handlers.RegisterHandler
	SiteConfig *handlers.ConfigHandler
}

// SetupRoutes registers all routes of the application: the static
// signup page and the JSON API behind the readiness gate.
func SetupRoutes(r *gin.Engine, gate *middleware.ReadyGate, h Handlers) {
	r.Use(middleware.RequestID())

	// The signup page and its assets need no gating, they are static.
	r.Static("/static", "./web/static")
	r.StaticFile("/", "./web/index.html")

	RegisterAPIRoutes(r, gate, h)
}
