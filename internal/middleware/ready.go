package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ReadyGate rejects API requests with 503 until the store has been
// initialized. The gate opens exactly once and never closes again.
type ReadyGate struct {
	ready atomic.Bool
}

func (g *ReadyGate) MarkReady() {
	g.ready.Store(true)
}

func (g *ReadyGate) Ready() bool {
	return g.ready.Load()
}

func (g *ReadyGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.ready.Load() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Service is starting up, please retry in a moment",
			})
			return
		}
		c.Next()
	}
}
