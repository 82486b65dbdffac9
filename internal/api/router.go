// Package api assembles the optional monitor HTTP surface (C15): four
// routes over an in-memory run registry and the run store.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nerevar/traclusdl/internal/handler"
	"github.com/nerevar/traclusdl/internal/middleware"
)

// SetupRouter wires the monitor routes. monitorToken guards POST /runs;
// an empty token disables that route's auth, which the caller should only
// do in tests.
func SetupRouter(h *handler.RunHandler, monitorToken string) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(3, time.Second))
	r.Use(gin.Recovery())

	r.GET("/health", h.Health)
	r.GET("/runs/:id", h.GetRun)
	r.GET("/runs/:id/corridors", h.GetCorridors)

	trigger := r.Group("/")
	if monitorToken != "" {
		trigger.Use(middleware.BearerAuth(monitorToken))
	}
	trigger.POST("/runs", h.Trigger)

	return r
}
