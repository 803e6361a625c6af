// README: HTTP route registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabsync/internal/http/handlers"
	"cabsync/internal/http/middleware"
)

func registerRoutes(r *gin.Engine, s *Server) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	quotes := handlers.NewQuoteHandler(s.rapido, s.payloads, s.timeout)

	api := r.Group("/api", middleware.Auth(s.verifier))
	api.GET("/providers", quotes.Providers)
	api.POST("/rapido/quotes", quotes.Quotes)
	api.POST("/rapido/decode", quotes.Decode)
	api.GET("/rapido/payloads", quotes.Payloads)
}
