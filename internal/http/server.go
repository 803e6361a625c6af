// README: API gateway; builds the gin engine and delegates to module services.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cabsync/internal/http/handlers"
	"cabsync/internal/http/middleware"
	"cabsync/internal/infra"
)

type ServerDeps struct {
	Rapido   handlers.QuoteService
	Payloads handlers.PayloadLister
	Verifier infra.TokenVerifier
	Logger   logrus.FieldLogger
	// Timeout bounds one quote request end to end.
	Timeout time.Duration
}

type Server struct {
	rapido   handlers.QuoteService
	payloads handlers.PayloadLister
	verifier infra.TokenVerifier
	log      logrus.FieldLogger
	timeout  time.Duration
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Server{
		rapido:   deps.Rapido,
		payloads: deps.Payloads,
		verifier: deps.Verifier,
		log:      log,
		timeout:  timeout,
	}
}

func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))
	registerRoutes(r, s)
	return r
}
