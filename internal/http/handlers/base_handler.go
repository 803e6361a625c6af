// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabsync/internal/modules/rapido"
	"cabsync/internal/wire"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeQuoteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rapido.ErrBadRequest), errors.Is(err, wire.ErrBadEnvelope):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "rapido timed out")
	case errors.Is(err, rapido.ErrUpstream):
		writeError(c, http.StatusBadGateway, "rapido unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
