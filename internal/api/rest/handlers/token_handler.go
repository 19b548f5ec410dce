package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dhoini/nice-proxy/internal/domain"
	"github.com/Dhoini/nice-proxy/pkg/logger"
	"github.com/Dhoini/nice-proxy/pkg/res"
	"github.com/gin-gonic/gin"
)

// TokenRelay получает токен у провайдера авторизации
type TokenRelay interface {
	FetchToken(ctx context.Context) (json.RawMessage, error)
}

// TokenHandler обработчик ретрансляции токена
type TokenHandler struct {
	relay TokenRelay
	log   *logger.Logger
}

// NewTokenHandler создает новый обработчик токена
func NewTokenHandler(relay TokenRelay, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		relay: relay,
		log:   log,
	}
}

// GetToken возвращает ответ провайдера без изменений
func (h *TokenHandler) GetToken(c *gin.Context) {
	body, err := h.relay.FetchToken(c.Request.Context())
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.log.Warn("Upstream rejected token request with status %d", upstreamErr.StatusCode)
		} else {
			h.log.Error("Failed to fetch token: %v", err)
		}
		_ = c.Error(err)
		res.JsonErrorResponse(c, res.ErrorResponse{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
