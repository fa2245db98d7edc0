package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AN0DA/JobTrackr-sub000/internal/engine"
	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

type Handler struct {
	Logger    *zap.Logger
	Store     store.Store
	Lifecycle *engine.Lifecycle
	Ledger    *engine.Ledger
	Timeline  *engine.Timeline
	Analytics *engine.Analytics
}

// idParam parses a numeric path parameter. A second return of false means a
// 400 was already written.
func (h *Handler) idParam(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// respondError maps engine and store errors onto the response envelope.
func (h *Handler) respondError(c *gin.Context, err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		response.ValidationError(c, ve.Error())
		return
	}
	var ce *store.ConflictError
	if errors.As(err, &ce) {
		response.Conflict(c, ce.Error())
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	h.Logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	response.InternalError(c, "")
}
