package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func (h *Handler) CreateDocument(c *gin.Context) {
	var req model.CreateDocumentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc := &model.Document{
		Name:      req.Name,
		Type:      req.Type,
		URL:       req.URL,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	id, err := h.Store.CreateDocument(c.Request.Context(), doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	doc.ID = id

	response.Created(c, doc)
}

func (h *Handler) GetDocument(c *gin.Context) {
	id, ok := h.idParam(c, "document_id")
	if !ok {
		return
	}

	doc, err := h.Store.GetDocument(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, doc)
}

func (h *Handler) ListDocuments(c *gin.Context) {
	docs, err := h.Store.ListDocuments(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, docs)
}

func (h *Handler) DeleteDocument(c *gin.Context) {
	id, ok := h.idParam(c, "document_id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "")
		return
	}

	response.Message(c, "document deleted successfully")
}
