package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func (h *Handler) CreateApplication(c *gin.Context) {
	var req model.CreateApplicationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.Lifecycle.CreateApplication(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, app)
}

func (h *Handler) GetApplication(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	app, err := h.Store.GetApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, app)
}

func (h *Handler) ListApplications(c *gin.Context) {
	var filter store.ApplicationFilter
	if raw := c.Query("status"); raw != "" {
		status := model.Status(raw)
		if !status.Valid() {
			response.BadRequest(c, "invalid status")
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid company_id")
			return
		}
		filter.CompanyID = &id
	}
	filter.Search = c.Query("search")
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	apps, err := h.Store.ListApplications(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OKWithMeta(c, apps, &response.Meta{Total: len(apps)})
}

func (h *Handler) UpdateApplication(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	var upd model.ApplicationUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.Lifecycle.UpdateApplication(c.Request.Context(), id, upd)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, app)
}

func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	var req model.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.Lifecycle.UpdateStatus(c.Request.Context(), id, req.Status, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, app)
}

func (h *Handler) DeleteApplication(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	deleted, err := h.Lifecycle.DeleteApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "")
		return
	}

	response.Message(c, "application deleted successfully")
}

func (h *Handler) AddInteraction(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	var req model.CreateInteractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	interaction, err := h.Lifecycle.AddInteraction(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, interaction)
}

func (h *Handler) ListInteractions(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	interactions, err := h.Store.ListInteractionsByApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, interactions)
}

func (h *Handler) AddApplicationContact(c *gin.Context) {
	appID, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}
	contactID, ok := h.idParam(c, "contact_id")
	if !ok {
		return
	}

	if err := h.Lifecycle.AddContact(c.Request.Context(), appID, contactID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, "contact linked successfully")
}

func (h *Handler) RemoveApplicationContact(c *gin.Context) {
	appID, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}
	contactID, ok := h.idParam(c, "contact_id")
	if !ok {
		return
	}

	if err := h.Lifecycle.RemoveContact(c.Request.Context(), appID, contactID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, "contact unlinked successfully")
}

func (h *Handler) ListApplicationContacts(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	contacts, err := h.Store.ListApplicationContacts(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, contacts)
}

func (h *Handler) AttachApplicationDocument(c *gin.Context) {
	appID, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}
	docID, ok := h.idParam(c, "document_id")
	if !ok {
		return
	}

	if err := h.Lifecycle.AttachDocument(c.Request.Context(), appID, docID); err != nil {
		h.respondError(c, err)
		return
	}

	response.Message(c, "document attached successfully")
}

func (h *Handler) ListApplicationDocuments(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	docs, err := h.Store.ListApplicationDocuments(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, docs)
}

func (h *Handler) AddApplicationNote(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	var req model.AddNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.Lifecycle.AddNote(c.Request.Context(), id, req.Note)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.Created(c, record)
}

func (h *Handler) GetApplicationTimeline(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	events, err := h.Timeline.ForApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, events)
}

func (h *Handler) GetApplicationHistory(c *gin.Context) {
	id, ok := h.idParam(c, "application_id")
	if !ok {
		return
	}

	records, err := h.Ledger.ListForApplication(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, records)
}
