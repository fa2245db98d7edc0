package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func (h *Handler) CreateContact(c *gin.Context) {
	var req model.CreateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now().UTC()
	contact := &model.Contact{
		Name:      req.Name,
		CompanyID: req.CompanyID,
		Title:     req.Title,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := h.Store.CreateContact(c.Request.Context(), contact)
	if err != nil {
		h.respondError(c, err)
		return
	}
	contact.ID = id

	response.Created(c, contact)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, ok := h.idParam(c, "contact_id")
	if !ok {
		return
	}

	contact, err := h.Store.GetContact(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, contact)
}

func (h *Handler) ListContacts(c *gin.Context) {
	var companyID *int64
	if raw := c.Query("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid company_id")
			return
		}
		companyID = &id
	}

	contacts, err := h.Store.ListContacts(c.Request.Context(), companyID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, contacts)
}

func (h *Handler) UpdateContact(c *gin.Context) {
	id, ok := h.idParam(c, "contact_id")
	if !ok {
		return
	}

	var req model.UpdateContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contact, err := h.Store.GetContact(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.CompanyID != nil {
		contact.CompanyID = req.CompanyID
	}
	if req.Title != nil {
		contact.Title = req.Title
	}
	if req.Email != nil {
		contact.Email = req.Email
	}
	if req.Phone != nil {
		contact.Phone = req.Phone
	}
	if req.Notes != nil {
		contact.Notes = req.Notes
	}
	contact.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateContact(c.Request.Context(), contact); err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, contact)
}

func (h *Handler) DeleteContact(c *gin.Context) {
	id, ok := h.idParam(c, "contact_id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteContact(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "")
		return
	}

	response.Message(c, "contact deleted successfully")
}
