package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func (h *Handler) CreateCompany(c *gin.Context) {
	var req model.CreateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	now := time.Now().UTC()
	company := &model.Company{
		Name:      req.Name,
		Website:   req.Website,
		Industry:  req.Industry,
		Size:      req.Size,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := h.Store.CreateCompany(c.Request.Context(), company)
	if err != nil {
		h.respondError(c, err)
		return
	}
	company.ID = id

	response.Created(c, company)
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := h.idParam(c, "company_id")
	if !ok {
		return
	}

	company, err := h.Store.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, company)
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.Store.ListCompanies(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, companies)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := h.idParam(c, "company_id")
	if !ok {
		return
	}

	var req model.UpdateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	company, err := h.Store.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Website != nil {
		company.Website = req.Website
	}
	if req.Industry != nil {
		company.Industry = req.Industry
	}
	if req.Size != nil {
		company.Size = req.Size
	}
	if req.Notes != nil {
		company.Notes = req.Notes
	}
	company.UpdatedAt = time.Now().UTC()

	if err := h.Store.UpdateCompany(c.Request.Context(), company); err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, company)
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := h.idParam(c, "company_id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "")
		return
	}

	response.Message(c, "company deleted successfully")
}
