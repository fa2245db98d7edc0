package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
	"github.com/AN0DA/JobTrackr-sub000/pkg/response"
)

func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func (h *Handler) CreateReminder(c *gin.Context) {
	var req model.CreateReminderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		response.BadRequest(c, "invalid due_date")
		return
	}
	if req.ApplicationID != nil {
		if _, err := h.Store.GetApplication(c.Request.Context(), *req.ApplicationID); err != nil {
			h.respondError(c, err)
			return
		}
	}

	reminder := &model.Reminder{
		ApplicationID: req.ApplicationID,
		Title:         req.Title,
		Description:   req.Description,
		DueDate:       due,
		CreatedAt:     time.Now().UTC(),
	}
	id, err := h.Store.CreateReminder(c.Request.Context(), reminder)
	if err != nil {
		h.respondError(c, err)
		return
	}
	reminder.ID = id

	response.Created(c, reminder)
}

func (h *Handler) GetReminder(c *gin.Context) {
	id, ok := h.idParam(c, "reminder_id")
	if !ok {
		return
	}

	reminder, err := h.Store.GetReminder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, reminder)
}

func (h *Handler) ListReminders(c *gin.Context) {
	var filter store.ReminderFilter
	if raw := c.Query("application_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid application_id")
			return
		}
		filter.ApplicationID = &id
	}
	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(c, "invalid completed")
			return
		}
		filter.Completed = &completed
	}

	reminders, err := h.Store.ListReminders(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, reminders)
}

func (h *Handler) UpdateReminder(c *gin.Context) {
	id, ok := h.idParam(c, "reminder_id")
	if !ok {
		return
	}

	var req model.UpdateReminderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reminder, err := h.Store.GetReminder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			response.BadRequest(c, "invalid due_date")
			return
		}
		reminder.DueDate = due
	}
	if req.Description != nil {
		reminder.Description = req.Description
	}
	if req.Completed != nil {
		reminder.Completed = *req.Completed
	}

	if err := h.Store.UpdateReminder(c.Request.Context(), reminder); err != nil {
		h.respondError(c, err)
		return
	}

	response.OK(c, reminder)
}

func (h *Handler) DeleteReminder(c *gin.Context) {
	id, ok := h.idParam(c, "reminder_id")
	if !ok {
		return
	}

	deleted, err := h.Store.DeleteReminder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "")
		return
	}

	response.Message(c, "reminder deleted successfully")
}
