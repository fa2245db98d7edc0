package model

import "time"

type Reminder struct {
	ID            int64     `json:"id" db:"id"`
	ApplicationID *int64    `json:"application_id" db:"application_id"`
	Title         string    `json:"title" db:"title"`
	Description   *string   `json:"description" db:"description"`
	DueDate       time.Time `json:"due_date" db:"due_date"`
	Completed     bool      `json:"completed" db:"completed"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

type CreateReminderReq struct {
	Title         string  `json:"title" binding:"required"`
	DueDate       string  `json:"due_date" binding:"required"`
	ApplicationID *int64  `json:"application_id"`
	Description   *string `json:"description"`
}

type UpdateReminderReq struct {
	Title       *string `json:"title,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
