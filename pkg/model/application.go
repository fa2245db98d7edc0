package model

import "time"

// Status describes where an application stands in the hiring process.
// The set is closed; any status may follow any other.
type Status string

const (
	StatusSaved              Status = "SAVED"
	StatusApplied            Status = "APPLIED"
	StatusPhoneScreen        Status = "PHONE_SCREEN"
	StatusInterview          Status = "INTERVIEW"
	StatusTechnicalInterview Status = "TECHNICAL_INTERVIEW"
	StatusOffer              Status = "OFFER"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{
	StatusSaved, StatusApplied, StatusPhoneScreen, StatusInterview,
	StatusTechnicalInterview, StatusOffer, StatusAccepted,
	StatusRejected, StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Responded reports whether the status counts as a company response.
func (s Status) Responded() bool {
	switch s {
	case StatusPhoneScreen, StatusInterview, StatusTechnicalInterview,
		StatusOffer, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// ReachedInterview reports whether the status counts as reaching the
// interview stage or beyond.
func (s Status) ReachedInterview() bool {
	switch s {
	case StatusInterview, StatusTechnicalInterview, StatusOffer,
		StatusAccepted, StatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	JobTitle    string    `json:"job_title" db:"job_title"`
	Position    string    `json:"position" db:"position"`
	Location    *string   `json:"location" db:"location"`
	SalaryMin   *int      `json:"salary_min" db:"salary_min"`
	SalaryMax   *int      `json:"salary_max" db:"salary_max"`
	Status      Status    `json:"status" db:"status"`
	AppliedDate time.Time `json:"applied_date" db:"applied_date"`
	Link        *string   `json:"link" db:"link"`
	Description *string   `json:"description" db:"description"`
	Notes       *string   `json:"notes" db:"notes"`
	Tags        []string  `json:"tags" db:"tags"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateApplicationReq struct {
	CompanyID   int64    `json:"company_id" binding:"required"`
	JobTitle    string   `json:"job_title" binding:"required"`
	Position    string   `json:"position" binding:"required"`
	Status      Status   `json:"status" binding:"required"`
	AppliedDate string   `json:"applied_date" binding:"required"`
	Location    *string  `json:"location"`
	SalaryMin   *int     `json:"salary_min"`
	SalaryMax   *int     `json:"salary_max"`
	Link        *string  `json:"link"`
	Description *string  `json:"description"`
	Notes       *string  `json:"notes"`
	Tags        []string `json:"tags"`
}

// ApplicationUpdate carries a bulk field edit. Nil fields are left untouched.
type ApplicationUpdate struct {
	JobTitle    *string   `json:"job_title,omitempty"`
	Position    *string   `json:"position,omitempty"`
	Location    *string   `json:"location,omitempty"`
	SalaryMin   *int      `json:"salary_min,omitempty"`
	SalaryMax   *int      `json:"salary_max,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	AppliedDate *string   `json:"applied_date,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Description *string   `json:"description,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

type UpdateStatusReq struct {
	Status Status  `json:"status" binding:"required"`
	Note   *string `json:"note"`
}

type AddNoteReq struct {
	Note string `json:"note" binding:"required"`
}
