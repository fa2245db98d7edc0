package model

import "time"

type Contact struct {
	ID        int64     `json:"id" db:"id"`
	CompanyID *int64    `json:"company_id" db:"company_id"`
	Name      string    `json:"name" db:"name"`
	Title     *string   `json:"title" db:"title"`
	Email     *string   `json:"email" db:"email"`
	Phone     *string   `json:"phone" db:"phone"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateContactReq struct {
	Name      string  `json:"name" binding:"required"`
	CompanyID *int64  `json:"company_id"`
	Title     *string `json:"title"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Notes     *string `json:"notes"`
}

type UpdateContactReq struct {
	Name      *string `json:"name,omitempty"`
	CompanyID *int64  `json:"company_id,omitempty"`
	Title     *string `json:"title,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}
