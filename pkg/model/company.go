package model

import "time"

type Company struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Website   *string   `json:"website" db:"website"`
	Industry  *string   `json:"industry" db:"industry"`
	Size      *string   `json:"size" db:"size"`
	Notes     *string   `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateCompanyReq struct {
	Name     string  `json:"name" binding:"required"`
	Website  *string `json:"website"`
	Industry *string `json:"industry"`
	Size     *string `json:"size"`
	Notes    *string `json:"notes"`
}

type UpdateCompanyReq struct {
	Name     *string `json:"name,omitempty"`
	Website  *string `json:"website,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Size     *string `json:"size,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
