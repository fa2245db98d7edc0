package model

import "time"

type DocumentType string

const (
	DocumentResume      DocumentType = "RESUME"
	DocumentCoverLetter DocumentType = "COVER_LETTER"
	DocumentPortfolio   DocumentType = "PORTFOLIO"
	DocumentOfferLetter DocumentType = "OFFER_LETTER"
	DocumentOther       DocumentType = "OTHER"
)

type Document struct {
	ID        int64        `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Type      DocumentType `json:"type" db:"type"`
	URL       *string      `json:"url" db:"url"`
	Content   *string      `json:"content" db:"content"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

type CreateDocumentReq struct {
	Name    string       `json:"name" binding:"required"`
	Type    DocumentType `json:"type" binding:"required"`
	URL     *string      `json:"url"`
	Content *string      `json:"content"`
}
