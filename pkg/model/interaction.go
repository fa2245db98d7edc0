package model

import "time"

type InteractionType string

const (
	InteractionNote     InteractionType = "NOTE"
	InteractionEmail    InteractionType = "EMAIL"
	InteractionCall     InteractionType = "PHONE_CALL"
	InteractionLinkedIn InteractionType = "LINKEDIN"
	InteractionMeeting  InteractionType = "INTERVIEW"
	InteractionOffer    InteractionType = "OFFER"
	InteractionFollowUp InteractionType = "FOLLOW_UP"
)

// AllInteractionTypes lists every valid interaction type.
var AllInteractionTypes = []InteractionType{
	InteractionNote, InteractionEmail, InteractionCall, InteractionLinkedIn,
	InteractionMeeting, InteractionOffer, InteractionFollowUp,
}

// Valid reports whether t is one of the known interaction types.
func (t InteractionType) Valid() bool {
	for _, v := range AllInteractionTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Interaction struct {
	ID            int64           `json:"id" db:"id"`
	ApplicationID int64           `json:"application_id" db:"application_id"`
	ContactID     *int64          `json:"contact_id" db:"contact_id"`
	Type          InteractionType `json:"type" db:"type"`
	Date          time.Time       `json:"date" db:"date"`
	Subject       *string         `json:"subject" db:"subject"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type CreateInteractionReq struct {
	Type      InteractionType `json:"type" binding:"required"`
	Date      string          `json:"date" binding:"required"`
	ContactID *int64          `json:"contact_id"`
	Subject   *string         `json:"subject"`
	Notes     *string         `json:"notes"`
}
