package model

import "time"

// ChangeKind identifies what kind of mutation a ChangeRecord describes.
type ChangeKind string

const (
	ChangeStatus             ChangeKind = "STATUS_CHANGE"
	ChangeInteractionAdded   ChangeKind = "INTERACTION_ADDED"
	ChangeContactAdded       ChangeKind = "CONTACT_ADDED"
	ChangeContactRemoved     ChangeKind = "CONTACT_REMOVED"
	ChangeApplicationUpdated ChangeKind = "APPLICATION_UPDATED"
	ChangeNoteAdded          ChangeKind = "NOTE_ADDED"
	ChangeDocumentAdded      ChangeKind = "DOCUMENT_ADDED"
)

// ChangeRecord is one immutable audit entry for an application. The timestamp
// is assigned by the store at insertion; records are never updated or deleted.
type ChangeRecord struct {
	ID            int64      `json:"id" db:"id"`
	ApplicationID int64      `json:"application_id" db:"application_id"`
	Kind          ChangeKind `json:"kind" db:"kind"`
	OldValue      *string    `json:"old_value" db:"old_value"`
	NewValue      *string    `json:"new_value" db:"new_value"`
	Note          *string    `json:"note" db:"note"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
