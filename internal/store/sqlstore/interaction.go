package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const interactionColumns = `id, application_id, contact_id, interaction_type, date, subject, notes, created_at`

func (q *queries) CreateInteraction(ctx context.Context, i *model.Interaction) (int64, error) {
	if _, err := q.GetApplication(ctx, i.ApplicationID); err != nil {
		return 0, &store.ValidationError{Field: "application_id", Reason: "references a nonexistent application"}
	}
	if i.ContactID != nil {
		if _, err := q.GetContact(ctx, *i.ContactID); err != nil {
			return 0, &store.ValidationError{Field: "contact_id", Reason: "references a nonexistent contact"}
		}
	}
	now := timeNow()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	if i.Date.IsZero() {
		i.Date = now
	}
	id, err := q.insert(ctx, `
INSERT INTO interactions (application_id, contact_id, interaction_type, date, subject, notes, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ApplicationID, nullI64(i.ContactID), string(i.Type), fmtTime(i.Date),
		nullStr(i.Subject), nullStr(i.Notes), fmtTime(i.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert interaction: %w", err)
	}
	i.ID = id
	return id, nil
}

func scanInteraction(row interface{ Scan(...any) error }) (*model.Interaction, error) {
	var i model.Interaction
	var contactID sql.NullInt64
	var subject, notes sql.NullString
	var iType, date, createdAt string
	if err := row.Scan(&i.ID, &i.ApplicationID, &contactID, &iType, &date, &subject, &notes, &createdAt); err != nil {
		return nil, err
	}
	i.ContactID = i64Ptr(contactID)
	i.Type = model.InteractionType(iType)
	i.Subject = strPtr(subject)
	i.Notes = strPtr(notes)
	var err error
	if i.Date, err = parseTime(date); err != nil {
		return nil, err
	}
	if i.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (q *queries) listInteractions(ctx context.Context, query string, args ...any) ([]model.Interaction, error) {
	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []model.Interaction
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, *i)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) ListInteractionsByApplication(ctx context.Context, applicationID int64) ([]model.Interaction, error) {
	return q.listInteractions(ctx,
		`SELECT `+interactionColumns+` FROM interactions WHERE application_id = ? ORDER BY id`,
		applicationID)
}

func (q *queries) ListRecentInteractions(ctx context.Context, limit int) ([]model.Interaction, error) {
	return q.listInteractions(ctx,
		`SELECT `+interactionColumns+` FROM interactions ORDER BY date DESC, id LIMIT ?`,
		limit)
}

func (q *queries) DeleteInteraction(ctx context.Context, id int64) (bool, error) {
	res, err := q.exec(ctx, `DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete interaction: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
