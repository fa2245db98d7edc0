package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const changeColumns = `id, application_id, kind, old_value, new_value, note, created_at`

// AppendChangeRecord stores one immutable audit entry. The timestamp is
// assigned here, never taken from the caller.
func (q *queries) AppendChangeRecord(ctx context.Context, r *model.ChangeRecord) (int64, error) {
	r.CreatedAt = timeNow()
	id, err := q.insert(ctx, `
INSERT INTO change_records (application_id, kind, old_value, new_value, note, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		r.ApplicationID, string(r.Kind), nullStr(r.OldValue), nullStr(r.NewValue),
		nullStr(r.Note), fmtTime(r.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert change record: %w", err)
	}
	r.ID = id
	return id, nil
}

func (q *queries) ListChangeRecords(ctx context.Context, applicationID int64) ([]model.ChangeRecord, error) {
	rows, err := q.query(ctx,
		`SELECT `+changeColumns+` FROM change_records WHERE application_id = ? ORDER BY id`,
		applicationID)
	if err != nil {
		return nil, fmt.Errorf("query change records: %w", err)
	}
	defer rows.Close()

	var out []model.ChangeRecord
	for rows.Next() {
		var r model.ChangeRecord
		var kind, createdAt string
		var oldValue, newValue, note sql.NullString
		if err := rows.Scan(&r.ID, &r.ApplicationID, &kind, &oldValue, &newValue, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("scan change record: %w", err)
		}
		r.Kind = model.ChangeKind(kind)
		r.OldValue = strPtr(oldValue)
		r.NewValue = strPtr(newValue)
		r.Note = strPtr(note)
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
