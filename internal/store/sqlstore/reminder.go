package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const reminderColumns = `id, application_id, title, description, due_date, completed, created_at`

func (q *queries) CreateReminder(ctx context.Context, r *model.Reminder) (int64, error) {
	if r.Title == "" {
		return 0, &store.ValidationError{Field: "title", Reason: "is required"}
	}
	if r.ApplicationID != nil {
		if _, err := q.GetApplication(ctx, *r.ApplicationID); err != nil {
			return 0, &store.ValidationError{Field: "application_id", Reason: "references a nonexistent application"}
		}
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = timeNow()
	}
	completed := 0
	if r.Completed {
		completed = 1
	}
	id, err := q.insert(ctx, `
INSERT INTO reminders (application_id, title, description, due_date, completed, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		nullI64(r.ApplicationID), r.Title, nullStr(r.Description), fmtTime(r.DueDate),
		completed, fmtTime(r.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert reminder: %w", err)
	}
	r.ID = id
	return id, nil
}

func scanReminder(row interface{ Scan(...any) error }) (*model.Reminder, error) {
	var r model.Reminder
	var applicationID sql.NullInt64
	var description sql.NullString
	var dueDate, createdAt string
	var completed int
	if err := row.Scan(&r.ID, &applicationID, &r.Title, &description, &dueDate, &completed, &createdAt); err != nil {
		return nil, err
	}
	r.ApplicationID = i64Ptr(applicationID)
	r.Description = strPtr(description)
	r.Completed = completed != 0
	var err error
	if r.DueDate, err = parseTime(dueDate); err != nil {
		return nil, err
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (q *queries) GetReminder(ctx context.Context, id int64) (*model.Reminder, error) {
	row := q.queryRow(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = ?`, id)
	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound("reminder", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query reminder: %w", err)
	}
	return r, nil
}

func (q *queries) ListReminders(ctx context.Context, f store.ReminderFilter) ([]model.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	var args []any
	var where []string
	if f.ApplicationID != nil {
		where = append(where, `application_id = ?`)
		args = append(args, *f.ApplicationID)
	}
	if f.Completed != nil {
		completed := 0
		if *f.Completed {
			completed = 1
		}
		where = append(where, `completed = ?`)
		args = append(args, completed)
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY due_date, id`

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reminders: %w", err)
	}
	defer rows.Close()

	var out []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, *r)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) UpdateReminder(ctx context.Context, r *model.Reminder) error {
	completed := 0
	if r.Completed {
		completed = 1
	}
	res, err := q.exec(ctx, `
UPDATE reminders SET application_id = ?, title = ?, description = ?, due_date = ?, completed = ?
WHERE id = ?`,
		nullI64(r.ApplicationID), r.Title, nullStr(r.Description), fmtTime(r.DueDate), completed, r.ID)
	if err != nil {
		return fmt.Errorf("update reminder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound("reminder", r.ID)
	}
	return nil
}

func (q *queries) DeleteReminder(ctx context.Context, id int64) (bool, error) {
	res, err := q.exec(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete reminder: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
