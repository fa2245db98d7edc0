package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const contactColumns = `id, company_id, name, title, email, phone, notes, created_at, updated_at`

func (q *queries) CreateContact(ctx context.Context, c *model.Contact) (int64, error) {
	if c.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	if c.CompanyID != nil {
		if _, err := q.GetCompany(ctx, *c.CompanyID); err != nil {
			return 0, &store.ValidationError{Field: "company_id", Reason: "references a nonexistent company"}
		}
	}
	now := timeNow()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	id, err := q.insert(ctx, `
INSERT INTO contacts (company_id, name, title, email, phone, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullI64(c.CompanyID), c.Name, nullStr(c.Title), nullStr(c.Email), nullStr(c.Phone),
		nullStr(c.Notes), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	c.ID = id
	return id, nil
}

func scanContact(row interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	var companyID sql.NullInt64
	var title, email, phone, notes sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &companyID, &c.Name, &title, &email, &phone, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.CompanyID = i64Ptr(companyID)
	c.Title = strPtr(title)
	c.Email = strPtr(email)
	c.Phone = strPtr(phone)
	c.Notes = strPtr(notes)
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *queries) GetContact(ctx context.Context, id int64) (*model.Contact, error) {
	row := q.queryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound("contact", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return c, nil
}

func (q *queries) ListContacts(ctx context.Context, companyID *int64) ([]model.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts`
	var args []any
	if companyID != nil {
		query += ` WHERE company_id = ?`
		args = append(args, *companyID)
	}
	query += ` ORDER BY id`

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) UpdateContact(ctx context.Context, c *model.Contact) error {
	c.UpdatedAt = timeNow()
	res, err := q.exec(ctx, `
UPDATE contacts SET company_id = ?, name = ?, title = ?, email = ?, phone = ?, notes = ?, updated_at = ?
WHERE id = ?`,
		nullI64(c.CompanyID), c.Name, nullStr(c.Title), nullStr(c.Email), nullStr(c.Phone),
		nullStr(c.Notes), fmtTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound("contact", c.ID)
	}
	return nil
}

func (q *queries) DeleteContact(ctx context.Context, id int64) (bool, error) {
	if _, err := q.exec(ctx, `DELETE FROM contact_applications WHERE contact_id = ?`, id); err != nil {
		return false, fmt.Errorf("unlink contact: %w", err)
	}
	res, err := q.exec(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
