package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

func (q *queries) CreateCompany(ctx context.Context, c *model.Company) (int64, error) {
	if c.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	now := timeNow()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	id, err := q.insert(ctx, `
INSERT INTO companies (name, website, industry, size, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, nullStr(c.Website), nullStr(c.Industry), nullStr(c.Size), nullStr(c.Notes),
		fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert company: %w", err)
	}
	c.ID = id
	return id, nil
}

const companyColumns = `id, name, website, industry, size, notes, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*model.Company, error) {
	var c model.Company
	var website, industry, size, notes sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&c.ID, &c.Name, &website, &industry, &size, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	c.Website = strPtr(website)
	c.Industry = strPtr(industry)
	c.Size = strPtr(size)
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

func (q *queries) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	row := q.queryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound("company", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query company: %w", err)
	}
	return c, nil
}

func (q *queries) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := q.query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		out = append(out, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) UpdateCompany(ctx context.Context, c *model.Company) error {
	c.UpdatedAt = timeNow()
	res, err := q.exec(ctx, `
UPDATE companies SET name = ?, website = ?, industry = ?, size = ?, notes = ?, updated_at = ?
WHERE id = ?`,
		c.Name, nullStr(c.Website), nullStr(c.Industry), nullStr(c.Size), nullStr(c.Notes),
		fmtTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound("company", c.ID)
	}
	return nil
}

func (q *queries) DeleteCompany(ctx context.Context, id int64) (bool, error) {
	var owned int
	if err := q.queryRow(ctx, `SELECT COUNT(1) FROM applications WHERE company_id = ?`, id).Scan(&owned); err != nil {
		return false, fmt.Errorf("count owned applications: %w", err)
	}
	if owned > 0 {
		return false, &store.ConflictError{Reason: "company still owns applications"}
	}
	if _, err := q.exec(ctx, `UPDATE contacts SET company_id = NULL WHERE company_id = ?`, id); err != nil {
		return false, fmt.Errorf("detach contacts: %w", err)
	}
	res, err := q.exec(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete company: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
