package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const applicationColumns = `id, company_id, job_title, position, location, salary_min, salary_max,
	status, applied_date, link, description, notes, tags, created_at, updated_at`

func (q *queries) CreateApplication(ctx context.Context, a *model.Application) (int64, error) {
	if _, err := q.GetCompany(ctx, a.CompanyID); err != nil {
		return 0, &store.ValidationError{Field: "company_id", Reason: "references a nonexistent company"}
	}
	now := timeNow()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return 0, err
	}
	id, err := q.insert(ctx, `
INSERT INTO applications (company_id, job_title, position, location, salary_min, salary_max,
	status, applied_date, link, description, notes, tags, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.CompanyID, a.JobTitle, a.Position, nullStr(a.Location), nullInt(a.SalaryMin), nullInt(a.SalaryMax),
		string(a.Status), fmtTime(a.AppliedDate), nullStr(a.Link), nullStr(a.Description), nullStr(a.Notes),
		tags, fmtTime(a.CreatedAt), fmtTime(a.UpdatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	a.ID = id
	return id, nil
}

func scanApplication(row interface{ Scan(...any) error }) (*model.Application, error) {
	var a model.Application
	var location, link, description, notes sql.NullString
	var salaryMin, salaryMax sql.NullInt64
	var status, appliedDate, tags, createdAt, updatedAt string
	if err := row.Scan(&a.ID, &a.CompanyID, &a.JobTitle, &a.Position, &location, &salaryMin, &salaryMax,
		&status, &appliedDate, &link, &description, &notes, &tags, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.Location = strPtr(location)
	a.Link = strPtr(link)
	a.Description = strPtr(description)
	a.Notes = strPtr(notes)
	a.SalaryMin = intPtr(salaryMin)
	a.SalaryMax = intPtr(salaryMax)
	a.Status = model.Status(status)
	var err error
	if a.AppliedDate, err = parseTime(appliedDate); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if a.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &a, nil
}

func (q *queries) GetApplication(ctx context.Context, id int64) (*model.Application, error) {
	row := q.queryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	a, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound("application", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query application: %w", err)
	}
	return a, nil
}

func (q *queries) ListApplications(ctx context.Context, f store.ApplicationFilter) ([]model.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a`
	var args []any
	var where []string
	if f.Search != "" {
		query = `SELECT a.id, a.company_id, a.job_title, a.position, a.location, a.salary_min, a.salary_max,
	a.status, a.applied_date, a.link, a.description, a.notes, a.tags, a.created_at, a.updated_at
FROM applications a LEFT JOIN companies c ON c.id = a.company_id`
		pattern := "%" + f.Search + "%"
		where = append(where, `(a.job_title LIKE ? OR a.position LIKE ? OR a.location LIKE ?
	OR a.description LIKE ? OR a.notes LIKE ? OR c.name LIKE ?)`)
		args = append(args, pattern, pattern, pattern, pattern, pattern, pattern)
	}
	if f.Status != nil {
		where = append(where, `a.status = ?`)
		args = append(args, string(*f.Status))
	}
	if f.CompanyID != nil {
		where = append(where, `a.company_id = ?`)
		args = append(args, *f.CompanyID)
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY a.applied_date DESC, a.id`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	} else if f.Offset > 0 && q.dialect == DialectSQLite {
		// sqlite rejects OFFSET without a preceding LIMIT; -1 means unbounded.
		query += ` LIMIT -1`
	}
	if f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, f.Offset)
	}

	rows, err := q.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	var out []model.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, *a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) UpdateApplication(ctx context.Context, a *model.Application) error {
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return err
	}
	res, err := q.exec(ctx, `
UPDATE applications SET company_id = ?, job_title = ?, position = ?, location = ?, salary_min = ?,
	salary_max = ?, status = ?, applied_date = ?, link = ?, description = ?, notes = ?, tags = ?,
	updated_at = ?
WHERE id = ?`,
		a.CompanyID, a.JobTitle, a.Position, nullStr(a.Location), nullInt(a.SalaryMin), nullInt(a.SalaryMax),
		string(a.Status), fmtTime(a.AppliedDate), nullStr(a.Link), nullStr(a.Description), nullStr(a.Notes),
		tags, fmtTime(a.UpdatedAt), a.ID)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound("application", a.ID)
	}
	return nil
}

func (q *queries) DeleteApplication(ctx context.Context, id int64) (bool, error) {
	for _, stmt := range []string{
		`DELETE FROM interactions WHERE application_id = ?`,
		`DELETE FROM reminders WHERE application_id = ?`,
		`DELETE FROM contact_applications WHERE application_id = ?`,
		`DELETE FROM application_documents WHERE application_id = ?`,
	} {
		if _, err := q.exec(ctx, stmt, id); err != nil {
			return false, fmt.Errorf("cascade application delete: %w", err)
		}
	}
	res, err := q.exec(ctx, `DELETE FROM applications WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete application: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
