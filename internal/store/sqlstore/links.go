package sqlstore

import (
	"context"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

func (q *queries) LinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	if _, err := q.GetApplication(ctx, applicationID); err != nil {
		return false, err
	}
	if _, err := q.GetContact(ctx, contactID); err != nil {
		return false, err
	}
	var exists int
	err := q.queryRow(ctx,
		`SELECT COUNT(1) FROM contact_applications WHERE application_id = ? AND contact_id = ?`,
		applicationID, contactID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check contact link: %w", err)
	}
	if exists > 0 {
		return false, nil
	}
	if _, err := q.exec(ctx,
		`INSERT INTO contact_applications (application_id, contact_id, created_at) VALUES (?, ?, ?)`,
		applicationID, contactID, fmtTime(timeNow())); err != nil {
		return false, fmt.Errorf("insert contact link: %w", err)
	}
	return true, nil
}

func (q *queries) UnlinkContact(ctx context.Context, applicationID, contactID int64) (bool, error) {
	res, err := q.exec(ctx,
		`DELETE FROM contact_applications WHERE application_id = ? AND contact_id = ?`,
		applicationID, contactID)
	if err != nil {
		return false, fmt.Errorf("delete contact link: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (q *queries) ListApplicationContacts(ctx context.Context, applicationID int64) ([]model.Contact, error) {
	rows, err := q.query(ctx, `
SELECT c.id, c.company_id, c.name, c.title, c.email, c.phone, c.notes, c.created_at, c.updated_at
FROM contacts c
JOIN contact_applications ca ON ca.contact_id = c.id
WHERE ca.application_id = ?
ORDER BY ca.created_at, c.id`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query application contacts: %w", err)
	}
	defer rows.Close()

	var out []model.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application contact: %w", err)
		}
		out = append(out, *c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) LinkDocument(ctx context.Context, applicationID, documentID int64) (bool, error) {
	if _, err := q.GetApplication(ctx, applicationID); err != nil {
		return false, err
	}
	if _, err := q.GetDocument(ctx, documentID); err != nil {
		return false, err
	}
	var exists int
	err := q.queryRow(ctx,
		`SELECT COUNT(1) FROM application_documents WHERE application_id = ? AND document_id = ?`,
		applicationID, documentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check document link: %w", err)
	}
	if exists > 0 {
		return false, nil
	}
	if _, err := q.exec(ctx,
		`INSERT INTO application_documents (application_id, document_id, created_at) VALUES (?, ?, ?)`,
		applicationID, documentID, fmtTime(timeNow())); err != nil {
		return false, fmt.Errorf("insert document link: %w", err)
	}
	return true, nil
}

func (q *queries) ListApplicationDocuments(ctx context.Context, applicationID int64) ([]model.Document, error) {
	rows, err := q.query(ctx, `
SELECT d.id, d.name, d.doc_type, d.url, d.content, d.created_at
FROM documents d
JOIN application_documents ad ON ad.document_id = d.id
WHERE ad.application_id = ?
ORDER BY ad.created_at, d.id`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("query application documents: %w", err)
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application document: %w", err)
		}
		out = append(out, *d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}
