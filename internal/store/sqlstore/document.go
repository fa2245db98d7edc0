package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

const documentColumns = `id, name, doc_type, url, content, created_at`

func (q *queries) CreateDocument(ctx context.Context, d *model.Document) (int64, error) {
	if d.Name == "" {
		return 0, &store.ValidationError{Field: "name", Reason: "is required"}
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = timeNow()
	}
	id, err := q.insert(ctx, `
INSERT INTO documents (name, doc_type, url, content, created_at)
VALUES (?, ?, ?, ?, ?)`,
		d.Name, string(d.Type), nullStr(d.URL), nullStr(d.Content), fmtTime(d.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert document: %w", err)
	}
	d.ID = id
	return id, nil
}

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	var docType, createdAt string
	var url, content sql.NullString
	if err := row.Scan(&d.ID, &d.Name, &docType, &url, &content, &createdAt); err != nil {
		return nil, err
	}
	d.Type = model.DocumentType(docType)
	d.URL = strPtr(url)
	d.Content = strPtr(content)
	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (q *queries) GetDocument(ctx context.Context, id int64) (*model.Document, error) {
	row := q.queryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NotFound("document", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return d, nil
}

func (q *queries) ListDocuments(ctx context.Context) ([]model.Document, error) {
	rows, err := q.query(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, nil
}

func (q *queries) UpdateDocument(ctx context.Context, d *model.Document) error {
	res, err := q.exec(ctx, `
UPDATE documents SET name = ?, doc_type = ?, url = ?, content = ? WHERE id = ?`,
		d.Name, string(d.Type), nullStr(d.URL), nullStr(d.Content), d.ID)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.NotFound("document", d.ID)
	}
	return nil
}

func (q *queries) DeleteDocument(ctx context.Context, id int64) (bool, error) {
	if _, err := q.exec(ctx, `DELETE FROM application_documents WHERE document_id = ?`, id); err != nil {
		return false, fmt.Errorf("unlink document: %w", err)
	}
	res, err := q.exec(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
