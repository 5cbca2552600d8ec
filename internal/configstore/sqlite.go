package configstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Simplici0/sanquote/internal/services"
)

// SQLSource reads and writes documents in the service_configs table.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) Fetch(ctx context.Context, id services.ID) ([]byte, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM service_configs WHERE service = ?`, string(id)).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query service config %s: %w", id, err)
	}
	return []byte(doc), nil
}

// Put stores a document and its version, replacing any previous one.
func (s *SQLSource) Put(ctx context.Context, id services.ID, doc []byte, version string) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO service_configs (service, document, version, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(service) DO UPDATE SET
			document = excluded.document,
			version = excluded.version,
			updated_at = excluded.updated_at
	`, string(id), string(doc), version); err != nil {
		return fmt.Errorf("store service config %s: %w", id, err)
	}
	return nil
}

// StoredDoc describes one row of service_configs.
type StoredDoc struct {
	Service   services.ID `json:"service"`
	Version   string      `json:"version"`
	UpdatedAt string      `json:"updatedAt"`
}

func (s *SQLSource) List(ctx context.Context) ([]StoredDoc, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT service, version, updated_at
		FROM service_configs
		ORDER BY service
	`)
	if err != nil {
		return nil, fmt.Errorf("list service configs: %w", err)
	}
	defer rows.Close()

	docs := make([]StoredDoc, 0)
	for rows.Next() {
		var d StoredDoc
		var svc string
		if err := rows.Scan(&svc, &d.Version, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Service = services.ID(svc)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}
