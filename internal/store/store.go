// Package store archives accepted quotes in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/pricing"
	"github.com/Simplici0/sanquote/internal/quote"
	"github.com/Simplici0/sanquote/internal/services"
)

const timeLayout = "2006-01-02 15:04:05"

// Quotes is the quote archive.
type Quotes struct {
	db *sql.DB
}

func NewQuotes(db *sql.DB) *Quotes {
	return &Quotes{db: db}
}

// ListItem is one row of the quote list.
type ListItem struct {
	ID        int64           `json:"id"`
	Ref       string          `json:"ref"`
	CreatedAt string          `json:"createdAt"`
	Title     string          `json:"title"`
	Service   services.ID     `json:"service"`
	Total     decimal.Decimal `json:"total"`
}

// Save implements quote.Archiver. The contract total is kept as an exact
// decimal next to the full outputs.
func (q *Quotes) Save(ctx context.Context, r quote.Record) (int64, error) {
	inputs, err := json.Marshal(r.Inputs)
	if err != nil {
		return 0, fmt.Errorf("encode quote inputs: %w", err)
	}
	totals, err := json.Marshal(r.Outputs)
	if err != nil {
		return 0, fmt.Errorf("encode quote totals: %w", err)
	}
	overrides := []byte("{}")
	if len(r.Overrides) > 0 {
		if overrides, err = json.Marshal(r.Overrides); err != nil {
			return 0, fmt.Errorf("encode quote overrides: %w", err)
		}
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO quotes (
			ref,
			title,
			notes,
			service,
			config_version,
			inputs_json,
			totals_json,
			overrides_json,
			total,
			created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.Ref,
		r.Title,
		r.Notes,
		string(r.Service),
		r.ConfigVersion,
		string(inputs),
		string(totals),
		string(overrides),
		pricing.Money(r.Outputs.ContractTotal),
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert quote: %w", err)
	}
	return res.LastInsertId()
}

// List returns archived quotes newest first, filtered by title or notes.
func (q *Quotes) List(ctx context.Context, query string) ([]ListItem, error) {
	search := "%" + query + "%"
	rows, err := q.db.QueryContext(ctx, `
		SELECT
			id,
			ref,
			created_at,
			COALESCE(title, ''),
			service,
			total
		FROM quotes
		WHERE (? = '' OR COALESCE(title, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	quotes := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var svc, total string
		if err := rows.Scan(&item.ID, &item.Ref, &item.CreatedAt, &item.Title, &svc, &total); err != nil {
			return nil, err
		}
		item.Service = services.ID(svc)
		item.Total = parseTotal(total)
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

// Get loads one archived quote by ID.
func (q *Quotes) Get(ctx context.Context, id int64) (quote.Record, error) {
	var (
		rec                          quote.Record
		svc, created                 string
		title, notes                 sql.NullString
		inputs, totals, overridesRaw string
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT id, ref, title, notes, service, config_version, inputs_json, totals_json, overrides_json, created_at
		FROM quotes
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Ref, &title, &notes, &svc, &rec.ConfigVersion, &inputs, &totals, &overridesRaw, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return quote.Record{}, apperrors.NotFound("quote", fmt.Sprint(id))
	}
	if err != nil {
		return quote.Record{}, fmt.Errorf("load quote %d: %w", id, err)
	}

	rec.Title = title.String
	rec.Notes = notes.String
	rec.Service = services.ID(svc)
	if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
		return quote.Record{}, fmt.Errorf("decode quote inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(totals), &rec.Outputs); err != nil {
		return quote.Record{}, fmt.Errorf("decode quote totals: %w", err)
	}
	if err := json.Unmarshal([]byte(overridesRaw), &rec.Overrides); err != nil {
		return quote.Record{}, fmt.Errorf("decode quote overrides: %w", err)
	}
	if t, err := time.Parse(timeLayout, created); err == nil {
		rec.CreatedAt = t
	}
	return rec, nil
}

func parseTotal(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
