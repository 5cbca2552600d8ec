package quote

import (
	"context"
	"time"

	apperrors "github.com/Simplici0/sanquote/internal/errors"
	"github.com/Simplici0/sanquote/internal/services"
)

// Record is an accepted quote as handed to the archive and to document
// generation. Outputs carries the exposed values, overrides included.
type Record struct {
	ID            int64                      `json:"id,omitempty"`
	Ref           string                     `json:"ref"`
	Title         string                     `json:"title"`
	Notes         string                     `json:"notes,omitempty"`
	Service       services.ID                `json:"service"`
	Inputs        services.Inputs            `json:"inputs"`
	Outputs       services.Outputs           `json:"outputs"`
	Overrides     map[services.Field]float64 `json:"overrides,omitempty"`
	ConfigVersion string                     `json:"configVersion"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

// Archiver persists accepted quotes.
type Archiver interface {
	Save(ctx context.Context, r Record) (int64, error)
}

// Record turns a snapshot into an archive record.
func (s Snapshot) Record() Record {
	title := s.Title
	if title == "" {
		title = string(s.Service)
	}
	return Record{
		Ref:           s.ID,
		Title:         title,
		Notes:         s.Inputs.Notes,
		Service:       s.Service,
		Inputs:        s.Inputs,
		Outputs:       s.Exposed,
		Overrides:     s.Overrides,
		ConfigVersion: s.ConfigVersion,
		CreatedAt:     time.Now().UTC(),
	}
}

// Accept archives the current exposed quote.
func (s *Session) Accept(ctx context.Context, a Archiver) (Record, error) {
	if a == nil {
		return Record{}, apperrors.New(apperrors.TypeUnavailable, "no quote archive configured")
	}
	rec := s.Snapshot().Record()
	id, err := a.Save(ctx, rec)
	if err != nil {
		return Record{}, apperrors.Internal("archive quote", err)
	}
	rec.ID = id
	return rec, nil
}
