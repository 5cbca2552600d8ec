// Package seed writes the compiled-in pricing configs into the config store so
// admins have a document to edit.
package seed

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Simplici0/sanquote/internal/configstore"
	"github.com/Simplici0/sanquote/internal/services"
)

// Config selects seed behaviour.
type Config struct {
	// Reset overwrites stored documents with the defaults.
	Reset bool
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run seeds every service config in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	for _, def := range services.All() {
		if err := ensureServiceConfig(tx, def, cfg.Reset, &stats); err != nil {
			return Stats{}, multierr.Append(err, tx.Rollback())
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureServiceConfig(tx *sql.Tx, def *services.Definition, reset bool, stats *Stats) error {
	doc, err := configstore.DefaultDocument(def)
	if err != nil {
		return fmt.Errorf("render default %s config: %w", def.ID, err)
	}
	version := configstore.Fingerprint(doc)

	var stored string
	err = tx.QueryRow(`SELECT version FROM service_configs WHERE service = ?`, string(def.ID)).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`
			INSERT INTO service_configs (service, document, version)
			VALUES (?, ?, ?)
		`, string(def.ID), string(doc), version); err != nil {
			return fmt.Errorf("insert %s config: %w", def.ID, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check %s config existence: %w", def.ID, err)
	}

	if !reset || stored == version {
		return nil
	}
	if _, err := tx.Exec(`
		UPDATE service_configs
		SET document = ?, version = ?, updated_at = datetime('now')
		WHERE service = ?
	`, string(doc), version, string(def.ID)); err != nil {
		return fmt.Errorf("reset %s config: %w", def.ID, err)
	}
	stats.Updates++
	return nil
}
