// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/dsdgdxxx/grok2api/internal/config"
	"github.com/dsdgdxxx/grok2api/internal/logger"
)

// ConfigDB persists the settings document in SQLite, one row per
// section/key pair with the scalar value JSON-encoded. It implements
// [config.Backend].
type ConfigDB struct {
	db     *sql.DB
	logger *logger.Logger
}

const schemaConfigEntries = `
CREATE TABLE IF NOT EXISTS config_entries (
	section TEXT NOT NULL,
	key     TEXT NOT NULL,
	value   TEXT NOT NULL,
	PRIMARY KEY (section, key)
)`

// NewConfigDB opens (or creates) the SQLite database at dsn and ensures the
// config_entries table exists.
func NewConfigDB(ctx context.Context, dsn string, log *logger.Logger) (*ConfigDB, error) {
	// establish connection
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConfigDB").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// sqlite handles one writer at a time; a single pooled connection also
	// keeps :memory: databases from silently splitting per connection
	conn.SetMaxOpenConns(1)

	// ping database
	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConfigDB").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, schemaConfigEntries); err != nil {
		return nil, fmt.Errorf("error creating config_entries table: %w", err)
	}
	log.Info().Str("func", "NewConfigDB").Msg("connected to database successfully")

	return &ConfigDB{
		db:     conn,
		logger: log,
	}, nil
}

// Close releases the underlying connection pool.
func (s *ConfigDB) Close() error {
	return s.db.Close()
}

// LoadConfig reconstructs the full settings document from the
// config_entries table. An empty table yields an empty document.
func (s *ConfigDB) LoadConfig(ctx context.Context) (config.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT section, key, value FROM config_entries`)
	if err != nil {
		return nil, errors.Join(ErrExecutingQuery, err)
	}
	defer rows.Close()

	doc := config.Document{}
	for rows.Next() {
		var section, key, raw string
		if err := rows.Scan(&section, &key, &raw); err != nil {
			return nil, errors.Join(ErrScanningRow, err)
		}

		value, err := decodeValue(raw)
		if err != nil {
			return nil, err
		}

		if doc[section] == nil {
			doc[section] = make(map[string]any)
		}
		doc[section][key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrScanningRow, err)
	}

	return doc, nil
}

// SaveConfig replaces the stored document inside one transaction, so a
// failed save never leaves a partially written document behind.
func (s *ConfigDB) SaveConfig(ctx context.Context, doc config.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Join(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM config_entries`); err != nil {
		return errors.Join(ErrExecutingStatement, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO config_entries (section, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return errors.Join(ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for section, values := range doc {
		for key, value := range values {
			raw, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("error encoding %s.%s: %w", section, key, err)
			}
			if _, err := stmt.ExecContext(ctx, section, key, string(raw)); err != nil {
				return errors.Join(ErrExecutingStatement, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Join(ErrCommitingTransaction, err)
	}
	return nil
}

// decodeValue restores a stored scalar with its original type: integers
// come back as int64, not float64, so the document round-trips without
// type drift.
func decodeValue(raw string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("error decoding stored value %q: %w", raw, err)
	}

	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("error decoding stored number %q: %w", raw, err)
		}
		return f, nil
	}
	return v, nil
}
