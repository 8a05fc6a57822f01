// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/migrations"
)

// DB wraps a database connection pool together with the error classifier of
// its engine.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	dialect            migrations.Dialect
	logger             *logger.Logger
}

// Migrate applies the migration set of the connection's engine.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}
