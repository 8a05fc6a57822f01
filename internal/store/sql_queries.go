// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	ensureContainer = `INSERT INTO containers (container_id) VALUES ($1) ON CONFLICT (container_id) DO NOTHING;`

	lockContainer = `SELECT container_id FROM containers WHERE container_id = $1 FOR UPDATE;`

	containerRecordsTable = "container_records"
)

var containerRecordColumns = []string{
	"model",
	"record_id",
	"payload",
	"version",
	"seq",
	"updated_at",
	"deleted",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildSelectRecordsForUpdateQuery selects and row-locks the records of
// container identified by keys.
func buildSelectRecordsForUpdateQuery(container string, keys []models.RecordKey) (string, []any, error) {
	byKey := make(sq.Or, 0, len(keys))
	for _, k := range keys {
		byKey = append(byKey, sq.Eq{"model": k.Model, "record_id": k.ID})
	}

	query, args, err := psql.
		Select(containerRecordColumns...).
		From(containerRecordsTable).
		Where(sq.Eq{"container_id": container}).
		Where(byKey).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectChangedSinceQuery selects the records of container written after
// cursor since, oldest write first.
func buildSelectChangedSinceQuery(container string, since int64) (string, []any, error) {
	query, args, err := psql.
		Select(containerRecordColumns...).
		From(containerRecordsTable).
		Where(sq.Eq{"container_id": container}).
		Where(sq.Gt{"seq": since}).
		OrderBy("seq").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpsertRecordQuery writes rec and returns the sequence number it was
// stamped with. Every write draws a fresh number, so the sequence doubles as
// the pull cursor.
func buildUpsertRecordQuery(container string, rec models.Record, payload string) (string, []any, error) {
	query, args, err := psql.
		Insert(containerRecordsTable).
		Columns("container_id", "model", "record_id", "payload", "version", "updated_at", "deleted").
		Values(container, rec.Model, rec.ID, payload, rec.Version, rec.UpdatedAt.UTC().Truncate(time.Microsecond), rec.Deleted).
		Suffix(`ON CONFLICT (container_id, model, record_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			version = EXCLUDED.version,
			seq = nextval('container_records_seq'),
			updated_at = EXCLUDED.updated_at,
			deleted = EXCLUDED.deleted
		RETURNING seq`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteContainerQuery removes container; its records go with it via
// ON DELETE CASCADE.
func buildDeleteContainerQuery(container string) (string, []any, error) {
	query, args, err := psql.
		Delete("containers").
		Where(sq.Eq{"container_id": container}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
