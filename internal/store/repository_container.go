// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const defaultApplyMaxTries = 3

// containerRepository is the PostgreSQL-backed implementation of
// [ContainerRepository]. Writes to one container are serialized by a row
// lock on the containers table; transactions that fail with a retryable
// PostgreSQL error (serialization failure, deadlock, lost connection) are
// replayed with exponential back-off.
type containerRepository struct {
	*DB
	newBackOff func() backoff.BackOff
	maxTries   uint
	logger     *logger.Logger
}

// NewContainerRepository constructs a [ContainerRepository] backed by the
// provided database connection and logger.
func NewContainerRepository(db *DB, logger *logger.Logger) ContainerRepository {
	return &containerRepository{
		DB: db,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 50 * time.Millisecond
			b.MaxInterval = time.Second
			return b
		},
		maxTries: defaultApplyMaxTries,
		logger:   logger,
	}
}

type applyResult struct {
	records []models.Record
	cursor  int64
}

// ApplyChanges implements [ContainerRepository]. merge may run more than once
// when the transaction is retried.
func (r *containerRepository) ApplyChanges(ctx context.Context, container string, keys []models.RecordKey, merge MergeFunc) ([]models.Record, int64, error) {
	log := logger.FromContext(ctx)

	attempt := 0
	res, err := backoff.Retry(ctx, func() (applyResult, error) {
		attempt++
		records, cursor, txErr := r.applyChangesTx(ctx, container, keys, merge)
		if txErr == nil {
			return applyResult{records: records, cursor: cursor}, nil
		}

		if r.errorClassificator.Classify(txErr) == Retryable {
			log.Warn().Err(txErr).
				Str("func", "containerRepository.ApplyChanges").
				Str("container", container).
				Int("attempt", attempt).
				Msg("retryable database error, retrying")
			return applyResult{}, txErr
		}

		return applyResult{}, backoff.Permanent(txErr)
	}, backoff.WithBackOff(r.newBackOff()), backoff.WithMaxTries(r.maxTries))
	if err != nil {
		log.Err(err).
			Str("func", "containerRepository.ApplyChanges").
			Str("container", container).
			Int("keys", len(keys)).
			Msg("failed to apply changes")
		return nil, 0, err
	}

	return res.records, res.cursor, nil
}

func (r *containerRepository) applyChangesTx(ctx context.Context, container string, keys []models.RecordKey, merge MergeFunc) (_ []models.Record, _ int64, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, ensureContainer, container); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var locked string
	if err = tx.QueryRowContext(ctx, lockContainer, container).Scan(&locked); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	existing := make(map[models.RecordKey]models.Record, len(keys))
	if len(keys) > 0 {
		existing, err = selectRecordsForUpdate(ctx, tx, container, keys)
		if err != nil {
			return nil, 0, err
		}
	}

	toWrite, err := merge(existing)
	if err != nil {
		return nil, 0, err
	}

	var cursor int64
	for _, rec := range toWrite {
		payload, encErr := encodeFields(rec.Fields)
		if encErr != nil {
			return nil, 0, encErr
		}

		query, args, buildErr := buildUpsertRecordQuery(container, rec, payload)
		if buildErr != nil {
			return nil, 0, buildErr
		}

		var seq int64
		if err = tx.QueryRowContext(ctx, query, args...).Scan(&seq); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		cursor = max(cursor, seq)
	}

	if err = tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return toWrite, cursor, nil
}

func selectRecordsForUpdate(ctx context.Context, tx *sql.Tx, container string, keys []models.RecordKey) (map[models.RecordKey]models.Record, error) {
	query, args, err := buildSelectRecordsForUpdateQuery(container, keys)
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	existing := make(map[models.RecordKey]models.Record, len(keys))
	for rows.Next() {
		rec, _, scanErr := scanContainerRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		existing[rec.Key()] = rec
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return existing, nil
}

// GetChangedSince implements [ContainerRepository].
func (r *containerRepository) GetChangedSince(ctx context.Context, container string, since int64) ([]models.Record, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectChangedSinceQuery(container, since)
	if err != nil {
		log.Err(err).Str("func", "containerRepository.GetChangedSince").Msg("failed to create query")
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "containerRepository.GetChangedSince").
			Str("container", container).
			Int64("since", since).
			Msg("failed to execute query for changed records")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)
	cursor := since
	for rows.Next() {
		rec, seq, scanErr := scanContainerRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "containerRepository.GetChangedSince").Msg("failed to scan record row")
			return nil, 0, scanErr
		}
		records = append(records, rec)
		cursor = max(cursor, seq)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "containerRepository.GetChangedSince").Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, cursor, nil
}

// DeleteContainer implements [ContainerRepository].
func (r *containerRepository) DeleteContainer(ctx context.Context, container string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteContainerQuery(container)
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "containerRepository.DeleteContainer").
			Str("container", container).
			Msg("failed to delete container")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrContainerNotFound
	}

	log.Info().Str("func", "containerRepository.DeleteContainer").Str("container", container).Msg("container deleted")
	return nil
}

func scanContainerRecord(row rowScanner) (models.Record, int64, error) {
	var (
		rec     models.Record
		payload string
		seq     int64
	)

	if err := row.Scan(&rec.Model, &rec.ID, &payload, &rec.Version, &seq, &rec.UpdatedAt, &rec.Deleted); err != nil {
		return rec, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return rec, 0, err
	}
	rec.Fields = fields

	return rec, seq, nil
}
