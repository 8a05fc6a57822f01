// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// localStore is the SQLite-backed [StoreHandle]. Committed records live in
// the records table; staged changes are journaled in pending_changes and
// overlaid on reads until a commit pushes them to the remote container.
type localStore struct {
	db     *DB
	cfg    models.StoreConfiguration
	remote adapter.RemoteContainer
	lock   *flock.Flock
	ids    IDGenerator
	now    func() time.Time
	closed atomic.Bool

	logger *logger.Logger
}

// NewLocalOpener returns an [Opener] that opens the SQLite store at path and
// replicates it through remote.
func NewLocalOpener(path string, remote adapter.RemoteContainer, ids IDGenerator, log *logger.Logger) Opener {
	return func(ctx context.Context, cfg models.StoreConfiguration) (StoreHandle, error) {
		return OpenLocalStore(ctx, path, cfg, remote, ids, log)
	}
}

// OpenLocalStore takes an exclusive lock on "<path>.lock", opens (creating if
// needed) the SQLite database at path and applies pending migrations.
//
// Returns [ErrStoreLocked] when another process holds the lock and
// [ErrNoModels] when cfg lists no models.
func OpenLocalStore(ctx context.Context, path string, cfg models.StoreConfiguration, remote adapter.RemoteContainer, ids IDGenerator, log *logger.Logger) (StoreHandle, error) {
	if len(cfg.Models) == 0 {
		return nil, ErrNoModels
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create local store dir: %w", err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		log.Err(err).Str("func", "OpenLocalStore").Str("path", path).Msg("error acquiring store lock")
		return nil, fmt.Errorf("error acquiring store lock: %w", err)
	}
	if !locked {
		log.Error().Str("func", "OpenLocalStore").Str("path", path).Msg("store is locked by another process")
		return nil, ErrStoreLocked
	}

	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	log.Info().
		Str("func", "OpenLocalStore").
		Str("container", cfg.Container).
		Strs("models", cfg.Models).
		Str("sync_mode", cfg.SyncMode.String()).
		Msg("local store opened")

	return &localStore{
		db:     db,
		cfg:    cfg,
		remote: remote,
		lock:   lock,
		ids:    ids,
		now:    time.Now,
		logger: log,
	}, nil
}

// HasPendingChanges implements [StoreHandle].
func (s *localStore) HasPendingChanges(ctx context.Context) (bool, error) {
	count, err := s.PendingCount(ctx)
	return count > 0, err
}

// PendingCount implements [StoreHandle].
func (s *localStore) PendingCount(ctx context.Context) (int, error) {
	if s.closed.Load() {
		return 0, ErrStoreClosed
	}

	var count int
	if err := s.db.QueryRowContext(ctx, countPendingChanges).Scan(&count); err != nil {
		s.logger.Err(err).Str("func", "localStore.PendingCount").Msg("failed to count pending changes")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Commit implements [StoreHandle]. Changes staged while the push is in flight
// stay pending for the next commit.
func (s *localStore) Commit(ctx context.Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	changes, lastSeq, err := s.pendingChanges(ctx)
	if err != nil {
		return err
	}

	if len(changes) > 0 {
		pushed, pushErr := s.remote.Push(ctx, s.cfg.Container, s.cfg.MergePolicy, changes)
		if pushErr != nil {
			s.logger.Err(pushErr).
				Str("func", "localStore.Commit").
				Str("container", s.cfg.Container).
				Int("changes", len(changes)).
				Msg("failed to push pending changes")
			return fmt.Errorf("%w: %w", ErrPushingChanges, pushErr)
		}

		err = s.inTx(ctx, func(tx *sql.Tx) error {
			if err := upsertRecords(ctx, tx, pushed.Records); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, deletePendingChangesUpTo, lastSeq); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			return nil
		})
		if err != nil {
			s.logger.Err(err).Str("func", "localStore.Commit").Msg("failed to apply pushed records")
			return err
		}

		s.logger.Debug().
			Str("func", "localStore.Commit").
			Int("changes", len(changes)).
			Int("records", len(pushed.Records)).
			Msg("pending changes committed")
	}

	if s.cfg.SyncMode == models.SyncModeAutomatic {
		return s.pull(ctx)
	}

	return nil
}

func (s *localStore) pull(ctx context.Context) error {
	var cursor int64
	err := s.db.QueryRowContext(ctx, selectSyncCursor, s.cfg.Container).Scan(&cursor)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pulled, err := s.remote.Pull(ctx, s.cfg.Container, cursor)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil
		}
		s.logger.Err(err).
			Str("func", "localStore.pull").
			Str("container", s.cfg.Container).
			Int64("cursor", cursor).
			Msg("failed to pull remote changes")
		return fmt.Errorf("%w: %w", ErrPullingChanges, err)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := upsertRecords(ctx, tx, pulled.Records); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, upsertSyncCursor, s.cfg.Container, max(cursor, pulled.Cursor)); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

// DiscardChanges implements [StoreHandle].
func (s *localStore) DiscardChanges(ctx context.Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	res, err := s.db.ExecContext(ctx, deleteAllPendingChanges)
	if err != nil {
		s.logger.Err(err).Str("func", "localStore.DiscardChanges").Msg("failed to discard pending changes")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	discarded, _ := res.RowsAffected()
	s.logger.Info().Str("func", "localStore.DiscardChanges").Int64("discarded", discarded).Msg("pending changes discarded")

	return nil
}

// Destroy implements [StoreHandle].
func (s *localStore) Destroy(ctx context.Context) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	if err := s.remote.DeleteContainer(ctx, s.cfg.Container); err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			s.logger.Err(err).
				Str("func", "localStore.Destroy").
				Str("container", s.cfg.Container).
				Msg("failed to delete remote container")
			return fmt.Errorf("%w: %w", ErrDestroyingRemote, err)
		}
		s.logger.Info().Str("func", "localStore.Destroy").Str("container", s.cfg.Container).Msg("remote container was already absent")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range []string{deleteAllPendingChanges, deleteAllLocalRecords, deleteSyncState} {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

// Put implements [StoreHandle].
func (s *localStore) Put(ctx context.Context, model, id string, fields map[string]any) (models.Change, error) {
	if err := s.checkTarget(model, id); err != nil {
		return models.Change{}, err
	}

	var baseVersion int64
	err := s.db.QueryRowContext(ctx, selectLocalRecordVersion, model, id).Scan(&baseVersion)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Change{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	change := models.Change{
		ChangeID:    s.ids.Generate(),
		Model:       model,
		RecordID:    id,
		Op:          models.ChangeOpUpsert,
		Fields:      maps.Clone(fields),
		BaseVersion: baseVersion,
		CreatedAt:   s.now().UTC(),
	}

	return change, s.insertChange(ctx, change)
}

// Delete implements [StoreHandle].
func (s *localStore) Delete(ctx context.Context, model, id string) (models.Change, error) {
	if err := s.checkTarget(model, id); err != nil {
		return models.Change{}, err
	}

	current, err := s.Get(ctx, model, id)
	if err != nil {
		return models.Change{}, err
	}

	change := models.Change{
		ChangeID:    s.ids.Generate(),
		Model:       model,
		RecordID:    id,
		Op:          models.ChangeOpDelete,
		BaseVersion: current.Version,
		CreatedAt:   s.now().UTC(),
	}

	return change, s.insertChange(ctx, change)
}

// Get implements [StoreHandle].
func (s *localStore) Get(ctx context.Context, model, id string) (models.Record, error) {
	if err := s.checkTarget(model, id); err != nil {
		return models.Record{}, err
	}

	var base *models.Record
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectLocalRecord, model, id))
	switch {
	case err == nil:
		base = &rec
	case !errors.Is(err, sql.ErrNoRows):
		return models.Record{}, err
	}

	changes, err := s.queryChanges(ctx, selectPendingChangesForRecord, model, id)
	if err != nil {
		return models.Record{}, err
	}

	visible, ok := applyPending(models.RecordKey{Model: model, ID: id}, base, changes)
	if !ok {
		return models.Record{}, ErrRecordNotFound
	}

	return visible, nil
}

// List implements [StoreHandle].
func (s *localStore) List(ctx context.Context, model string) ([]models.Record, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	if !s.cfg.HasModel(model) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}

	rows, err := s.db.QueryContext(ctx, selectLocalRecordsByModel, model)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	bases := make(map[models.RecordKey]*models.Record)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		bases[rec.Key()] = &rec
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	changes, err := s.queryChanges(ctx, selectPendingChangesForModel, model)
	if err != nil {
		return nil, err
	}

	byKey := make(map[models.RecordKey][]models.Change)
	for _, ch := range changes {
		byKey[ch.Key()] = append(byKey[ch.Key()], ch)
	}

	keys := make(map[models.RecordKey]struct{}, len(bases)+len(byKey))
	for k := range bases {
		keys[k] = struct{}{}
	}
	for k := range byKey {
		keys[k] = struct{}{}
	}

	result := make([]models.Record, 0, len(keys))
	for k := range keys {
		if rec, ok := applyPending(k, bases[k], byKey[k]); ok {
			result = append(result, rec)
		}
	}
	slices.SortFunc(result, func(a, b models.Record) int {
		return strings.Compare(a.ID, b.ID)
	})

	return result, nil
}

// Close implements [StoreHandle].
func (s *localStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info().Str("func", "localStore.Close").Msg("closing local store")
	return errors.Join(s.db.Close(), s.lock.Unlock())
}

func (s *localStore) checkTarget(model, id string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}
	if !s.cfg.HasModel(model) {
		return fmt.Errorf("%w: %s", ErrUnknownModel, model)
	}
	if id == "" {
		return ErrEmptyRecordID
	}
	return nil
}

func (s *localStore) insertChange(ctx context.Context, change models.Change) error {
	payload, err := encodeFields(change.Fields)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, insertPendingChange,
		change.ChangeID,
		change.Model,
		change.RecordID,
		string(change.Op),
		payload,
		change.BaseVersion,
		change.CreatedAt,
	)
	if err != nil {
		s.logger.Err(err).
			Str("func", "localStore.insertChange").
			Str("model", change.Model).
			Str("record_id", change.RecordID).
			Msg("failed to stage change")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// pendingChanges returns every staged change in staging order together with
// the sequence number of the last one.
func (s *localStore) pendingChanges(ctx context.Context) ([]models.Change, int64, error) {
	rows, err := s.db.QueryContext(ctx, selectPendingChanges)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var (
		changes []models.Change
		lastSeq int64
	)
	for rows.Next() {
		ch, seq, scanErr := scanChange(rows)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		changes = append(changes, ch)
		lastSeq = seq
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, lastSeq, nil
}

func (s *localStore) queryChanges(ctx context.Context, query string, args ...any) ([]models.Change, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var changes []models.Change
	for rows.Next() {
		ch, _, scanErr := scanChange(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		changes = append(changes, ch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return changes, nil
}

func (s *localStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func upsertRecords(ctx context.Context, tx *sql.Tx, records []models.Record) error {
	for _, rec := range records {
		payload, err := encodeFields(rec.Fields)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, upsertLocalRecord,
			rec.Model,
			rec.ID,
			payload,
			rec.Version,
			rec.UpdatedAt.UTC(),
			rec.Deleted,
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return nil
}

// applyPending overlays staged changes, oldest first, on the committed record
// base (nil when the record was never committed). It reports whether the
// resulting record is visible, i.e. exists and is not deleted.
func applyPending(key models.RecordKey, base *models.Record, changes []models.Change) (models.Record, bool) {
	rec := models.Record{Model: key.Model, ID: key.ID}
	exists := false
	if base != nil {
		rec = *base
		rec.Fields = maps.Clone(base.Fields)
		exists = !base.Deleted
	}

	for _, ch := range changes {
		switch ch.Op {
		case models.ChangeOpUpsert:
			if !exists || rec.Fields == nil {
				rec.Fields = make(map[string]any, len(ch.Fields))
			}
			maps.Copy(rec.Fields, ch.Fields)
			rec.Deleted = false
			exists = true
		case models.ChangeOpDelete:
			rec.Deleted = true
			exists = false
		}
		rec.UpdatedAt = ch.CreatedAt
	}

	return rec, exists
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		rec     models.Record
		payload string
	)

	if err := row.Scan(&rec.Model, &rec.ID, &payload, &rec.Version, &rec.UpdatedAt, &rec.Deleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	fields, err := decodeFields(payload)
	if err != nil {
		return rec, err
	}
	rec.Fields = fields

	return rec, nil
}

func scanChange(row rowScanner) (models.Change, int64, error) {
	var (
		ch      models.Change
		seq     int64
		op      string
		payload string
	)

	err := row.Scan(&seq, &ch.ChangeID, &ch.Model, &ch.RecordID, &op, &payload, &ch.BaseVersion, &ch.CreatedAt)
	if err != nil {
		return ch, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	ch.Op = models.ChangeOp(op)

	fields, err := decodeFields(payload)
	if err != nil {
		return ch, 0, err
	}
	ch.Fields = fields

	return ch, seq, nil
}

func encodeFields(fields map[string]any) (string, error) {
	if len(fields) == 0 {
		return "{}", nil
	}

	payload, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	return string(payload), nil
}

func decodeFields(payload string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return fields, nil
}
