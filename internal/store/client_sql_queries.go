// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	selectLocalRecord = `
		SELECT model, record_id, payload, version, updated_at, deleted
		FROM records
		WHERE model = ? AND record_id = ?;`

	selectLocalRecordsByModel = `
		SELECT model, record_id, payload, version, updated_at, deleted
		FROM records
		WHERE model = ?
		ORDER BY record_id;`

	selectLocalRecordVersion = `
		SELECT version
		FROM records
		WHERE model = ? AND record_id = ?;`

	upsertLocalRecord = `
		INSERT INTO records (model, record_id, payload, version, updated_at, deleted)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (model, record_id) DO UPDATE SET
			payload = excluded.payload,
			version = excluded.version,
			updated_at = excluded.updated_at,
			deleted = excluded.deleted
		WHERE excluded.version >= records.version;`

	deleteAllLocalRecords = `DELETE FROM records;`

	selectPendingChanges = `
		SELECT seq, change_id, model, record_id, op, payload, base_version, created_at
		FROM pending_changes
		ORDER BY seq;`

	selectPendingChangesForRecord = `
		SELECT seq, change_id, model, record_id, op, payload, base_version, created_at
		FROM pending_changes
		WHERE model = ? AND record_id = ?
		ORDER BY seq;`

	selectPendingChangesForModel = `
		SELECT seq, change_id, model, record_id, op, payload, base_version, created_at
		FROM pending_changes
		WHERE model = ?
		ORDER BY seq;`

	countPendingChanges = `SELECT COUNT(*) FROM pending_changes;`

	insertPendingChange = `
		INSERT INTO pending_changes (change_id, model, record_id, op, payload, base_version, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);`

	deletePendingChangesUpTo = `DELETE FROM pending_changes WHERE seq <= ?;`

	deleteAllPendingChanges = `DELETE FROM pending_changes;`

	selectSyncCursor = `SELECT cursor FROM sync_state WHERE container = ?;`

	upsertSyncCursor = `
		INSERT INTO sync_state (container, cursor)
		VALUES (?, ?)
		ON CONFLICT (container) DO UPDATE SET cursor = excluded.cursor;`

	deleteSyncState = `DELETE FROM sync_state;`
)
