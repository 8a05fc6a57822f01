// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldContainer targets the container identifier of a push.
	FieldContainer = "container"

	// FieldChanges targets the change list of a push; every change is
	// validated with its default field set.
	FieldChanges = "changes"

	// FieldHash targets the integrity hash of a push.
	FieldHash = "hash"

	// FieldLength targets the declared number of changes of a push.
	FieldLength = "length"

	// FieldMergePolicy targets the merge policy of a push.
	FieldMergePolicy = "merge_policy"

	// FieldChangeID targets the unique identifier of a change.
	FieldChangeID = "change_id"

	// FieldModel targets the model a change belongs to.
	FieldModel = "model"

	// FieldRecordID targets the identifier of the record a change modifies.
	FieldRecordID = "record_id"

	// FieldOp targets the operation of a change (upsert or delete).
	FieldOp = "op"

	// FieldBaseVersion targets the committed version a change was staged on.
	FieldBaseVersion = "base_version"
)

var containerNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ChangeSetValidator validates change sets pushed to a remote container.
// It is stateless and safe for concurrent use.
type ChangeSetValidator struct{}

// NewChangeSetValidator constructs a [ChangeSetValidator] and returns it as a
// [Validator].
func NewChangeSetValidator() Validator {
	return &ChangeSetValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.PushRequest / *models.PushRequest
//   - models.Change / *models.Change
//
// Returns ErrUnsupportedType if obj does not match any known model.
func (v *ChangeSetValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	case models.Change:
		return v.validateChange(ctx, value, fields...)
	case *models.Change:
		return v.validateChange(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// ValidateContainer reports whether name is usable as a container identifier:
// 1 to 128 characters from [A-Za-z0-9._-], not starting with a punctuation
// character.
func ValidateContainer(name string) error {
	if !containerNamePattern.MatchString(name) {
		return ErrInvalidContainer
	}
	return nil
}

// ValidateCursor rejects negative pull cursors.
func ValidateCursor(since int64) error {
	if since < 0 {
		return ErrInvalidCursor
	}
	return nil
}

// validatePushRequest validates a change set pushed to a container.
//
// Default validated fields: Container, Changes, Hash, Length, MergePolicy.
//
// When FieldChanges is validated, each change is checked individually and
// change identifiers must be unique within the request.
func (v *ChangeSetValidator) validatePushRequest(ctx context.Context, request models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldContainer, FieldChanges, FieldHash, FieldLength, FieldMergePolicy}
	}

	for _, f := range fields {
		switch f {
		case FieldContainer:
			if err := ValidateContainer(request.Container); err != nil {
				return err
			}
		case FieldChanges:
			if len(request.Changes) == 0 {
				return ErrEmptyChanges
			}
			seen := make(map[string]struct{}, len(request.Changes))
			for i, change := range request.Changes {
				if err := v.validateChange(ctx, change); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
				if _, dup := seen[change.ChangeID]; dup {
					return fmt.Errorf("validation error at index %d: %w", i, ErrDuplicateChangeID)
				}
				seen[change.ChangeID] = struct{}{}
			}
		case FieldHash:
			if request.Hash == "" {
				return ErrInvalidHash
			}
		case FieldLength:
			if request.Length != len(request.Changes) {
				return ErrLengthMismatch
			}
		case FieldMergePolicy:
			if request.MergePolicy != models.MergePolicyLocalWins && request.MergePolicy != models.MergePolicyRemoteWins {
				return ErrInvalidMergePolicy
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateChange validates a single staged change.
//
// Default validated fields: ChangeID, Model, RecordID, Op, BaseVersion.
func (v *ChangeSetValidator) validateChange(ctx context.Context, change models.Change, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldChangeID, FieldModel, FieldRecordID, FieldOp, FieldBaseVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldChangeID:
			if change.ChangeID == "" {
				return ErrInvalidChangeID
			}
		case FieldModel:
			if change.Model == "" {
				return ErrInvalidModel
			}
		case FieldRecordID:
			if change.RecordID == "" {
				return ErrInvalidRecordID
			}
		case FieldOp:
			if change.Op != models.ChangeOpUpsert && change.Op != models.ChangeOpDelete {
				return ErrInvalidOp
			}
		case FieldBaseVersion:
			if change.BaseVersion < 0 {
				return ErrInvalidBaseVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
