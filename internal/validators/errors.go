// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidContainer   = errors.New("invalid container name")
	ErrEmptyChanges       = errors.New("changes list cannot be empty")
	ErrInvalidChangeID    = errors.New("invalid change id")
	ErrDuplicateChangeID  = errors.New("duplicate change id")
	ErrInvalidModel       = errors.New("invalid model")
	ErrInvalidRecordID    = errors.New("invalid record id")
	ErrInvalidOp          = errors.New("invalid change operation")
	ErrInvalidBaseVersion = errors.New("invalid base version")
	ErrInvalidHash        = errors.New("invalid hash")
	ErrLengthMismatch     = errors.New("length does not match number of changes")
	ErrInvalidMergePolicy = errors.New("invalid merge policy")
	ErrInvalidCursor      = errors.New("invalid cursor")
)
