// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks requests received by the remote container server
// before they reach the merge service.
//
// A Validator accepts any supported value and an optional list of field
// names. Without field names the type's default field set is checked; with
// them, only the named fields are. The first violation is returned as one of
// the sentinel errors of this package, so transport layers can map it to a
// status code with errors.Is.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts
	// validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
