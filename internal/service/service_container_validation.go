// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/validators"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// ContainerValidationService rejects malformed requests before they reach
// the wrapped [ContainerService]. Every rejection wraps
// [ErrInvalidDataProvided].
type ContainerValidationService struct {
	inner     ContainerService
	validator validators.Validator
}

func NewContainerValidationService() ContainerServiceWrapper {
	return &ContainerValidationService{
		validator: validators.NewChangeSetValidator(),
	}
}

func (v *ContainerValidationService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Push(ctx, req)
}

func (v *ContainerValidationService) Pull(ctx context.Context, container string, since int64) (models.PullResponse, error) {
	if err := validators.ValidateContainer(container); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := validators.ValidateCursor(since); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.Pull(ctx, container, since)
}

func (v *ContainerValidationService) DeleteContainer(ctx context.Context, container string) error {
	if err := validators.ValidateContainer(container); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteContainer(ctx, container)
}

func (v *ContainerValidationService) Wrap(inner ContainerService) ContainerService {
	v.inner = inner
	return v
}
