// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
)

// Services groups the services of the remote container server.
type Services struct {
	ContainerService ContainerService
	AppInfoService   AppInfoService
}

// NewServices builds the server services. The container service is wrapped
// by the validation layer.
func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	containerService := NewContainerService(storages.ContainerRepository, logger)
	containerService = NewContainerValidationService().Wrap(containerService)

	logger.Info().Msg("services created")
	return &Services{
		ContainerService: containerService,
		AppInfoService:   appInfoService,
	}, nil
}
