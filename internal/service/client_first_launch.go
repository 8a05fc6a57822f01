// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
)

// HasLaunchedBeforeFlag is the flag store key of the first-launch marker.
const HasLaunchedBeforeFlag = "hasLaunchedBefore"

// FirstLaunchState is derived from the first-launch marker on every call.
type FirstLaunchState int

const (
	NeverLaunched FirstLaunchState = iota
	Launched
)

func (s FirstLaunchState) String() string {
	if s == Launched {
		return "Launched"
	}
	return "NeverLaunched"
}

// FirstLaunchController deletes remote data once per installation. It is the
// only reader and writer of [HasLaunchedBeforeFlag].
type FirstLaunchController struct {
	flags        store.FlagStore
	deleteRemote func(ctx context.Context) error

	logger *logger.Logger
}

// NewFirstLaunchController returns a controller that runs deleteRemote on the
// first launch.
func NewFirstLaunchController(flags store.FlagStore, deleteRemote func(ctx context.Context) error, logger *logger.Logger) *FirstLaunchController {
	return &FirstLaunchController{
		flags:        flags,
		deleteRemote: deleteRemote,
		logger:       logger,
	}
}

// State reads the marker.
func (c *FirstLaunchController) State() (FirstLaunchState, error) {
	launched, err := c.flags.GetFlag(HasLaunchedBeforeFlag)
	if err != nil {
		return NeverLaunched, err
	}
	if launched {
		return Launched, nil
	}
	return NeverLaunched, nil
}

// HandleFirstLaunch deletes remote data and sets the marker when it is unset.
// A failed deletion leaves the marker unset so the next launch retries.
func (c *FirstLaunchController) HandleFirstLaunch(ctx context.Context) error {
	state, err := c.State()
	if err != nil {
		c.logger.Err(err).Str("func", "FirstLaunchController.HandleFirstLaunch").Msg("failed to read launch flag")
		return err
	}
	if state == Launched {
		c.logger.Debug().Str("func", "FirstLaunchController.HandleFirstLaunch").Msg("not a first launch")
		return nil
	}

	c.logger.Info().Str("func", "FirstLaunchController.HandleFirstLaunch").Msg("first launch, deleting remote data")
	if err = c.deleteRemote(ctx); err != nil {
		c.logger.Err(err).Str("func", "FirstLaunchController.HandleFirstLaunch").Msg("first launch deletion failed")
		return fmt.Errorf("%w: %w", ErrDeletion, err)
	}

	if err = c.flags.SetFlag(HasLaunchedBeforeFlag, true); err != nil {
		c.logger.Err(err).Str("func", "FirstLaunchController.HandleFirstLaunch").Msg("failed to set launch flag")
		return err
	}

	return nil
}

// ConfigureForAutomaticDeletion clears the marker so the next
// HandleFirstLaunch deletes remote data. It deletes nothing itself.
func (c *FirstLaunchController) ConfigureForAutomaticDeletion(_ context.Context) error {
	if err := c.flags.SetFlag(HasLaunchedBeforeFlag, false); err != nil {
		c.logger.Err(err).Str("func", "FirstLaunchController.ConfigureForAutomaticDeletion").Msg("failed to clear launch flag")
		return err
	}

	c.logger.Info().Str("func", "FirstLaunchController.ConfigureForAutomaticDeletion").Msg("automatic deletion armed for next launch")
	return nil
}
