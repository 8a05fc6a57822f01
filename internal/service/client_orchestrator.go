// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/workers"
	"github.com/MKhiriev/go-sync-keeper/models"
)

// OrchestratorDeps are the collaborators of the orchestrator.
type OrchestratorDeps struct {
	// Opener opens the store described by the configuration. Required.
	Opener store.Opener
	// Flags persists the first-launch marker. Required.
	Flags store.FlagStore
	// Monitor delivers connectivity transitions. Required.
	Monitor workers.ConnectivityMonitor
	// Notifier receives user-facing outcome messages. Defaults to a
	// log-backed notifier.
	Notifier Notifier
	// Now is the clock of the status tracker. Defaults to time.Now.
	Now func() time.Time
}

// Orchestrator coordinates the local store with its remote container.
//
// At most one save runs at a time: a save that finds another one in flight
// returns immediately. Commits, discards and destroys are totally ordered by
// storeMu. Status is guarded by statusMu and only ever reflects completed
// attempts.
type Orchestrator struct {
	cfg    models.StoreConfiguration
	handle store.StoreHandle

	saveInFlight atomic.Bool
	storeMu      sync.Mutex

	statusMu       sync.RWMutex
	tracker        *SyncStatusTracker
	reachable      bool
	reachableKnown bool

	resolver    *ConflictResolver
	firstLaunch *FirstLaunchController
	notifier    Notifier

	// baseCtx scopes saves triggered by connectivity events.
	baseCtx     context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	closed      atomic.Bool
	closeOnce   sync.Once
	closeErr    error

	logger *logger.Logger
}

var _ SyncOrchestrator = (*Orchestrator)(nil)

// NewOrchestrator opens the store described by cfg and subscribes to
// connectivity transitions. Any failure is wrapped in [ErrConfiguration].
func NewOrchestrator(ctx context.Context, cfg models.StoreConfiguration, deps OrchestratorDeps, log *logger.Logger) (*Orchestrator, error) {
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("%w: store configuration lists no models", ErrConfiguration)
	}
	if deps.Opener == nil || deps.Flags == nil || deps.Monitor == nil {
		return nil, fmt.Errorf("%w: opener, flag store and connectivity monitor are required", ErrConfiguration)
	}

	log = log.WithComponent("orchestrator")

	handle, err := deps.Opener(ctx, cfg)
	if err != nil {
		log.Err(err).Str("func", "NewOrchestrator").Str("container", cfg.Container).Msg("failed to open store")
		return nil, fmt.Errorf("%w: open store: %w", ErrConfiguration, err)
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}

	baseCtx, cancel := context.WithCancel(log.WithContext(context.Background()))

	o := &Orchestrator{
		cfg:      cfg,
		handle:   handle,
		tracker:  NewSyncStatusTracker(deps.Now),
		notifier: notifier,
		baseCtx:  baseCtx,
		cancel:   cancel,
		logger:   log,
	}
	o.resolver = NewConflictResolver(o.Save, log)
	o.firstLaunch = NewFirstLaunchController(deps.Flags, o.destroy, log)
	o.unsubscribe = deps.Monitor.Subscribe(o.onConnectivityChange)

	log.Info().
		Str("func", "NewOrchestrator").
		Str("container", cfg.Container).
		Str("sync_mode", cfg.SyncMode.String()).
		Msg("orchestrator started")

	return o, nil
}

// Save commits pending changes. It returns nil without committing when a
// save is already in flight or nothing is pending. A failed commit marks the
// status SyncFailed and is returned wrapped in [ErrCommit].
func (o *Orchestrator) Save(ctx context.Context) error {
	if o.closed.Load() {
		return ErrOrchestratorClosed
	}

	if !o.saveInFlight.CompareAndSwap(false, true) {
		o.logger.Debug().Str("func", "Orchestrator.Save").Msg("save already in flight, coalesced")
		return nil
	}
	defer o.saveInFlight.Store(false)

	o.storeMu.Lock()
	defer o.storeMu.Unlock()

	pending, err := o.handle.HasPendingChanges(ctx)
	if err != nil {
		return o.commitFailed(err)
	}
	if !pending {
		o.logger.Debug().Str("func", "Orchestrator.Save").Msg("nothing to save")
		return nil
	}

	if err = o.handle.Commit(ctx); err != nil {
		return o.commitFailed(err)
	}

	o.recordAttempt(true)
	o.logger.Info().Str("func", "Orchestrator.Save").Msg("changes saved")
	o.notifier.Notify("Changes synchronized")

	return nil
}

func (o *Orchestrator) commitFailed(err error) error {
	o.recordAttempt(false)
	o.logger.Err(err).Str("func", "Orchestrator.Save").Msg("save failed")
	o.notifier.Notify(fmt.Sprintf("Sync failed: %v", err))

	return fmt.Errorf("%w: %w", ErrCommit, err)
}

func (o *Orchestrator) recordAttempt(success bool) {
	o.statusMu.Lock()
	defer o.statusMu.Unlock()

	o.tracker.RecordAttempt(success)
}

// ResolveConflict keeps local changes by saving them, or discards them when
// preferLocal is false.
func (o *Orchestrator) ResolveConflict(ctx context.Context, preferLocal bool) error {
	if o.closed.Load() {
		return ErrOrchestratorClosed
	}

	if !preferLocal {
		o.storeMu.Lock()
		defer o.storeMu.Unlock()
	}

	return o.resolver.Resolve(ctx, preferLocal, o.handle)
}

// DeleteRemoteData destroys the remote container and empties the local store.
// An absent container counts as success. The store stays open.
func (o *Orchestrator) DeleteRemoteData(ctx context.Context) error {
	if o.closed.Load() {
		return ErrOrchestratorClosed
	}

	if err := o.destroy(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrDeletion, err)
	}
	return nil
}

func (o *Orchestrator) destroy(ctx context.Context) error {
	o.storeMu.Lock()
	defer o.storeMu.Unlock()

	if err := o.handle.Destroy(ctx); err != nil {
		o.logger.Err(err).Str("func", "Orchestrator.destroy").Str("container", o.cfg.Container).Msg("failed to delete remote data")
		o.notifier.Notify(fmt.Sprintf("Deleting remote data failed: %v", err))
		return err
	}

	o.logger.Info().Str("func", "Orchestrator.destroy").Str("container", o.cfg.Container).Msg("remote data deleted")
	o.notifier.Notify("Remote data deleted")
	return nil
}

// HandleFirstLaunch deletes remote data if this is the first launch of the
// installation.
func (o *Orchestrator) HandleFirstLaunch(ctx context.Context) error {
	if o.closed.Load() {
		return ErrOrchestratorClosed
	}
	return o.firstLaunch.HandleFirstLaunch(ctx)
}

// ConfigureForAutomaticDeletion arms the next HandleFirstLaunch.
func (o *Orchestrator) ConfigureForAutomaticDeletion(ctx context.Context) error {
	if o.closed.Load() {
		return ErrOrchestratorClosed
	}
	return o.firstLaunch.ConfigureForAutomaticDeletion(ctx)
}

// Status returns a snapshot of the last completed attempt and the last known
// reachability. Pending is left for the caller to fill from the store.
func (o *Orchestrator) Status() models.StatusReport {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()

	status, last, hasLast := o.tracker.Current()
	return models.StatusReport{
		Status:      status,
		LastSync:    last,
		HasLastSync: hasLast,
		Reachable:   o.reachable,
	}
}

// Store returns the open store handle.
func (o *Orchestrator) Store() store.StoreHandle {
	return o.handle
}

// Close cancels the connectivity subscription, waits for a running commit
// and closes the store. It is idempotent.
func (o *Orchestrator) Close() error {
	o.closeOnce.Do(func() {
		o.closed.Store(true)
		o.unsubscribe()
		o.cancel()

		o.storeMu.Lock()
		defer o.storeMu.Unlock()

		o.closeErr = o.handle.Close()
		o.logger.Info().Str("func", "Orchestrator.Close").Msg("orchestrator closed")
	})
	return o.closeErr
}

// onConnectivityChange runs on the monitor's delivery goroutine. Only a
// transition into reachable triggers a save; its error is reported through
// the status and the notifier.
func (o *Orchestrator) onConnectivityChange(reachable bool) {
	o.statusMu.Lock()
	wasReachable := o.reachableKnown && o.reachable
	o.reachable = reachable
	o.reachableKnown = true
	o.statusMu.Unlock()

	if !reachable {
		o.logger.Warn().Str("func", "Orchestrator.onConnectivityChange").Msg("remote container unreachable")
		return
	}
	if wasReachable {
		return
	}

	o.logger.Info().Str("func", "Orchestrator.onConnectivityChange").Msg("remote container reachable, saving")
	if err := o.Save(o.baseCtx); err != nil && !errors.Is(err, ErrOrchestratorClosed) {
		o.logger.Err(err).Str("func", "Orchestrator.onConnectivityChange").Msg("connectivity-triggered save failed")
	}
}
