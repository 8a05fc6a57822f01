// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/MKhiriev/go-sync-keeper/internal/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeUI struct {
	err    error
	ran    bool
	ctxErr error
}

func (u *fakeUI) Run(ctx context.Context) error {
	u.ran = true
	u.ctxErr = ctx.Err()
	return u.err
}

func TestNewApp_MissingDependencies(t *testing.T) {
	orch := mock.NewMockSyncOrchestrator(gomock.NewController(t))

	_, err := NewApp(nil, nil, &fakeUI{}, logger.Nop())
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewApp(orch, nil, nil, logger.Nop())
	assert.ErrorIs(t, err, ErrMissingDependency)

	app, err := NewApp(orch, nil, &fakeUI{}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, app.workers)
}

func TestApp_RunLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch := mock.NewMockSyncOrchestrator(ctrl)
	worker := mock.NewMockWorker(ctrl)

	ui := &fakeUI{}
	gomock.InOrder(
		worker.EXPECT().Start(gomock.Any()),
		worker.EXPECT().Stop().Do(func() {
			assert.True(t, ui.ran, "workers stop after the UI returns")
		}),
		orch.EXPECT().Close().Return(nil),
	)

	app, err := NewApp(orch, workers.NewWorkers(logger.Nop(), worker), ui, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, app.Run(context.Background()))
	assert.NoError(t, ui.ctxErr, "UI runs with a live context")
}

func TestApp_RunErrors(t *testing.T) {
	uiErr := errors.New("terminal gone")
	closeErr := errors.New("store busy")

	tests := []struct {
		name     string
		uiErr    error
		closeErr error
		want     []error
	}{
		{name: "clean exit"},
		{name: "ui failure", uiErr: uiErr, want: []error{uiErr}},
		{name: "close failure", closeErr: closeErr, want: []error{closeErr}},
		{name: "both fail", uiErr: uiErr, closeErr: closeErr, want: []error{uiErr, closeErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := mock.NewMockSyncOrchestrator(gomock.NewController(t))
			orch.EXPECT().Close().Return(tt.closeErr)

			app, err := NewApp(orch, nil, &fakeUI{err: tt.uiErr}, logger.Nop())
			require.NoError(t, err)

			err = app.Run(context.Background())
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
