// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
)

func TestLogNotifier_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(&logger.Logger{Logger: zerolog.New(&buf)})

	n.Notify("Changes synchronized")

	assert.Contains(t, buf.String(), `"notification":"Changes synchronized"`)
}

func TestMultiNotifier_FansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mock.NewMockNotifier(ctrl)
	second := mock.NewMockNotifier(ctrl)

	gomock.InOrder(
		first.EXPECT().Notify("hello"),
		second.EXPECT().Notify("hello"),
	)

	var got []string
	n := NewMultiNotifier(first, second, NotifierFunc(func(m string) { got = append(got, m) }))
	n.Notify("hello")

	assert.Equal(t, []string{"hello"}, got)
}
