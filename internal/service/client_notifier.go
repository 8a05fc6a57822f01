// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier returns a [Notifier] that writes messages to the log.
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(message string) {
	n.logger.Info().Str("func", "logNotifier.Notify").Str("notification", message).Msg("notification")
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) {
	f(message)
}

type multiNotifier []Notifier

// NewMultiNotifier fans each message out to every notifier in order.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}
