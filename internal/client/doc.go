// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It ties the status console, the synchronization orchestrator and the
// background workers into a single process lifecycle.
package client
