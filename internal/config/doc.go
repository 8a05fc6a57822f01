// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the client and server binaries.
//
// Configuration is assembled from multiple sources. A field set by an
// earlier source wins over the same field from a later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the sync client and
// [GetServerConfig] for the container server.
package config
