// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the variables named by the `env` and `envPrefix`
// tags. STORE_MODELS entries are trimmed and empty entries dropped, so
// "note, task," yields two models.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}

	cfg.Store.Models = normalizeModels(cfg.Store.Models)
	return nil
}

func normalizeModels(models []string) []string {
	if models == nil {
		return nil
	}

	out := make([]string, 0, len(models))
	for _, m := range models {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
