// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

// ContainerServiceWrapper defines middleware composition for ContainerService.
// Implementations wrap an existing ContainerService to add behavior such as
// logging or validating.
type ContainerServiceWrapper interface {
	Wrap(ContainerService) ContainerService // returns a decorated ContainerService applying additional behavior
}
