// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestContainerCtxKey(t *testing.T) {
	if ContainerCtxKey.String() != "container" {
		t.Errorf("expected 'container', got '%s'", ContainerCtxKey.String())
	}
}

func TestGetContainerFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContainerCtxKey, "box-1")

	container, ok := GetContainerFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if container != "box-1" {
		t.Errorf("expected 'box-1', got '%s'", container)
	}
}

func TestGetContainerFromContext_Missing(t *testing.T) {
	container, ok := GetContainerFromContext(context.Background())

	if ok {
		t.Error("expected ok=false for missing key")
	}
	if container != "" {
		t.Errorf("expected empty container, got '%s'", container)
	}
}

func TestGetContainerFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContainerCtxKey, 42)

	_, ok := GetContainerFromContext(ctx)

	if ok {
		t.Error("expected ok=false for wrong type")
	}
}

func TestGetContainerFromContext_Empty(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContainerCtxKey, "")

	_, ok := GetContainerFromContext(ctx)

	if ok {
		t.Error("expected ok=false for empty container")
	}
}

func TestGetContainerFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("other"), "box-1")

	_, ok := GetContainerFromContext(ctx)

	if ok {
		t.Error("expected ok=false when value is stored under a different key")
	}
}
