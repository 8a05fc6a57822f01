// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	pingPath      = "/api/ping"
	changesPath   = "/api/containers/{container}/changes"
	containerPath = "/api/containers/{container}"
)

type httpRemoteContainer struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPRemoteContainer constructs an HTTP/REST implementation of
// [RemoteContainer]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress, configures the underlying HTTP client with the
// resolved base URL and request timeout, and initialises the shared HMAC
// hasher pool used for transport integrity hashes.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPRemoteContainer(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteContainer, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	utils.InitHasherPool(appCfg.HashKey)

	return &httpRemoteContainer{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Ping implements [RemoteContainer]. It GETs /api/ping and treats any 2xx
// answer as reachable.
func (h *httpRemoteContainer) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(pingPath)
	if err != nil {
		return fmt.Errorf("%w: ping request: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp)
}

// Push implements [RemoteContainer]. It computes a transport integrity hash
// over changes and POSTs the change set to
// POST /api/containers/{container}/changes.
func (h *httpRemoteContainer) Push(ctx context.Context, container string, policy models.MergePolicy, changes []models.Change) (models.PushResponse, error) {
	req := models.PushRequest{
		Container:   container,
		MergePolicy: policy,
		Changes:     changes,
		Hash:        computeTransportHash(changes),
		Length:      len(changes),
	}

	var pushed models.PushResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("container", container).
		SetBody(req).
		SetResult(&pushed).
		Post(changesPath)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: push request: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PushResponse{}, err
	}

	h.logger.Debug().
		Str("func", "httpRemoteContainer.Push").
		Str("container", container).
		Int("changes", len(changes)).
		Int("records", len(pushed.Records)).
		Msg("change set pushed")

	return pushed, nil
}

// Pull implements [RemoteContainer]. It GETs
// /api/containers/{container}/changes?since=N and decodes the records changed
// after the cursor.
func (h *httpRemoteContainer) Pull(ctx context.Context, container string, since int64) (models.PullResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("container", container).
		SetQueryParam("since", strconv.FormatInt(since, 10)).
		Get(changesPath)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: pull request: %w", ErrUnreachable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PullResponse{}, err
	}

	var pulled models.PullResponse
	if err = json.Unmarshal(resp.Body(), &pulled); err != nil {
		return models.PullResponse{}, fmt.Errorf("decode pull response: %w", err)
	}

	return pulled, nil
}

// DeleteContainer implements [RemoteContainer]. It sends
// DELETE /api/containers/{container}; HTTP 404 maps to [ErrNotFound].
func (h *httpRemoteContainer) DeleteContainer(ctx context.Context, container string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("container", container).
		Delete(containerPath)
	if err != nil {
		return fmt.Errorf("%w: delete container request: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp)
}

var _ RemoteContainer = (*httpRemoteContainer)(nil)

func computeTransportHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		return ""
	}

	return hex.EncodeToString(utils.Hash(payload))
}
