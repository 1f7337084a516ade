// Package remote is the accessor for the external MancariJo REST API. Every
// call is a fresh request; nothing is cached. Responses arrive in a
// {status, data} envelope that is checked here, so the rest of the service
// only ever sees typed values or an *apperror.AppError of kind transport or
// rejected.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mancarijo/pkg/apperror"
	"mancarijo/pkg/logger"
	"mancarijo/pkg/metrics"
)

const maxResponseBytes = 8 << 20

// envelope is the wrapper returned by every endpoint. Login puts its
// payload under "user" instead of "data".
type envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	User    json.RawMessage `json:"user"`
	Message string          `json:"message"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

// call issues one request and returns the checked envelope. Only GET, POST
// and PATCH are used; the API is never asked to delete anything.
func (c *Client) call(ctx context.Context, method, collection, path string, query url.Values, body any) (*envelope, error) {
	op := fmt.Sprintf("%s %s", method, path)
	start := time.Now()

	env, err := c.roundTrip(ctx, method, path, query, body)

	outcome := "ok"
	if err != nil {
		outcome = string(apperror.KindOf(err))
		logger.Log.Error("Remote API call failed",
			"op", op,
			"collection", collection,
			"kind", outcome,
			"error", err,
		)
	}
	c.metrics.ObserveRemote(collection, method, outcome, time.Since(start))

	return env, err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	op := fmt.Sprintf("%s %s", method, path)

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.Internal(fmt.Errorf("encode %s body: %w", op, err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("build %s: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.Transport(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperror.Transport(op, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperror.New(http.StatusNotFound, apperror.KindNotFound, op, errors.New("not found"))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperror.Rejected(op, fmt.Errorf("HTTP %d: undecodable envelope: %w", resp.StatusCode, err))
	}
	if resp.StatusCode >= 300 || !env.Status {
		reason := env.Message
		if reason == "" {
			reason = "status false"
		}
		return nil, apperror.Rejected(op, fmt.Errorf("HTTP %d: %s", resp.StatusCode, reason))
	}

	return &env, nil
}

// decodeInto unmarshals the payload; a missing payload counts as rejected.
func decodeInto(op string, payload json.RawMessage, out any) error {
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return apperror.Rejected(op, errors.New("empty data"))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return apperror.Rejected(op, fmt.Errorf("decode data: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, collection, path string, query url.Values, out any) error {
	env, err := c.call(ctx, http.MethodGet, collection, path, query, nil)
	if err != nil {
		return err
	}
	return decodeInto("GET "+path, env.Data, out)
}

func (c *Client) post(ctx context.Context, collection, path string, body, out any) error {
	env, err := c.call(ctx, http.MethodPost, collection, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeInto("POST "+path, env.Data, out)
}

func (c *Client) patch(ctx context.Context, collection, path string, body any) error {
	_, err := c.call(ctx, http.MethodPatch, collection, path, nil, body)
	return err
}

func itemPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

// Ping reads the smallest collection to check the API answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "job-preferences", "/job-preferences", nil, nil)
	return err
}
