// Package client talks to the PocketCart HTTP API on behalf of the terminal
// client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	stdsync "sync"

	"github.com/tidwall/gjson"

	"pocketcart/internal/config"
	syncdomain "pocketcart/internal/domain/sync"
	"pocketcart/pkg/logger"
)

const maxErrorBody = 64 << 10

type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger

	mu    stdsync.RWMutex
	token string
}

func New(cfg config.ClientConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     logger.OrNop(log),
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends a JSON request. Responses outside 2xx become *sync.RemoteError
// carrying the status and the server's error envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("client.request: transport failed", "method", method, "path", path, "err", err)
		return &syncdomain.RemoteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		remoteErr := &syncdomain.RemoteError{
			Status:  resp.StatusCode,
			Code:    gjson.GetBytes(raw, "error.code").String(),
			Message: gjson.GetBytes(raw, "error.message").String(),
		}
		c.log.Debug("client.request: rejected", "method", method, "path", path, "status", resp.StatusCode, "code", remoteErr.Code)
		return remoteErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &syncdomain.RemoteError{Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
