// Package client talks to a running roboarm controller over its HTTP
// JSON API. It is the host-side counterpart of pkg/server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gwillem/roboarm/pkg/command"
)

// Client is an HTTP client for the controller API.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the controller at base, e.g.
// "http://roboarm.local" or "http://127.0.0.1:8080".
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

// Status mirrors the /api/status response.
type Status struct {
	Enabled   bool             `json:"enabled"`
	Moving    bool             `json:"moving"`
	Positions map[string]int64 `json:"positions"`
	Targets   map[string]int64 `json:"targets"`
	Uptime    int64            `json:"uptime"`
}

// JointInfo mirrors one entry of the /api/config response.
type JointInfo struct {
	Joint    int     `json:"joint"`
	Name     string  `json:"name"`
	ServoID  int     `json:"servo_id"`
	MinPos   int64   `json:"min_pos"`
	MaxPos   int64   `json:"max_pos"`
	MaxSpeed float64 `json:"max_speed"`
	Accel    float64 `json:"accel"`
}

// Config mirrors the /api/config response.
type Config struct {
	JointCount int         `json:"joint_count"`
	Joints     []JointInfo `json:"joints"`
}

// Status fetches the live controller status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.get(ctx, "/api/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Config fetches the static joint configuration.
func (c *Client) Config(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := c.get(ctx, "/api/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Command sends one command line. A rejected command is returned as a
// failed Result, not as a transport error.
func (c *Client) Command(ctx context.Context, line string) (command.Result, error) {
	var res command.Result
	err := c.post(ctx, "/api/command", map[string]string{"command": line}, &res)
	if err != nil {
		return command.Result{}, err
	}
	return res, nil
}

// Move requests an absolute multi-joint move. Keys of targets are
// 1-indexed joint numbers.
func (c *Client) Move(ctx context.Context, targets map[int]int64) (command.Result, error) {
	body := make(map[string]int64, len(targets))
	for joint, pos := range targets {
		body[fmt.Sprintf("j%d", joint)] = pos
	}
	var res command.Result
	if err := c.post(ctx, "/api/move", body, &res); err != nil {
		return command.Result{}, err
	}
	return res, nil
}

// Enable switches the motor enable state.
func (c *Client) Enable(ctx context.Context, enabled bool) error {
	var res struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.post(ctx, "/api/enable", map[string]bool{"enabled": enabled}, &res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("enable: %s", res.Error)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out, false)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, true)
}

// do runs the request and decodes the JSON body. When acceptReject is
// set, a 400 still decodes into out: command rejection is an application
// outcome, not a transport failure.
func (c *Client) do(req *http.Request, out any, acceptReject bool) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK &&
		!(acceptReject && resp.StatusCode == http.StatusBadRequest) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, body)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
