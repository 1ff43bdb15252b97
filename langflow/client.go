// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package langflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/gogama/flowrace/fault"
	"github.com/gogama/flowrace/race"
	"github.com/gogama/flowrace/timeout"
)

// DefaultBaseURL is the run endpoint of a locally hosted Langflow
// instance.
const DefaultBaseURL = "http://localhost:7860/api/v1/run"

// messagePath locates the chat message text inside a Langflow run
// response.
var messagePath = jp.MustParseString("$.outputs[0].outputs[0].results.message.text")

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	Do(r *http.Request) (*http.Response, error)
}

// A Client invokes Langflow flows. Each backend identifier is a flow
// id; Invoke runs the flow at {BaseURL}/{flow} with the query as the
// chat input and the correlation identifier as the Langflow session
// id, so that every attempt of a race is an independent conversation.
//
// Client implements the flowrace.Invoker interface and is safe for
// concurrent use by multiple goroutines. The zero value is not
// usable: at minimum APIKey must be set.
type Client struct {
	// BaseURL is the flow run endpoint. If empty, DefaultBaseURL is
	// used.
	BaseURL string

	// APIKey is sent in the x-api-key header of every request.
	APIKey string

	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard
	// net/http package is used.
	HTTPDoer HTTPDoer

	// TimeoutPolicy specifies how to set the deadline on individual
	// flow invocations. A flow's deadline may grow after the flow
	// times out, if the policy is adaptive.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	mu       sync.Mutex
	timeouts map[race.Backend]int
}

// Invoke runs the flow named by backend and returns the chat message
// text from its response.
//
// A transport or protocol failure returns an error categorized as
// Transport (or Timeout, if the deadline was exceeded) by
// fault.Categorize. A response that transported successfully but
// contains no usable message text returns an error wrapping
// fault.ErrEmpty. Invoke never retries; retry is the racing client's
// job.
func (c *Client) Invoke(ctx context.Context, backend race.Backend, query, correlation string) (string, error) {
	body, err := sonic.Marshal(&runRequest{
		OutputType: "chat",
		InputType:  "chat",
		InputValue: query,
		SessionID:  correlation,
	})
	if err != nil {
		return "", fmt.Errorf("langflow: encode request: %w", err)
	}

	if d := c.timeoutPolicy().Timeout(c.timeoutCount(backend)); 0 < d && d < 1<<63-1 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	url := strings.TrimSuffix(c.baseURL(), "/") + "/" + string(backend)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("langflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.doer().Do(req)
	if err != nil {
		if fault.Categorize(err) == fault.Timeout {
			c.recordTimeout(backend)
		}
		return "", fmt.Errorf("langflow: flow %s: %w", backend, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("langflow: flow %s returned status %d", backend, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if fault.Categorize(err) == fault.Timeout {
			c.recordTimeout(backend)
		}
		return "", fmt.Errorf("langflow: flow %s: read body: %w", backend, err)
	}

	return extractMessage(backend, data)
}

// extractMessage pulls the chat message text out of a Langflow run
// response. Any shape mismatch is an empty payload, not a transport
// failure: the flow answered, it just didn't say anything usable.
func extractMessage(backend race.Backend, data []byte) (string, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return "", fmt.Errorf("langflow: flow %s: unparseable response: %w", backend, fault.ErrEmpty)
	}

	got := messagePath.Get(doc)
	if len(got) == 0 {
		return "", fmt.Errorf("langflow: flow %s: no message in response: %w", backend, fault.ErrEmpty)
	}
	text, ok := got[0].(string)
	if !ok || strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("langflow: flow %s: blank message in response: %w", backend, fault.ErrEmpty)
	}
	return text, nil
}

type runRequest struct {
	OutputType string `json:"output_type"`
	InputType  string `json:"input_type"`
	InputValue string `json:"input_value"`
	SessionID  string `json:"session_id"`
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) timeoutPolicy() timeout.Policy {
	if c.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}
	return c.TimeoutPolicy
}

func (c *Client) timeoutCount(backend race.Backend) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeouts[backend]
}

func (c *Client) recordTimeout(backend race.Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timeouts == nil {
		c.timeouts = make(map[race.Backend]int)
	}
	c.timeouts[backend]++
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer, if it has one.
func (c *Client) CloseIdleConnections() {
	type idleCloser interface {
		CloseIdleConnections()
	}
	if ic, ok := c.doer().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}
