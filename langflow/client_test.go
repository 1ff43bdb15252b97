// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package langflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/flowrace/fault"
	"github.com/gogama/flowrace/timeout"
)

const happyResponse = `{
	"session_id": "s1",
	"outputs": [{
		"inputs": {"input_value": "what is two plus two"},
		"outputs": [{
			"results": {
				"message": {
					"text": "Four.",
					"sender": "Machine"
				}
			}
		}]
	}]
}`

func TestClientInvoke(t *testing.T) {
	t.Run("Happy Path", func(t *testing.T) {
		var gotPath, gotKey, gotContentType string
		var gotBody runRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("x-api-key")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(happyResponse))
		}))
		defer server.Close()
		c := &Client{BaseURL: server.URL, APIKey: "sk-test"}

		msg, err := c.Invoke(context.Background(), "flow-1", "what is two plus two", "corr-1")

		require.NoError(t, err)
		assert.Equal(t, "Four.", msg)
		assert.Equal(t, "/flow-1", gotPath)
		assert.Equal(t, "sk-test", gotKey)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "chat", gotBody.OutputType)
		assert.Equal(t, "chat", gotBody.InputType)
		assert.Equal(t, "what is two plus two", gotBody.InputValue)
		assert.Equal(t, "corr-1", gotBody.SessionID)
	})
	t.Run("Trailing Slash BaseURL", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(happyResponse))
		}))
		defer server.Close()
		c := &Client{BaseURL: server.URL + "/api/v1/run/", APIKey: "k"}

		_, err := c.Invoke(context.Background(), "flow-1", "q", "c")

		require.NoError(t, err)
		assert.Equal(t, "/api/v1/run/flow-1", gotPath)
	})
	t.Run("Empty Payloads", func(t *testing.T) {
		testCases := []struct {
			name string
			body string
		}{
			{"Not JSON", `<html>gateway error</html>`},
			{"No Outputs", `{"outputs": []}`},
			{"No Message", `{"outputs": [{"outputs": [{"results": {}}]}]}`},
			{"Blank Text", `{"outputs": [{"outputs": [{"results": {"message": {"text": "  \n "}}}]}]}`},
			{"Non-String Text", `{"outputs": [{"outputs": [{"results": {"message": {"text": 42}}}]}]}`},
		}
		for _, testCase := range testCases {
			t.Run(testCase.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte(testCase.body))
				}))
				defer server.Close()
				c := &Client{BaseURL: server.URL, APIKey: "k"}

				msg, err := c.Invoke(context.Background(), "flow-1", "q", "c")

				assert.Empty(t, msg)
				require.Error(t, err)
				assert.ErrorIs(t, err, fault.ErrEmpty)
				assert.Equal(t, fault.Empty, fault.Categorize(err))
			})
		}
	})
	t.Run("HTTP Error Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()
		c := &Client{BaseURL: server.URL, APIKey: "k"}

		msg, err := c.Invoke(context.Background(), "flow-1", "q", "c")

		assert.Empty(t, msg)
		require.EqualError(t, err, "langflow: flow flow-1 returned status 500")
		assert.Equal(t, fault.Transport, fault.Categorize(err))
	})
	t.Run("Connection Refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()
		c := &Client{BaseURL: server.URL, APIKey: "k"}

		_, err := c.Invoke(context.Background(), "flow-1", "q", "c")

		require.Error(t, err)
		assert.Equal(t, fault.Transport, fault.Categorize(err))
	})
	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()
		c := &Client{
			BaseURL:       server.URL,
			APIKey:        "k",
			TimeoutPolicy: timeout.Fixed(20 * time.Millisecond),
		}

		_, err := c.Invoke(context.Background(), "flow-1", "q", "c")

		require.Error(t, err)
		assert.Equal(t, fault.Timeout, fault.Categorize(err))
		assert.Equal(t, 1, c.timeoutCount("flow-1"))
		assert.Equal(t, 0, c.timeoutCount("flow-2"))
	})
	t.Run("Adaptive Timeout Escalates", func(t *testing.T) {
		var mu sync.Mutex
		var deadlines []time.Duration
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			if deadline, ok := r.Context().Deadline(); ok {
				mu.Lock()
				deadlines = append(deadlines, time.Until(deadline))
				mu.Unlock()
			}
			<-r.Context().Done()
		}))
		defer server.Close()
		c := &Client{
			BaseURL:       server.URL,
			APIKey:        "k",
			TimeoutPolicy: timeout.Adaptive(20*time.Millisecond, 60*time.Millisecond),
		}

		_, err := c.Invoke(context.Background(), "flow-1", "q", "c")
		require.Error(t, err)
		_, err = c.Invoke(context.Background(), "flow-1", "q", "c")
		require.Error(t, err)

		assert.Equal(t, 2, c.timeoutCount("flow-1"))
		mu.Lock()
		defer mu.Unlock()
		require.Len(t, deadlines, 2)
		assert.LessOrEqual(t, deadlines[0], 20*time.Millisecond)
		assert.Greater(t, deadlines[1], 25*time.Millisecond,
			"second invocation gets the escalated timeout")
	})
	t.Run("Context Cancelled", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()
		c := &Client{BaseURL: server.URL, APIKey: "k"}
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		_, err := c.Invoke(ctx, "flow-1", "q", "c")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, c.timeoutCount("flow-1"), "cancellation is not a timeout")
	})
}

func TestExtractMessage(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		msg, err := extractMessage("f", []byte(happyResponse))
		require.NoError(t, err)
		assert.Equal(t, "Four.", msg)
	})
	t.Run("Missing", func(t *testing.T) {
		msg, err := extractMessage("f", []byte(`{}`))
		assert.Empty(t, msg)
		assert.ErrorIs(t, err, fault.ErrEmpty)
	})
}

func TestClientCloseIdleConnections(t *testing.T) {
	t.Run("Supported", func(t *testing.T) {
		d := &idleDoer{}
		c := &Client{HTTPDoer: d, APIKey: "k"}
		c.CloseIdleConnections()
		assert.Equal(t, 1, d.closed)
	})
	t.Run("Unsupported", func(t *testing.T) {
		c := &Client{HTTPDoer: plainDoer{}, APIKey: "k"}
		assert.NotPanics(t, func() {
			c.CloseIdleConnections()
		})
	})
}

type idleDoer struct {
	closed int
}

func (d *idleDoer) Do(*http.Request) (*http.Response, error) {
	return nil, nil
}

func (d *idleDoer) CloseIdleConnections() {
	d.closed++
}

type plainDoer struct{}

func (plainDoer) Do(*http.Request) (*http.Response, error) {
	return nil, nil
}
