package syncq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"questflow/internal/domain/question"
)

// Transport delivers one mutation to the remote service. A non-2xx response
// must surface as an error wrapping question.ErrTransport so the queue can
// tell delivery failures from local ones.
type Transport interface {
	Send(ctx context.Context, action string, payload json.RawMessage) error
}

// Credentials returns the current remote endpoint and credential. Read on
// every call so settings changes take effect without rebuilding the client.
type Credentials func() (apiURL, apiKey string)

// HTTPTransport posts each mutation to {apiUrl}/{action} with a bearer
// credential.
type HTTPTransport struct {
	client      *http.Client
	credentials Credentials
	log         *slog.Logger
	userAgent   string
}

func NewHTTPTransport(credentials Credentials, log *slog.Logger) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		},
		credentials: credentials,
		log:         log,
		userAgent:   "QuestFlow-Client/1.0",
	}
}

func (t *HTTPTransport) Send(ctx context.Context, action string, payload json.RawMessage) error {
	apiURL, apiKey := t.credentials()
	if apiURL == "" || apiKey == "" {
		return question.ErrConfiguration
	}

	url := strings.TrimRight(apiURL, "/") + "/" + action
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("User-Agent", t.userAgent)

	t.log.Debug("sending sync request", "action", action, "url", url)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", question.ErrTransport, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: server returned status %d", question.ErrTransport, resp.StatusCode)
	}
	return nil
}

// Ping checks whether the remote service is reachable.
func (t *HTTPTransport) Ping(ctx context.Context) error {
	apiURL, _ := t.credentials()
	if apiURL == "" {
		return question.ErrConfiguration
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(apiURL, "/")+"/health", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", question.ErrOffline, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: server returned status %d", question.ErrTransport, resp.StatusCode)
	}
	return nil
}
