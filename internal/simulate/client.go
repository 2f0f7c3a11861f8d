package simulate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/okian/vibematch/internal/domain/model"
)

// client is a thin JSON client for the vibematch HTTP API.
type client struct {
	base string
	http *http.Client
}

func newClient(base string, timeout time.Duration, hc *http.Client) *client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &client{base: base, http: hc}
}

// statusError reports an unexpected HTTP status.
type statusError struct {
	Method, Path string
	Status       int
	Body         string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (c *client) do(ctx context.Context, method, path string, in, out any, want ...int) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read %s: %w", path, err)
	}
	ok := false
	for _, w := range want {
		ok = ok || resp.StatusCode == w
	}
	if !ok {
		return resp.StatusCode, &statusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(raw)}
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *client) health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
	return err
}

func (c *client) createSession(ctx context.Context, contextID string) (model.SessionInfo, error) {
	var info model.SessionInfo
	_, err := c.do(ctx, http.MethodPost, "/sessions", map[string]string{"context_id": contextID}, &info, http.StatusCreated)
	return info, err
}

type eventBody struct {
	EventID       string `json:"event_id"`
	ContentType   string `json:"content_type"`
	ContextID     string `json:"context_id"`
	Action        string `json:"action"`
	DwellMs       int64  `json:"dwell_ms"`
	TS            string `json:"ts"`
	SequenceIndex int    `json:"sequence_index"`
}

type eventReply struct {
	Status    string          `json:"status"`
	Duplicate bool            `json:"duplicate"`
	Anomalies []model.Anomaly `json:"anomalies"`
}

func (c *client) postEvent(ctx context.Context, sessionID string, ev model.InteractionEvent) (eventReply, error) {
	body := eventBody{
		EventID:       ev.EventID,
		ContentType:   string(ev.ContentType),
		ContextID:     ev.ContextID,
		Action:        string(ev.Action),
		DwellMs:       ev.DwellMs,
		TS:            ev.Timestamp.UTC().Format(time.RFC3339Nano),
		SequenceIndex: ev.SequenceIndex,
	}
	var out eventReply
	_, err := c.do(ctx, http.MethodPost, "/sessions/"+sessionID+"/events", body, &out, http.StatusCreated, http.StatusOK)
	return out, err
}

func (c *client) profile(ctx context.Context, sessionID string) (model.BehavioralProfile, error) {
	var p model.BehavioralProfile
	_, err := c.do(ctx, http.MethodGet, "/sessions/"+sessionID+"/profile", nil, &p, http.StatusOK)
	return p, err
}

type recommendReply struct {
	Count           int                    `json:"count"`
	Recommendations []model.Recommendation `json:"recommendations"`
}

func (c *client) recommend(ctx context.Context, sessionID string, count int) (recommendReply, error) {
	var out recommendReply
	path := fmt.Sprintf("/sessions/%s/recommendations?count=%d", sessionID, count)
	_, err := c.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK)
	return out, err
}

func (c *client) deleteSession(ctx context.Context, sessionID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/sessions/"+sessionID, nil, nil, http.StatusNoContent)
	return err
}
