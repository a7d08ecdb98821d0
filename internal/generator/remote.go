package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tiernote/tiernote/internal/document"
)

// DefaultTimeout bounds a single backend call. The overall request context
// still cancels the call early when the client goes away.
const DefaultTimeout = 30 * time.Second

// Remote delegates tier generation to an external HTTP backend. The wire
// contract is a single POST returning a JSON object keyed by tier name.
type Remote struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewRemote(endpoint, apiKey string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remote{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type generateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tiers   []string `json:"tiers"`
}

type generateResponse struct {
	Tiers map[string]string `json:"tiers"`
	Error string            `json:"error,omitempty"`
}

func (r *Remote) Generate(ctx context.Context, content, title string) (TierSet, error) {
	reqBody := generateRequest{Title: title, Content: content}
	for _, t := range document.Tiers {
		reqBody.Tiers = append(reqBody.Tiers, string(t))
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		// network errors and timeouts are transient unless the caller is gone
		return nil, &Error{Retryable: ctx.Err() == nil, Err: fmt.Errorf("generation backend: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &Error{Retryable: true, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, &Error{Retryable: true, Err: fmt.Errorf("backend status %d: %s", resp.StatusCode, truncate(respBody, 200))}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Err: fmt.Errorf("backend status %d: %s", resp.StatusCode, truncate(respBody, 200))}
	}

	var apiResp generateResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, &Error{Err: fmt.Errorf("decode response: %w", err)}
	}
	if apiResp.Error != "" {
		return nil, &Error{Err: fmt.Errorf("backend error: %s", apiResp.Error)}
	}

	out := make(TierSet, len(document.Tiers))
	for _, t := range document.Tiers {
		out[t] = apiResp.Tiers[string(t)]
	}
	if !out.Complete() {
		// a partial map must never escape, treat it as a failed call
		return nil, &Error{Err: fmt.Errorf("backend returned incomplete tier set: got %d of %d tiers", len(apiResp.Tiers), len(document.Tiers))}
	}
	return out, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
