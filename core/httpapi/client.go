// Package httpapi is a client for the assistant backend's REST
// endpoints. These predate the streaming channel and remain useful for
// one-shot exchanges and operational checks.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a REST client for the backend at baseURL (http or
// https).
func NewClient(baseURL string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	return &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}, nil
}

// ChatResult is one completed exchange from the one-shot chat endpoint.
// The endpoint does not return audio inline; AudioAvailable signals
// that [Client.Synthesize] can produce it for the same text.
type ChatResult struct {
	Text           string
	AudioAvailable bool
}

// Chat runs one full user-to-assistant exchange without a streaming
// session. History carries the prior exchanges; unlike the streaming
// channel the endpoint does not echo an updated history back, so the
// caller appends this exchange itself (see [protocol.NewTextRecord]).
func (c *Client) Chat(ctx context.Context, text string, history protocol.History) (*ChatResult, error) {
	ctx, span := tracer.Start(ctx, "chat request")
	defer span.End()
	span.SetAttributes(attribute.Int("request.history_records", len(history)))

	if history == nil {
		history = protocol.History{}
	}

	var response struct {
		Text           string `json:"text"`
		AudioAvailable bool   `json:"audio_available"`
	}
	err := c.postJSON(ctx, "/api/chat", struct {
		Text                string           `json:"text"`
		ConversationHistory protocol.History `json:"conversation_history"`
	}{Text: text, ConversationHistory: history}, &response)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &ChatResult{Text: response.Text, AudioAvailable: response.AudioAvailable}, nil
}

// Synthesize converts text to speech and returns the raw MPEG audio
// bytes the endpoint streams back.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "synthesize request")
	defer span.End()
	span.SetAttributes(attribute.Int("request.text_length", len(text)))

	requestBodyBytes, err := json.Marshal(struct {
		Text string `json:"text"`
	}{Text: text})
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tts", bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
		span.RecordError(err)
		return nil, err
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading audio response: %w", err)
	}
	return audio, nil
}

// ServiceStatus is the backend's health check response.
type ServiceStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health probes the backend root endpoint.
func (c *Client) Health(ctx context.Context) (*ServiceStatus, error) {
	var status ServiceStatus
	if err := c.getJSON(ctx, "/", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// KnowledgeBaseInfo is the document set grounding the assistant's
// answers.
type KnowledgeBaseInfo struct {
	Content string `json:"content"`
	Loaded  bool   `json:"loaded"`
}

func (c *Client) KnowledgeBase(ctx context.Context) (*KnowledgeBaseInfo, error) {
	var info KnowledgeBaseInfo
	if err := c.getJSON(ctx, "/api/knowledge-base", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ReloadKnowledgeBase asks the backend to re-read its knowledge base
// from disk and reports whether anything was loaded.
func (c *Client) ReloadKnowledgeBase(ctx context.Context) (bool, error) {
	var response struct {
		Status string `json:"status"`
		Loaded bool   `json:"loaded"`
	}
	if err := c.postJSON(ctx, "/api/knowledge-base/reload", struct{}{}, &response); err != nil {
		return false, err
	}
	return response.Loaded, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error marshalling JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if errorBody, err := io.ReadAll(resp.Body); err == nil && len(errorBody) > 0 {
			logger.Debug("backend error response",
				"status", resp.StatusCode, "body", string(errorBody))
		}
		return fmt.Errorf("non-OK HTTP status: %s", resp.Status)
	}

	if out == nil {
		return nil
	}

	respBodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}
	if err := json.Unmarshal(respBodyBytes, out); err != nil {
		return fmt.Errorf("error unmarshalling response: %w", err)
	}
	return nil
}
