// Package gemini is a generateContent client used for best-effort
// shortlist commentary. Callers treat every failure as "no enrichment
// available" and deliver the unenriched reply.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"selectly/internal/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-pro"
)

// Config configures the generative-text client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	// Timeout zero means no client-side deadline; the call is awaited
	// unbounded unless the context says otherwise.
	Timeout time.Duration
}

// Client talks to a Gemini-compatible generateContent endpoint,
// authenticating with a key passed as a query parameter.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient creates a client using the provided configuration. The API key
// is read from the configured environment variable.
func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  key,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Insight sends one generateContent request for the given shortlist and
// question and returns the generated text. A single attempt, no retries:
// the result is advisory.
func (c *Client) Insight(ctx context.Context, shortlist []domain.ScoredSupplier, question string) (string, error) {
	prompt, err := buildPrompt(shortlist, question)
	if err != nil {
		return "", err
	}
	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("generateContent failed: %s", resp.Status)
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no insight returned")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func buildPrompt(shortlist []domain.ScoredSupplier, question string) (string, error) {
	entries := make([]map[string]any, 0, len(shortlist))
	for _, s := range shortlist {
		entry := make(map[string]any, len(s.Supplier)+1)
		for k, v := range s.Supplier {
			entry[k] = v
		}
		entry["calculatedScore"] = s.Score
		entries = append(entries, entry)
	}
	serialized, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`You are an expert RMG supplier analyst. Based on these suppliers, provide a brief analysis in Bengali (2-3 sentences):

%s

User asked: %s

Be conversational and helpful.`, serialized, question), nil
}
