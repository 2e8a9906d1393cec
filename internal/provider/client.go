package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"holdem-arena/internal/config"
)

type Client struct {
	cfg  config.ProviderConfig
	http *http.Client
}

func NewClient(cfg config.ProviderConfig) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

func (c *Client) Enabled() bool { return c.cfg.Enabled() }

// DefaultModel is the model used when a turn does not name one.
func (c *Client) DefaultModel() string { return c.cfg.DefaultModel }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string          `json:"type"`
	JSONSchema *jsonSchemaSpec `json:"json_schema,omitempty"`
}

type jsonSchemaSpec struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Decide asks the model for one decision. The structured path is tried
// first; if the request, reply or schema validation fails the text
// protocol is retried once. An empty model uses the configured default.
func (c *Client) Decide(ctx context.Context, model string, turn Turn) (Decision, error) {
	if model == "" {
		model = c.cfg.DefaultModel
	}

	structured, sErr := c.complete(ctx, model, turn, true)
	if sErr == nil {
		d, err := parseStructured(structured)
		if err == nil {
			return d, nil
		}
		sErr = err
	}
	log.Debug().Err(sErr).Str("model", model).
		Msg("structured decision failed, retrying as text")

	text, tErr := c.complete(ctx, model, turn, false)
	if tErr != nil {
		return Decision{}, &Error{Model: model, Err: fmt.Errorf("structured: %v; text: %w", sErr, tErr)}
	}
	return parseText(text), nil
}

func (c *Client) complete(ctx context.Context, model string, turn Turn, structured bool) (string, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(turn.Personality)},
			{Role: "user", Content: userPrompt(turn, structured)},
		},
		MaxTokens: c.cfg.MaxTokens,
	}
	if structured {
		req.ResponseFormat = &responseFormat{
			Type: "json_schema",
			JSONSchema: &jsonSchemaSpec{
				Name:   "poker_decision",
				Strict: true,
				Schema: json.RawMessage(decisionSchema),
			},
		}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, snippet(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// parseText reads the line protocol leniently. Anything missing or
// unparseable keeps its default: a plain call at 0.5 confidence.
func parseText(content string) Decision {
	d := Decision{Action: "call", Confidence: 0.5}
	for _, line := range strings.Split(content, "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "ACTION":
			switch a := strings.ToLower(val); a {
			case "fold", "check", "call", "raise":
				d.Action = a
			}
		case "AMOUNT":
			if n, err := strconv.Atoi(strings.Fields(val + " 0")[0]); err == nil && n > 0 {
				d.Amount = &n
			}
		case "REASONING":
			d.Reasoning = val
		case "CONFIDENCE":
			if f, err := strconv.ParseFloat(val, 64); err == nil && f >= 0 && f <= 1 {
				d.Confidence = f
			}
		}
	}
	if d.Action != "raise" {
		d.Amount = nil
	}
	return d
}

func snippet(b []byte) string {
	s := string(b)
	if len(s) > 200 {
		s = s[:200]
	}
	return strings.TrimSpace(s)
}
