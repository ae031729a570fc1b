// Package gbase talks to the GBase chatbot HTTP API. Answers arrive as
// a line-delimited stream: RAG answers are JSON chunk objects, FAQ
// answers may arrive as bare plain-text lines.
package gbase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gbase-tools/chateval/internal/models"
	"github.com/gbase-tools/chateval/internal/runner"
)

const DefaultBaseURL = "https://api.gbase.ai"

// chunk is one streamed JSON line. The content field is either a plain
// string or a list of fragments, depending on the answer pipeline.
type chunk struct {
	Content   json.RawMessage `json:"content"`
	MessageID string          `json:"message_id"`
	UseFAQ    bool            `json:"use_faq"`
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
	Stream    bool   `json:"stream"`
	StreamObj bool   `json:"stream_obj"`
	IsTest    bool   `json:"is_test"`
}

// Client implements runner.ReplyProducer against a live bot.
type Client struct {
	baseURL    string
	token      string
	botID      string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewClient(baseURL, token, botID string, httpClient *http.Client, logger *zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		botID:      botID,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Produce sends one question and collects the full streamed answer.
// JSON chunks are concatenated in arrival order; plain-text lines are
// treated as an FAQ answer and joined with newlines. When both forms
// appear, the JSON answer wins.
func (c *Client) Produce(ctx context.Context, question string, sessionID string) (*runner.Reply, error) {
	body, err := json.Marshal(askRequest{
		Question:  question,
		SessionID: sessionID,
		Stream:    true,
		StreamObj: true,
		IsTest:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/questions/%s", c.baseURL, c.botID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send question: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: HTTP %d", resp.StatusCode)
	}

	return c.collect(resp.Body)
}

func (c *Client) collect(body io.Reader) (*runner.Reply, error) {
	var (
		jsonParts []string
		textParts []string
		messageID string
		isFAQ     bool
	)

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var ck chunk
		if err := json.Unmarshal([]byte(line), &ck); err != nil {
			// FAQ answers come through as plain text, not JSON.
			textParts = append(textParts, line)
			isFAQ = true
			continue
		}
		if ck.MessageID != "" && messageID == "" {
			messageID = ck.MessageID
		}
		if ck.UseFAQ {
			isFAQ = true
		}
		jsonParts = append(jsonParts, decodeContent(ck.Content)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read answer stream: %w", err)
	}

	answer := strings.Join(jsonParts, "")
	if answer == "" {
		answer = strings.Join(textParts, "\n")
	}

	source := models.SourceRAG
	if isFAQ {
		source = models.SourceFAQ
	}

	c.logger.Debug().
		Str("message_id", messageID).
		Str("source", string(source)).
		Int("chunks", len(jsonParts)+len(textParts)).
		Msg("answer stream collected")

	return &runner.Reply{
		Answer:    answer,
		Source:    source,
		MessageID: messageID,
	}, nil
}

// decodeContent flattens a chunk content field, which may be a string,
// a list, or absent.
func decodeContent(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok {
				parts = append(parts, str)
			} else {
				parts = append(parts, fmt.Sprint(item))
			}
		}
		return parts
	}

	return []string{string(raw)}
}
