package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ChatClient asks the report analysis backend questions about a user's reports
type ChatClient struct {
	url    string
	client *http.Client
}

type chatRequest struct {
	Phone    string `json:"phone"`
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// NewChatClient creates a client posting to url
func NewChatClient(url string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Ask returns the backend's answer to the question
func (c *ChatClient) Ask(ctx context.Context, phone, question string) (string, error) {
	body, err := json.Marshal(chatRequest{Phone: phone, Question: question})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat backend returned status %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	return out.Answer, nil
}
