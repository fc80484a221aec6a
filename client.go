package dingalert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RobotClient delivers messages to a single DingTalk robot webhook. It is
// immutable after construction and safe for concurrent use; each Send is
// one synchronous POST with no retry and no shared in-flight state.
type RobotClient struct {
	webhookURL string
	secret     string
	httpClient *http.Client
}

// robotResponse represents the service's standard response envelope
type robotResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// NewRobotClient creates a client for the given webhook URL. secret may
// be empty when the robot is not configured with signature security; the
// URL is then used exactly as given, including any access_token query
// parameter already embedded in it.
func NewRobotClient(webhookURL, secret string) *RobotClient {
	return &RobotClient{
		webhookURL: webhookURL,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewRobotClientFromCredentials creates a client from resolved credentials
func NewRobotClientFromCredentials(creds *Credentials) (*RobotClient, error) {
	webhookURL, err := creds.webhookURL()
	if err != nil {
		return nil, err
	}
	return NewRobotClient(webhookURL, creds.Secret), nil
}

// WebhookURL returns the configured webhook URL
func (c *RobotClient) WebhookURL() string {
	return c.webhookURL
}

// Send delivers one message to the robot webhook. A nil return means the
// service acknowledged the message; a *APIError means the service
// rejected it; any other error is a transport failure.
func (c *RobotClient) Send(msg Message) error {
	body, err := json.Marshal(msg.wire())
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return c.post(body)
}

// SendRaw delivers a pre-built JSON payload unmodified
func (c *RobotClient) SendRaw(jsonBody []byte) error {
	return c.post(jsonBody)
}

func (c *RobotClient) post(body []byte) error {
	timestamp := time.Now().UnixMilli()
	requestURL := signedURL(c.webhookURL, c.secret, timestamp)

	req, err := http.NewRequest(http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var robotResp robotResponse
	if err := json.Unmarshal(respBody, &robotResp); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if robotResp.ErrCode != 0 {
		return &APIError{Code: robotResp.ErrCode, Message: robotResp.ErrMsg}
	}

	// A non-2xx status whose body carries no failure code is still a failure
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request failed with status: %d, body: %s", resp.StatusCode, respBody)
	}

	return nil
}

// SendText sends a plain text message
func (c *RobotClient) SendText(content string) error {
	return c.Send(NewTextMessage(content))
}

// SendMarkdown sends a markdown message
func (c *RobotClient) SendMarkdown(title, text string) error {
	return c.Send(NewMarkdownMessage(title, text))
}

// SendLink sends a hyperlink card message
func (c *RobotClient) SendLink(title, text, messageURL, picURL string) error {
	return c.Send(NewLinkMessage(title, text, messageURL, picURL))
}

// SendActionCard sends an action card message
func (c *RobotClient) SendActionCard(card *ActionCardMessage) error {
	return c.Send(card)
}

// SendFeedCard sends a feed card message
func (c *RobotClient) SendFeedCard(links ...FeedCardLink) error {
	return c.Send(NewFeedCardMessage(links...))
}
