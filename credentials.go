package dingalert

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// DefaultWebhookBaseURL is the standard robot endpoint; the robot's
// access token is appended as its query parameter value.
const DefaultWebhookBaseURL = "https://oapi.dingtalk.com/robot/send?access_token="

// Credentials identify one robot webhook. Either WebhookURL is set
// directly, or AccessToken is combined with the default endpoint.
//
// JSON format:
//
//	{
//	    "webhook_url": "",              // optional, overrides the default endpoint
//	    "access_token": "<token>",
//	    "secret": "<signing secret>"    // optional
//	}
type Credentials struct {
	WebhookURL  string `json:"webhook_url"`
	AccessToken string `json:"access_token"`
	Secret      string `json:"secret"`
}

// ParseCredentials parses credentials from a JSON string
func ParseCredentials(data string) (*Credentials, error) {
	var creds Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials JSON: %w", err)
	}
	return &creds, nil
}

// LoadCredentialsFromFile reads credentials from a JSON file. A leading
// "~/" refers to the current user's home directory.
func LoadCredentialsFromFile(path string) (*Credentials, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return ParseCredentials(string(data))
}

// webhookURL resolves the webhook URL: an explicit URL wins, otherwise
// the default endpoint with the percent-encoded access token.
func (c *Credentials) webhookURL() (string, error) {
	if c.WebhookURL != "" {
		return c.WebhookURL, nil
	}
	if c.AccessToken == "" {
		return "", fmt.Errorf("credentials require webhook_url or access_token")
	}
	return DefaultWebhookBaseURL + url.QueryEscape(c.AccessToken), nil
}
