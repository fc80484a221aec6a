package dingalert

import (
	"fmt"
	"sync"
)

// Process-wide default client used by the package-level send helpers.
// Replacement through SetDefault is atomic from a reader's perspective.
var (
	defaultMu     sync.RWMutex
	defaultClient *RobotClient
)

// SetDefault replaces the process-wide default robot client
func SetDefault(client *RobotClient) {
	defaultMu.Lock()
	defaultClient = client
	defaultMu.Unlock()
}

// Default returns the process-wide default robot client, or nil when
// none has been set
func Default() *RobotClient {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultClient
}

func requireDefault() (*RobotClient, error) {
	if c := Default(); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("no default robot client configured, call SetDefault first")
}

// Send delivers a message through the default client
func Send(msg Message) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.Send(msg)
}

// SendText sends a plain text message through the default client
func SendText(content string) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.SendText(content)
}

// SendMarkdown sends a markdown message through the default client
func SendMarkdown(title, text string) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.SendMarkdown(title, text)
}

// SendLink sends a hyperlink card message through the default client
func SendLink(title, text, messageURL, picURL string) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.SendLink(title, text, messageURL, picURL)
}

// SendActionCard sends an action card message through the default client
func SendActionCard(card *ActionCardMessage) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.SendActionCard(card)
}

// SendFeedCard sends a feed card message through the default client
func SendFeedCard(links ...FeedCardLink) error {
	c, err := requireDefault()
	if err != nil {
		return err
	}
	return c.SendFeedCard(links...)
}
