// Package dingalert provides a DingTalk Alert module for sending messages to a group-chat robot webhook
package dingalert

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// DingAlertModule represents the main module that can be integrated into other projects
type DingAlertModule struct {
	config *Config
	robot  *RobotClient
	server *http.Server
	logger *slog.Logger
}

// Config holds the configuration for the DingTalk Alert Service
type Config struct {
	WebhookURL      string
	AccessToken     string
	Secret          string
	CredentialsFile string
	Port            string
	LogLevel        string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:     "8080",
		LogLevel: "info",
	}
}

// LoadConfigFromEnv loads configuration from environment variables
func LoadConfigFromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
	config := DefaultConfig()

	if val := os.Getenv("DINGTALK_WEBHOOK_URL"); val != "" {
		config.WebhookURL = val
	}
	if val := os.Getenv("DINGTALK_ACCESS_TOKEN"); val != "" {
		config.AccessToken = val
	}
	if val := os.Getenv("DINGTALK_SECRET"); val != "" {
		config.Secret = val
	}
	if val := os.Getenv("DINGTALK_CREDENTIALS_FILE"); val != "" {
		config.CredentialsFile = val
	}
	if val := os.Getenv("PORT"); val != "" {
		config.Port = val
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	return config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.WebhookURL == "" && c.AccessToken == "" && c.CredentialsFile == "" {
		return fmt.Errorf("one of DINGTALK_WEBHOOK_URL, DINGTALK_ACCESS_TOKEN or DINGTALK_CREDENTIALS_FILE is required")
	}
	return nil
}

// credentials resolves the robot credentials, falling back to the
// credentials file when no direct webhook/token configuration is present
func (c *Config) credentials() (*Credentials, error) {
	if c.WebhookURL == "" && c.AccessToken == "" {
		return LoadCredentialsFromFile(c.CredentialsFile)
	}
	return &Credentials{
		WebhookURL:  c.WebhookURL,
		AccessToken: c.AccessToken,
		Secret:      c.Secret,
	}, nil
}

// NewDingAlertModule creates a new DingAlertModule with the given configuration
func NewDingAlertModule(config *Config) (*DingAlertModule, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logger
	var logLevel slog.Level
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Resolve credentials and build the robot client
	creds, err := config.credentials()
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	robot, err := NewRobotClientFromCredentials(creds)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	return &DingAlertModule{
		config: config,
		robot:  robot,
		logger: logger,
	}, nil
}

// SendAlert sends a plain text alert to the group chat
func (m *DingAlertModule) SendAlert(message string) error {
	if message == "" {
		return fmt.Errorf("message is required")
	}

	m.logger.Info("Sending alert")

	return m.robot.SendText(message)
}

// SendMarkdownAlert sends a markdown-formatted alert to the group chat
func (m *DingAlertModule) SendMarkdownAlert(title, text string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if text == "" {
		return fmt.Errorf("text is required")
	}

	m.logger.Info("Sending markdown alert", "title", title)

	return m.robot.SendMarkdown(title, text)
}

// RegisterAlertRoutes sets up the alert routes on an existing Gin router
func (m *DingAlertModule) RegisterAlertRoutes(router *gin.Engine) {
	alertHandler := NewAlertHandler(m.robot)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", alertHandler.HealthCheck)
		v1.POST("/alert/text", alertHandler.SendText)
		v1.POST("/alert/markdown", alertHandler.SendMarkdown)
		v1.POST("/alert/link", alertHandler.SendLink)
	}
}

// StartServer starts an HTTP server with the given router on the
// configured port and blocks until the server stops
func (m *DingAlertModule) StartServer(router *gin.Engine) error {
	m.server = &http.Server{
		Addr:    ":" + m.config.Port,
		Handler: router,
	}

	m.logger.Info("Starting HTTP server", "port", m.config.Port)

	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (m *DingAlertModule) Shutdown() error {
	if m.server == nil {
		return nil
	}

	m.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return m.server.Shutdown(ctx)
}

// Robot returns the underlying RobotClient for advanced usage
func (m *DingAlertModule) Robot() *RobotClient {
	return m.robot
}

// Logger returns the module's logger
func (m *DingAlertModule) Logger() *slog.Logger {
	return m.logger
}
