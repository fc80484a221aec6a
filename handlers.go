package dingalert

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AlertHandler handles HTTP requests that forward alerts to the robot webhook
type AlertHandler struct {
	robot *RobotClient
}

// TextAlertRequest represents the request payload for text alerts
type TextAlertRequest struct {
	Content   string   `json:"content" binding:"required"`
	AtMobiles []string `json:"at_mobiles"`
	AtAll     bool     `json:"at_all"`
}

// MarkdownAlertRequest represents the request payload for markdown alerts
type MarkdownAlertRequest struct {
	Title     string   `json:"title" binding:"required"`
	Text      string   `json:"text" binding:"required"`
	AtMobiles []string `json:"at_mobiles"`
	AtAll     bool     `json:"at_all"`
}

// LinkAlertRequest represents the request payload for link alerts
type LinkAlertRequest struct {
	Title      string `json:"title" binding:"required"`
	Text       string `json:"text" binding:"required"`
	MessageURL string `json:"message_url" binding:"required"`
	PicURL     string `json:"pic_url"`
}

// AlertResponse represents the response from alert operations
type AlertResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ErrCode int    `json:"errcode,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(robot *RobotClient) *AlertHandler {
	return &AlertHandler{
		robot: robot,
	}
}

// SendText forwards a text alert to the robot webhook
func (h *AlertHandler) SendText(c *gin.Context) {
	var req TextAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AlertResponse{
			Success: false,
			Message: "Invalid request format",
			Error:   err.Error(),
		})
		return
	}

	msg := NewTextMessage(req.Content)
	msg.At = Mention{AtAll: req.AtAll, AtMobiles: req.AtMobiles}

	h.deliver(c, msg)
}

// SendMarkdown forwards a markdown alert to the robot webhook
func (h *AlertHandler) SendMarkdown(c *gin.Context) {
	var req MarkdownAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AlertResponse{
			Success: false,
			Message: "Invalid request format",
			Error:   err.Error(),
		})
		return
	}

	msg := NewMarkdownMessage(req.Title, req.Text)
	msg.At = Mention{AtAll: req.AtAll, AtMobiles: req.AtMobiles}

	h.deliver(c, msg)
}

// SendLink forwards a link alert to the robot webhook
func (h *AlertHandler) SendLink(c *gin.Context) {
	var req LinkAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, AlertResponse{
			Success: false,
			Message: "Invalid request format",
			Error:   err.Error(),
		})
		return
	}

	h.deliver(c, NewLinkMessage(req.Title, req.Text, req.MessageURL, req.PicURL))
}

// deliver sends the message and writes the outcome, distinguishing
// rejections by the robot service from transport failures
func (h *AlertHandler) deliver(c *gin.Context, msg Message) {
	if err := h.robot.Send(msg); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			slog.Error("Robot rejected alert", "errcode", apiErr.Code, "errmsg", apiErr.Message)
			c.JSON(http.StatusBadGateway, AlertResponse{
				Success: false,
				Message: "Robot rejected alert",
				ErrCode: apiErr.Code,
				Error:   apiErr.Message,
			})
			return
		}

		slog.Error("Failed to deliver alert", "error", err)
		c.JSON(http.StatusInternalServerError, AlertResponse{
			Success: false,
			Message: "Failed to deliver alert",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, AlertResponse{
		Success: true,
		Message: "Alert sent successfully",
	})
}

// HealthCheck returns the health status of the service
func (h *AlertHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "dingtalk-alert",
	})
}
