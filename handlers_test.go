package dingalert

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, robotHandler http.HandlerFunc) (*gin.Engine, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	robot := httptest.NewServer(robotHandler)
	t.Cleanup(robot.Close)

	module, err := NewDingAlertModule(&Config{WebhookURL: robot.URL, LogLevel: "error"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	router := gin.New()
	module.RegisterAlertRoutes(router)
	return router, robot
}

func TestAlertHandler_HealthCheck(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestAlertHandler_SendText(t *testing.T) {
	var forwarded string
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		forwarded = string(body)
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	})

	payload := `{"content":"disk usage above 90%","at_all":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alert/text", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response AlertResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if !response.Success {
		t.Error("Expected success response")
	}

	if !strings.Contains(forwarded, `"msgtype":"text"`) {
		t.Errorf("Expected a text message to be forwarded, got %s", forwarded)
	}
	if !strings.Contains(forwarded, `"isAtAll":true`) {
		t.Errorf("Expected the mention to be forwarded, got %s", forwarded)
	}
}

func TestAlertHandler_SendTextMissingContent(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Robot should not be called for an invalid request")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alert/text", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestAlertHandler_RobotRejection(t *testing.T) {
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errcode":310000,"errmsg":"keywords not in content"}`)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alert/text", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", w.Code)
	}

	var response AlertResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Expected JSON response, got %v", err)
	}
	if response.ErrCode != 310000 {
		t.Errorf("Expected errcode 310000 in response, got %d", response.ErrCode)
	}
}

func TestAlertHandler_SendMarkdown(t *testing.T) {
	var forwarded string
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		forwarded = string(body)
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	})

	payload := `{"title":"Release","text":"## shipped"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alert/markdown", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(forwarded, `"msgtype":"markdown"`) {
		t.Errorf("Expected a markdown message to be forwarded, got %s", forwarded)
	}
}

func TestAlertHandler_SendLink(t *testing.T) {
	var forwarded string
	router, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		forwarded = string(body)
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	})

	payload := `{"title":"Docs","text":"read","message_url":"https://example.com/doc"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/alert/link", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(forwarded, `"msgtype":"link"`) {
		t.Errorf("Expected a link message to be forwarded, got %s", forwarded)
	}
}
