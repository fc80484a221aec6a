package dingalert

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultClient_Unset(t *testing.T) {
	SetDefault(nil)

	if Default() != nil {
		t.Error("Expected no default client")
	}

	if err := SendText("hello"); err == nil {
		t.Error("Expected an error when no default client is configured")
	}
}

func TestDefaultClient_SetAndSend(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"errcode":0,"errmsg":"ok"}`)
	}))
	defer server.Close()

	client := NewRobotClient(server.URL, "")
	SetDefault(client)
	defer SetDefault(nil)

	if Default() != client {
		t.Error("Expected default client to be replaced")
	}

	if err := SendText("hello"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := Send(NewMarkdownMessage("t", "x")); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if requests != 2 {
		t.Errorf("Expected 2 requests, got %d", requests)
	}
}

func TestDefaultClient_Replace(t *testing.T) {
	first := NewRobotClient("https://robot.example.com/a", "")
	second := NewRobotClient("https://robot.example.com/b", "")

	SetDefault(first)
	defer SetDefault(nil)

	SetDefault(second)
	if Default() != second {
		t.Error("Expected replacement to take effect")
	}
}
