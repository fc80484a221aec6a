package dingalert

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"testing"
)

// reference implementation of the documented signature scheme, computed
// independently of signWebhook
func referenceSignature(secret string, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d\n%s", timestamp, secret)
	return url.QueryEscape(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}

func TestSignWebhook(t *testing.T) {
	got := signWebhook("abc", 1000)
	want := referenceSignature("abc", 1000)

	if got != want {
		t.Errorf("Expected signature %s, got %s", want, got)
	}
}

func TestSignWebhook_Deterministic(t *testing.T) {
	first := signWebhook("secret-token", 1693395600000)
	second := signWebhook("secret-token", 1693395600000)

	if first != second {
		t.Errorf("Expected deterministic signature, got %s and %s", first, second)
	}
}

func TestSignedURL_NoSecret(t *testing.T) {
	webhookURL := "https://oapi.dingtalk.com/robot/send?access_token=tok"

	if got := signedURL(webhookURL, "", 1000); got != webhookURL {
		t.Errorf("Expected unmodified URL %s, got %s", webhookURL, got)
	}
}

func TestSignedURL_WithSecret(t *testing.T) {
	webhookURL := "https://robot.example.com/hook"

	got := signedURL(webhookURL, "abc", 1000)
	want := webhookURL + "?timestamp=1000&sign=" + referenceSignature("abc", 1000)

	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSignedURL_AppendsToExistingQuery(t *testing.T) {
	webhookURL := "https://oapi.dingtalk.com/robot/send?access_token=tok"

	got := signedURL(webhookURL, "abc", 1000)
	want := webhookURL + "&timestamp=1000&sign=" + referenceSignature("abc", 1000)

	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
