package dingalert

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// signWebhook computes the request signature for one timestamp per the
// DingTalk security scheme: HMAC-SHA256 over "{timestamp}\n{secret}"
// keyed with the secret, base64 encoded, then percent encoded so it can
// be carried as a query parameter.
func signWebhook(secret string, timestamp int64) string {
	payload := fmt.Sprintf("%d\n%s", timestamp, secret)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	digest := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return url.QueryEscape(digest)
}

// signedURL appends the timestamp and signature query parameters to the
// webhook URL when a secret is configured. Without a secret the URL is
// returned unmodified.
func signedURL(webhookURL, secret string, timestamp int64) string {
	if secret == "" {
		return webhookURL
	}

	sep := "?"
	if strings.Contains(webhookURL, "?") {
		sep = "&"
	}

	return webhookURL + sep + "timestamp=" + strconv.FormatInt(timestamp, 10) + "&sign=" + signWebhook(secret, timestamp)
}
