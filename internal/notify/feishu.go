package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/W1ndys/LinuxdoMonitor/internal/feed"
)

const requestTimeout = 10 * time.Second

// maxDeliveryTime bounds the retry window for a single notification
const maxDeliveryTime = 30 * time.Second

// FeishuNotifier delivers new-item notifications to a Feishu bot webhook
type FeishuNotifier struct {
	webhookURL string
	secret     string
	client     *http.Client
}

// NewFeishuNotifier creates a notifier for the given webhook.
// An empty webhook URL produces an unconfigured notifier whose
// notifications are skipped.
func NewFeishuNotifier(webhookURL, secret string) *FeishuNotifier {
	return &FeishuNotifier{
		webhookURL: webhookURL,
		secret:     secret,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether a webhook URL has been set
func (n *FeishuNotifier) Configured() bool {
	return n.webhookURL != ""
}

// postMessage is the Feishu "post" rich text message envelope
type postMessage struct {
	Timestamp string      `json:"timestamp,omitempty"`
	Sign      string      `json:"sign,omitempty"`
	MsgType   string      `json:"msg_type"`
	Content   postContent `json:"content"`
}

type postContent struct {
	Post postBody `json:"post"`
}

type postBody struct {
	ZhCn postLocale `json:"zh_cn"`
}

type postLocale struct {
	Title   string          `json:"title"`
	Content [][]postElement `json:"content"`
}

type postElement struct {
	Tag  string `json:"tag"`
	Text string `json:"text,omitempty"`
	Href string `json:"href,omitempty"`
}

// NotifyNewItems sends one rich text message listing the new items
func (n *FeishuNotifier) NotifyNewItems(ctx context.Context, feedLabel string, items []feed.Item) error {
	if !n.Configured() {
		fmt.Println("FeishuNotifier: webhook not configured, skipping notification")
		return nil
	}
	if len(items) == 0 {
		return nil
	}

	title := fmt.Sprintf("%s: %d new item(s)", feedLabel, len(items))
	msg := n.buildMessage(title, items)

	return n.send(ctx, msg)
}

// buildMessage assembles the post message, one content line per item
func (n *FeishuNotifier) buildMessage(title string, items []feed.Item) *postMessage {
	lines := make([][]postElement, 0, len(items))
	for _, item := range items {
		lines = append(lines, []postElement{
			{Tag: "text", Text: item.Title + " "},
			{Tag: "a", Text: "link", Href: item.Link},
		})
	}

	msg := &postMessage{
		MsgType: "post",
		Content: postContent{
			Post: postBody{
				ZhCn: postLocale{
					Title:   title,
					Content: lines,
				},
			},
		},
	}

	if n.secret != "" {
		timestamp := strconv.FormatInt(time.Now().Unix(), 10)
		msg.Timestamp = timestamp
		msg.Sign = sign(timestamp, n.secret)
	}

	return msg
}

// sign computes the Feishu bot signature: HMAC-SHA256 keyed by
// "<timestamp>\n<secret>" over an empty message, base64 encoded
func sign(timestamp, secret string) string {
	stringToSign := timestamp + "\n" + secret
	mac := hmac.New(sha256.New, []byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// send posts the message, retrying transient failures with exponential backoff
func (n *FeishuNotifier) send(ctx context.Context, msg *postMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build notification request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to post notification: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			// The webhook rejected the request, retrying won't help
			return backoff.Permanent(fmt.Errorf("webhook rejected notification: %s: %s", resp.Status, respBody))
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("webhook server error: %s", resp.Status)
		}

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxDeliveryTime

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return err
	}

	fmt.Println("FeishuNotifier: notification delivered")
	return nil
}
