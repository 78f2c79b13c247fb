// File: internal/notify/notify.go
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-api/internal/worker"

	"github.com/go-resty/resty/v2"
)

const (
	EventQuotationCreated = "quotation.created"
	EventOrderPaid        = "order.paid"
	EventOrderRefunded    = "order.refunded"
)

const (
	defaultTimeout  = 5 * time.Second
	dispatchTimeout = 10 * time.Second
)

// Event 是送往 webhook 的 JSON 內容
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

func NewEvent(eventType string, data interface{}) Event {
	return Event{Type: eventType, OccurredAt: time.Now().UTC(), Data: data}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// New 沒有設定 URL 時回傳 NopNotifier
func New(url string) Notifier {
	if url == "" {
		return NopNotifier{}
	}
	return NewWebhookNotifier(url, defaultTimeout)
}

// WebhookNotifier 以 JSON POST 通知外部服務
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "portfolio-api-notifier")
	return &WebhookNotifier{client: client, url: url}
}

// Notify 非 2xx 回應視為失敗
func (n *WebhookNotifier) Notify(ctx context.Context, ev Event) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(ev).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("notify %s: %w", ev.Type, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("notify %s: unexpected status %d", ev.Type, code)
	}
	return nil
}

type NopNotifier struct{}

func (NopNotifier) Notify(ctx context.Context, ev Event) error {
	slog.DebugContext(ctx, "webhook not configured, notification skipped", "type", ev.Type)
	return nil
}

// Dispatch 把通知丟到背景工作池；請求的 context 結束後仍會送出
func Dispatch(pool worker.Pool, n Notifier, ev Event) {
	pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := n.Notify(ctx, ev); err != nil {
			slog.Warn("notification failed", "type", ev.Type, "error", err)
		}
	})
}
