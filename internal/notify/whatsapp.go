// Package notify sends alarm reminders to patients through the outbound
// WhatsApp gateway.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Notifier delivers a message to a patient's phone.
type Notifier interface {
	Send(ctx context.Context, phone, message string) error
}

// WhatsAppNotifier posts reminders to the gateway's send endpoint.
type WhatsAppNotifier struct {
	client *resty.Client
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// NewWhatsAppNotifier builds a notifier for the given gateway base URL. The
// token is optional; gateways deployed on a private network run without one.
func NewWhatsAppNotifier(baseURL, token string) *WhatsAppNotifier {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	if token != "" {
		c.SetAuthToken(token)
	}
	return &WhatsAppNotifier{client: c}
}

var _ Notifier = (*WhatsAppNotifier)(nil)

// Send posts one message. Non-2xx gateway answers surface as errors so the
// caller can report the failure instead of recording a send that never
// happened.
func (n *WhatsAppNotifier) Send(ctx context.Context, phone, message string) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(sendRequest{To: phone, Message: message}).
		Post("/send")
	if err != nil {
		return fmt.Errorf("gateway send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("gateway send: status %s", resp.Status())
	}
	return nil
}
