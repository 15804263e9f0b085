package ports

import "context"

// NotificationTypeVarianceAlert marks alerts raised for large count variances.
const NotificationTypeVarianceAlert = "CYCLE_COUNT_VARIANCE"

// Notification is a fire-and-forget message. An empty RecipientID broadcasts it.
type Notification struct {
	RecipientID string            `json:"recipientId,omitempty"`
	Type        string            `json:"type"`
	Priority    string            `json:"priority"`
	Title       string            `json:"title"`
	Message     string            `json:"message"`
	Data        map[string]string `json:"data,omitempty"`
}

// Notifier delivers notifications. Callers treat every error as non-fatal.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}
