package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Message уведомление о подтверждённом бронировании
// Доставкой (email, WhatsApp, календарь) занимается внешний notification-сервис
type Message struct {
	BookingID     int64  `json:"booking_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	ScheduledDate string `json:"scheduled_date"`
	TimeSlot      string `json:"time_slot"`
	Amount        float64 `json:"amount"`
	Currency      string `json:"currency"`
}

// Client клиент отправки уведомлений
// Уведомления best-effort: ошибки логируются и никогда не влияют
// на результат бронирования
type Client struct {
	webhookURL string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента уведомлений
func NewClient(webhookURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет уведомление о подтверждённом бронировании
func (c *Client) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify client: failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify client: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify client: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notify client: unexpected status code %d", resp.StatusCode)
	}

	c.log.Info("Notify: sent booking confirmation booking_id=%d", msg.BookingID)
	return nil
}
