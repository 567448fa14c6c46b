package paymentgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного шлюза
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента платёжного шлюза
func NewClient(baseURL, keyID, keySecret string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateOrder создает заказ в шлюзе и возвращает платёжную сессию
// Сумма передается в единицах валюты и конвертируется в минимальные единицы.
// Каждый вызов снабжается uuid-ключом идемпотентности: повтор того же
// запроса при сетевой ошибке не создаст второй заказ на стороне шлюза.
func (c *Client) CreateOrder(ctx context.Context, bookingID int64, amount float64, currency string, customer Customer) (*Order, error) {
	url := fmt.Sprintf("%s/v1/orders", c.baseURL)

	reqBody := createOrderRequest{
		Amount:   int64(math.Round(amount * 100)),
		Currency: currency,
		Receipt:  fmt.Sprintf("booking_%d", bookingID),
	}
	reqBody.Customer.Name = customer.Name
	reqBody.Customer.Email = customer.Email
	reqBody.Customer.Phone = customer.Phone

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", uuid.NewString())
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("PaymentGateway: create order failed for booking_id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode >= http.StatusInternalServerError:
		body, _ := io.ReadAll(resp.Body)
		c.log.Error("PaymentGateway: create order returned %d for booking_id=%d: %s",
			resp.StatusCode, bookingID, string(body))
		return nil, fmt.Errorf("%w: status code %d", ErrGatewayUnavailable, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("PaymentGateway: order created order_id=%s booking_id=%d amount=%d %s",
		order.ID, bookingID, reqBody.Amount, currency)

	return &order, nil
}

// GetOrderStatus получает статус заказа из шлюза
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*OrderStatus, error) {
	url := fmt.Sprintf("%s/v1/orders/%s", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrOrderNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var status OrderStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &status, nil
}
