package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент шлюза уведомлений (email + SMS)
// Рендеринг шаблонов и собственно доставка - на стороне шлюза,
// ядро передает только имя шаблона и параметры
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза уведомлений
func NewClient(baseURL string, apiToken string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendEmail отправляет email через шлюз
func (c *Client) SendEmail(ctx context.Context, payload *EmailPayload) error {
	return c.send(ctx, "/internal/notifications/email", payload)
}

// SendSMS отправляет SMS через шлюз
func (c *Client) SendSMS(ctx context.Context, payload *SMSPayload) error {
	return c.send(ctx, "/internal/notifications/sms", payload)
}

func (c *Client) send(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
			return fmt.Errorf("%w: status code %d: %s", ErrRejected, resp.StatusCode, string(respBody))
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !result.Accepted {
		return fmt.Errorf("%w: %s", ErrDeliveryFailed, result.Error)
	}

	return nil
}
