// Package notify клиент шлюза уведомлений. Доставка best-effort:
// события отправляются после коммита транзакции, ошибки отправки
// логируются и не влияют на результат операции.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы со шлюзом уведомлений
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента шлюза уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyHoldCreated новая заявка создана (уведомление администраторам)
func (c *Client) NotifyHoldCreated(ctx context.Context, b *domain.Booking) {
	c.deliver(ctx, eventFromBooking(EventHoldCreated, b, ""))
}

// NotifyBookingConfirmed заявка подтверждена
func (c *Client) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) {
	c.deliver(ctx, eventFromBooking(EventBookingConfirmed, b, ""))
}

// NotifyBookingCancelled заявка отменена
func (c *Client) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) {
	c.deliver(ctx, eventFromBooking(EventBookingCancelled, b, reason))
}

// NotifyBookingReminder напоминание о скором визите
func (c *Client) NotifyBookingReminder(ctx context.Context, b *domain.Booking) {
	c.deliver(ctx, eventFromBooking(EventBookingReminder, b, ""))
}

// NotifyWaitlistSlotFree желаемое окно освободилось
func (c *Client) NotifyWaitlistSlotFree(ctx context.Context, e *domain.WaitlistEntry, freeSims int) {
	c.deliver(ctx, Event{
		Type:     EventWaitlistSlotFree,
		UserID:   e.UserID,
		StartAt:  &e.StartAt,
		EndAt:    &e.EndAt,
		Sims:     &e.SimsNeeded,
		FreeSims: &freeSims,
	})
}

func eventFromBooking(eventType string, b *domain.Booking, reason string) Event {
	return Event{
		Type:      eventType,
		UserID:    b.UserID,
		BookingID: &b.ID,
		StartAt:   &b.StartAt,
		EndAt:     &b.EndAt,
		Sims:      &b.Sims,
		Price:     &b.Price,
		Reason:    reason,
	}
}

func (c *Client) deliver(ctx context.Context, event Event) {
	if err := c.send(ctx, event); err != nil {
		c.log.Error("notify: failed to deliver %s for user %d: %v", event.Type, event.UserID, err)
	}
}

func (c *Client) send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
