package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client клиент для отправки уведомлений в NotifyService.
//
// Все методы работают по принципу fire-and-forget: недоступность
// NotifyService не должна ломать бронирование. Ошибки логируются,
// но никогда не возвращаются вызывающему.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifyBookingCreated уведомляет о новом бронировании
func (c *Client) NotifyBookingCreated(ctx context.Context, event BookingEvent) {
	event.EventType = EventBookingCreated
	c.send(ctx, event)
}

// NotifyBookingConfirmed уведомляет о подтверждении бронирования
func (c *Client) NotifyBookingConfirmed(ctx context.Context, event BookingEvent) {
	event.EventType = EventBookingConfirmed
	c.send(ctx, event)
}

// NotifyBookingRejected уведомляет об отклонении бронирования
func (c *Client) NotifyBookingRejected(ctx context.Context, event BookingEvent) {
	event.EventType = EventBookingRejected
	c.send(ctx, event)
}

// NotifyBookingCancelled уведомляет об отмене бронирования
func (c *Client) NotifyBookingCancelled(ctx context.Context, event BookingEvent) {
	event.EventType = EventBookingCancelled
	c.send(ctx, event)
}

func (c *Client) send(ctx context.Context, event BookingEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}

	body, err := json.Marshal(event)
	if err != nil {
		c.log.Error("notifyservice: failed to marshal event %s for booking_id=%d: %v", event.EventType, event.BookingID, err)
		return
	}

	url := fmt.Sprintf("%s/internal/notifications/events", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.log.Error("notifyservice: failed to create request for booking_id=%d: %v", event.BookingID, err)
		return
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("notifyservice: failed to send event %s for booking_id=%d: %v", event.EventType, event.BookingID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("notifyservice: event %s for booking_id=%d got status %d", event.EventType, event.BookingID, resp.StatusCode)
		return
	}

	c.log.Info("notifyservice: sent event %s for booking_id=%d, event_id=%s", event.EventType, event.BookingID, event.EventID)
}
