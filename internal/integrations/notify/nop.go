package notify

import (
	"context"

	"github.com/m04kA/SRC-BookingService/internal/domain"
)

// NopClient заглушка шлюза уведомлений: используется, когда
// уведомления выключены в конфигурации
type NopClient struct{}

// NewNopClient создает заглушку шлюза уведомлений
func NewNopClient() *NopClient {
	return &NopClient{}
}

func (c *NopClient) NotifyHoldCreated(ctx context.Context, b *domain.Booking) {}

func (c *NopClient) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) {}

func (c *NopClient) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, reason string) {}

func (c *NopClient) NotifyBookingReminder(ctx context.Context, b *domain.Booking) {}

func (c *NopClient) NotifyWaitlistSlotFree(ctx context.Context, e *domain.WaitlistEntry, freeSims int) {
}
