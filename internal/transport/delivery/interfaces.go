package delivery

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/service"
)

// Client доставляет уведомление во внешнюю систему.
type Client interface {
	Deliver(ctx context.Context, notification domain.Notification) error
}

type Servicer interface {
	PendingDeliveries(ctx context.Context, limit uint) ([]domain.OutboxMessage, error)
	CompleteDeliveries(ctx context.Context, results []service.DeliveryResult) error
}
