package service

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

type BalanceRepository interface {
	GetBalance(ctx context.Context, account string) (*domain.Balance, error)
	SetBalance(ctx context.Context, account string, amount decimal.Decimal) error
	ListBalances(ctx context.Context) ([]domain.Balance, error)
	FindSeedGrant(ctx context.Context, account string) (*domain.SeedGrant, error)
	CreateSeedGrant(ctx context.Context, grant domain.SeedGrant) error
}

type ProfileRepository interface {
	FindByAccount(ctx context.Context, account string) (*domain.Profile, error)
	Save(ctx context.Context, profile domain.Profile) error
	List(ctx context.Context, args repoargs.ListProfiles) ([]domain.Profile, error)
}

type CatalogRepository interface {
	FindByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	Save(ctx context.Context, item domain.CatalogItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.CatalogItem, error)
}

type ShipmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Shipment, error)
	Save(ctx context.Context, shipment domain.Shipment) error
	List(ctx context.Context) ([]domain.Shipment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) error
	ListFor(ctx context.Context, recipient string) ([]domain.Notification, error)
}

type OutboxRepository interface {
	Save(ctx context.Context, msg domain.OutboxMessage) error
	FindByID(ctx context.Context, id string) (*domain.OutboxMessage, error)
	List(ctx context.Context, args repoargs.ListOutbox) ([]domain.OutboxMessage, error)
}
