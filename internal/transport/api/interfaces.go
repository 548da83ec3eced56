package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/service"
)

type IdentityServicer interface {
	Connect(ctx context.Context, account string) (*service.ConnectResult, error)
	Register(ctx context.Context, account string, args service.RegisterProfileArgs) (*domain.Profile, error)
	Lookup(ctx context.Context, account string) (*domain.Profile, error)
	SubmitKyc(ctx context.Context, account string, docs domain.KycDocuments) (*domain.Profile, error)
	SetKyc(ctx context.Context, caller, account string, status domain.KycStatus) (*domain.Profile, error)
	ListProfiles(ctx context.Context, caller string, status domain.KycStatus) ([]domain.Profile, error)
}

type CatalogServicer interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	Add(ctx context.Context, caller string, args service.AddCatalogItemArgs) (*domain.CatalogItem, error)
	Remove(ctx context.Context, caller, id string) error
}

type ShipmentServicer interface {
	Open(ctx context.Context, args service.OpenShipmentArgs) (*domain.Shipment, error)
	OpenFromPurchase(ctx context.Context, buyer, itemID, courier string) (*domain.Shipment, error)
	Dispatch(ctx context.Context, caller, id string) (*domain.Shipment, error)
	Advance(ctx context.Context, args service.AdvanceShipmentArgs) (*domain.Shipment, error)
	Get(ctx context.Context, id string) (*domain.Shipment, error)
	ListAll(ctx context.Context) ([]domain.Shipment, error)
	ListFor(ctx context.Context, account string, filter domain.ParticipantFilter) ([]domain.Shipment, error)
	Stats(ctx context.Context, account string) (*domain.Stats, error)
}

type LedgerServicer interface {
	GetBalance(ctx context.Context, account string) (decimal.Decimal, error)
}

type NotificationServicer interface {
	ListFor(ctx context.Context, recipient string) ([]domain.Notification, error)
}
