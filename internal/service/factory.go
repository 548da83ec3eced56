package service

import (
	"fmt"

	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/shopspring/decimal"
)

type AppServices struct {
	Ledger        *LedgerService
	Identity      *IdentityService
	Catalog       *CatalogService
	Shipments     *ShipmentService
	Notifications *NotificationService
}

type FactoryArgs struct {
	Metrics        *metrics.Metrics
	JWTSecret      []byte
	SeedBalance    decimal.Decimal
	AdminAccounts  []string
	DefaultCourier string
	// OutboxEnabled включает запись уведомлений в outbox для внешней доставки.
	OutboxEnabled bool
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	n := &notifier{outboxEnabled: args.OutboxEnabled, metrics: args.Metrics}

	ledger, ledgerErr := NewLedgerService(unitOfWork, args.Metrics)
	if ledgerErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerErr.Error())
	}

	identity, identityErr := NewIdentityService(unitOfWork, n, IdentityServiceArgs{
		SeedBalance:    args.SeedBalance,
		AdminAccounts:  args.AdminAccounts,
		JWTTokenSecret: args.JWTSecret,
	})
	if identityErr != nil {
		return nil, fmt.Errorf("service factory: %s", identityErr.Error())
	}

	catalog, catalogErr := NewCatalogService(unitOfWork, n)
	if catalogErr != nil {
		return nil, fmt.Errorf("service factory: %s", catalogErr.Error())
	}

	shipments, shipmentsErr := NewShipmentService(unitOfWork, n, args.Metrics, args.DefaultCourier)
	if shipmentsErr != nil {
		return nil, fmt.Errorf("service factory: %s", shipmentsErr.Error())
	}

	notifications, notificationsErr := NewNotificationService(unitOfWork, n)
	if notificationsErr != nil {
		return nil, fmt.Errorf("service factory: %s", notificationsErr.Error())
	}

	return &AppServices{
		Ledger:        ledger,
		Identity:      identity,
		Catalog:       catalog,
		Shipments:     shipments,
		Notifications: notifications,
	}, nil
}
