package kvrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type ShipmentRepository struct {
	tx kvstore.Tx
}

func NewShipmentRepository(tx kvstore.Tx) *ShipmentRepository {
	return &ShipmentRepository{tx: tx}
}

func (s *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := getRecord[domain.Shipment](ctx, s.tx, repoargs.ShipmentKey(id))
	if err != nil {
		return nil, convertErr(err, "finding shipment %s", id)
	}
	return shipment, nil
}

func (s *ShipmentRepository) Save(ctx context.Context, shipment domain.Shipment) error {
	err := putRecord(ctx, s.tx, repoargs.ShipmentKey(shipment.ID), shipment)
	return convertErr(err, "saving shipment %s", shipment.ID)
}

// List возвращает все отправления, новые первыми.
func (s *ShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := listRecords[domain.Shipment](ctx, s.tx, repoargs.NamespaceShipments, "")
	if err != nil {
		return nil, convertErr(err, "listing shipments")
	}
	slices.SortStableFunc(shipments, func(a, b domain.Shipment) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return shipments, nil
}
