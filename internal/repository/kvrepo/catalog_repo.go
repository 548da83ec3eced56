package kvrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type CatalogRepository struct {
	tx kvstore.Tx
}

func NewCatalogRepository(tx kvstore.Tx) *CatalogRepository {
	return &CatalogRepository{tx: tx}
}

func (c *CatalogRepository) FindByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	item, err := getRecord[domain.CatalogItem](ctx, c.tx, repoargs.CatalogKey(id))
	if err != nil {
		return nil, convertErr(err, "finding catalog item %s", id)
	}
	return item, nil
}

func (c *CatalogRepository) Save(ctx context.Context, item domain.CatalogItem) error {
	err := putRecord(ctx, c.tx, repoargs.CatalogKey(item.ID), item)
	return convertErr(err, "saving catalog item %s", item.ID)
}

func (c *CatalogRepository) Delete(ctx context.Context, id string) error {
	return convertErr(c.tx.Delete(ctx, repoargs.CatalogKey(id)), "deleting catalog item %s", id)
}

// List возвращает листинги, новые первыми.
func (c *CatalogRepository) List(ctx context.Context) ([]domain.CatalogItem, error) {
	items, err := listRecords[domain.CatalogItem](ctx, c.tx, repoargs.NamespaceCatalog, "")
	if err != nil {
		return nil, convertErr(err, "listing catalog")
	}
	slices.SortStableFunc(items, func(a, b domain.CatalogItem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return items, nil
}
