package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/shopspring/decimal"
)

type CatalogService struct {
	uow         uow.UOW
	catalogRepo CatalogRepository
	notifier    *notifier
}

func NewCatalogService(u uow.UOW, n *notifier) (*CatalogService, error) {
	catalogRepo, err := uow.GetRepositoryAs[CatalogRepository](u, repoName(repoargs.CatalogRepoName))
	if err != nil {
		return nil, err
	}
	return &CatalogService{
		uow:         u,
		catalogRepo: catalogRepo,
		notifier:    n,
	}, nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.CatalogItem, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing catalog: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting catalog item: %w", err)
	}
	return item, nil
}

type AddCatalogItemArgs struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	Image       string
}

// Add публикует листинг с новым id. Продавцом становится caller.
func (s *CatalogService) Add(ctx context.Context, caller string, args AddCatalogItemArgs) (*domain.CatalogItem, error) {
	if !args.Price.IsPositive() {
		return nil, fmt.Errorf("adding catalog item: %w", domain.ErrInvalidAmount)
	}
	item := domain.CatalogItem{
		ID:          generateID(ItemIDPrefix),
		Seller:      caller,
		Title:       args.Title,
		Description: args.Description,
		Category:    args.Category,
		Price:       args.Price,
		Image:       args.Image,
		CreatedAt:   time.Now(),
	}
	nt := note{
		recipient: caller,
		title:     "Item Listed",
		message:   fmt.Sprintf("%s is now live in the marketplace.", item.Title),
		severity:  domain.SeveritySuccess,
	}

	txErr := s.uow.Do(ctx, []kvstore.Key{repoargs.CatalogKey(item.ID)}, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CatalogRepository](tx, repoName(repoargs.CatalogRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		if err := repo.Save(c, item); err != nil {
			return err //nolint:wrapcheck
		}
		return s.notifier.post(c, tx, nt)
	})
	if txErr != nil {
		return nil, fmt.Errorf("adding catalog item: %w", txErr)
	}
	s.notifier.committed([]note{nt})
	return &item, nil
}

// Remove снимает листинг. Возвращает domain.ErrRecordNotFound для неизвестного id и domain.ErrForbidden,
// если caller не продавец.
func (s *CatalogService) Remove(ctx context.Context, caller, id string) error {
	var nt note
	txErr := s.uow.Do(ctx, []kvstore.Key{repoargs.CatalogKey(id)}, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CatalogRepository](tx, repoName(repoargs.CatalogRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		item, findErr := repo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if item.Seller != caller {
			return fmt.Errorf("%w: listing %s belongs to another seller", domain.ErrForbidden, id)
		}
		if err := repo.Delete(c, id); err != nil {
			return err //nolint:wrapcheck
		}
		nt = note{
			recipient: caller,
			title:     "Item Removed",
			message:   fmt.Sprintf("%s was removed from the marketplace.", item.Title),
			severity:  domain.SeverityInfo,
		}
		return s.notifier.post(c, tx, nt)
	})
	if txErr != nil {
		return fmt.Errorf("removing catalog item: %w", txErr)
	}
	s.notifier.committed([]note{nt})
	return nil
}
