package service

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *ServiceTestSuite) TestCatalog_AddAndRemove() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	other := s.verifiedAccount(domain.RoleSeller)

	item := s.listing(seller, 25)
	s.Regexp(`^ITM-[0-9A-Z]{9}$`, item.ID)
	s.Equal(seller, item.Seller)

	items, err := s.services.Catalog.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(items, 1)

	s.Run("zero price", func() {
		_, addErr := s.services.Catalog.Add(ctx, seller, AddCatalogItemArgs{Title: "free", Price: decimal.Zero})
		s.ErrorIs(addErr, domain.ErrInvalidAmount)
	})
	s.Run("foreign listing", func() {
		s.ErrorIs(s.services.Catalog.Remove(ctx, other, item.ID), domain.ErrForbidden)
	})
	s.Run("unknown listing", func() {
		s.ErrorIs(s.services.Catalog.Remove(ctx, seller, "ITM-UNKNOWN"), domain.ErrRecordNotFound)
	})
	s.Run("own listing", func() {
		s.Require().NoError(s.services.Catalog.Remove(ctx, seller, item.ID))
		_, getErr := s.services.Catalog.Get(ctx, item.ID)
		s.ErrorIs(getErr, domain.ErrRecordNotFound)
	})

	notifications, err := s.services.Notifications.ListFor(ctx, seller)
	s.Require().NoError(err)
	titles := make([]string, 0, len(notifications))
	for _, n := range notifications {
		titles = append(titles, n.Title)
	}
	s.Contains(titles, "Item Listed")
	s.Contains(titles, "Item Removed")
}
