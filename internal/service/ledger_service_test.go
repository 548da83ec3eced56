package service

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

func (s *ServiceTestSuite) TestLedger_Operations() {
	ctx := context.Background()
	a := s.account()
	b := s.account()

	s.requireBalance("0xNOBODY", 0)

	s.Run("credit", func() {
		s.Require().NoError(s.services.Ledger.Credit(ctx, a, decimal.NewFromInt(5)))
		s.requireBalance(a, 105)
	})
	s.Run("non positive amounts", func() {
		s.ErrorIs(s.services.Ledger.Credit(ctx, a, decimal.Zero), domain.ErrInvalidAmount)
		s.ErrorIs(s.services.Ledger.Debit(ctx, a, decimal.NewFromInt(-1)), domain.ErrInvalidAmount)
	})
	s.Run("debit beyond balance", func() {
		s.ErrorIs(s.services.Ledger.Debit(ctx, a, decimal.NewFromInt(106)), domain.ErrInsufficientFunds)
		s.requireBalance(a, 105)
	})
	s.Run("transfer", func() {
		s.Require().NoError(s.services.Ledger.Transfer(ctx, a, b, decimal.NewFromInt(55)))
		s.requireBalance(a, 50)
		s.requireBalance(b, 155)
	})
	s.Run("failed transfer is atomic", func() {
		s.ErrorIs(s.services.Ledger.Transfer(ctx, a, b, decimal.NewFromInt(51)), domain.ErrInsufficientFunds)
		s.requireBalance(a, 50)
		s.requireBalance(b, 155)
	})

	s.requireConserved(decimal.NewFromInt(205))
}
