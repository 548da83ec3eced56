package service

import (
	"context"
	"errors"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
)

func (s *ServiceTestSuite) TestNotifications_Outbox() {
	ctx := context.Background()
	account := s.account()

	s.Require().NoError(s.services.Notifications.Post(ctx, account, "Hello", "first", domain.SeverityInfo))
	s.Require().NoError(s.services.Notifications.Post(ctx, account, "Hello", "second", domain.SeverityInfo))

	pending, err := s.services.Notifications.PendingDeliveries(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(pending, 2)
	s.Equal(account, pending[0].Notification.Recipient)

	s.Require().NoError(s.services.Notifications.CompleteDeliveries(ctx, []DeliveryResult{
		{ID: pending[0].ID},
		{ID: pending[1].ID, Error: errors.New("connection refused")},
		{ID: "missing", Error: errors.New("connection refused")},
	}))

	// повторная попытка отложена, доставленное сообщение больше не выбирается
	pending, err = s.services.Notifications.PendingDeliveries(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)

	notifications, err := s.services.Notifications.ListFor(ctx, account)
	s.Require().NoError(err)
	s.Len(notifications, 2)
}

func (s *ServiceTestSuite) TestNotifications_FailAfterMaxAttempts() {
	ctx := context.Background()
	account := s.account()
	s.services.Notifications.retryBase = 0

	s.Require().NoError(s.services.Notifications.Post(ctx, account, "Hello", "body", domain.SeverityWarning))

	for range DefaultMaxDeliveryAttempts {
		pending, err := s.services.Notifications.PendingDeliveries(ctx, 10)
		s.Require().NoError(err)
		s.Require().Len(pending, 1)
		s.Require().NoError(s.services.Notifications.CompleteDeliveries(ctx, []DeliveryResult{
			{ID: pending[0].ID, Error: errors.New("boom")},
		}))
	}

	pending, err := s.services.Notifications.PendingDeliveries(ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
}
