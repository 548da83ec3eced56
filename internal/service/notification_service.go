package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/google/uuid"
)

const (
	DefaultMaxDeliveryAttempts uint = 5
	defaultDeliveryRetryBase        = 2 * time.Second
)

// note уведомление, которое операция публикует вместе со своими изменениями.
type note struct {
	recipient string
	title     string
	message   string
	severity  domain.Severity
}

// notifier общая часть сервисов: пишет уведомления (и сообщения outbox, если включена доставка) в транзакцию
// вызывающей операции, поэтому уведомления появляются только вместе с успешным переходом.
type notifier struct {
	outboxEnabled bool
	metrics       *metrics.Metrics
}

func (n *notifier) post(ctx context.Context, tx uow.TX, notes ...note) error {
	notificationRepo, repoErr := uow.GetAs[NotificationRepository](tx, repoName(repoargs.NotificationRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	outboxRepo, outboxErr := uow.GetAs[OutboxRepository](tx, repoName(repoargs.OutboxRepoName))
	if outboxErr != nil {
		return outboxErr //nolint:wrapcheck
	}

	now := time.Now()
	for _, nt := range notes {
		if nt.recipient == "" {
			continue
		}
		notification := domain.Notification{
			ID:        newNotificationID(),
			Recipient: nt.recipient,
			Title:     nt.title,
			Message:   nt.message,
			Severity:  nt.severity,
			CreatedAt: now,
		}
		if err := notificationRepo.Create(ctx, notification); err != nil {
			return err //nolint:wrapcheck
		}
		if !n.outboxEnabled {
			continue
		}
		if err := outboxRepo.Save(ctx, domain.OutboxMessage{
			ID:            notification.ID,
			Notification:  notification,
			Status:        domain.OutboxPending,
			NextAttemptAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return nil
}

// committed учитывает в метриках уведомления успешно завершенной операции.
func (n *notifier) committed(notes []note) {
	for _, nt := range notes {
		if nt.recipient != "" {
			n.metrics.IncNotification(string(nt.severity))
		}
	}
}

// newNotificationID UUIDv7 упорядочен по времени создания.
func newNotificationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type NotificationService struct {
	uow              uow.UOW
	notificationRepo NotificationRepository
	outboxRepo       OutboxRepository
	notifier         *notifier
	maxAttempts      uint
	retryBase        time.Duration
}

func NewNotificationService(u uow.UOW, n *notifier) (*NotificationService, error) {
	notificationRepo, err := uow.GetRepositoryAs[NotificationRepository](u, repoName(repoargs.NotificationRepoName))
	if err != nil {
		return nil, err
	}
	outboxRepo, err := uow.GetRepositoryAs[OutboxRepository](u, repoName(repoargs.OutboxRepoName))
	if err != nil {
		return nil, err
	}
	return &NotificationService{
		uow:              u,
		notificationRepo: notificationRepo,
		outboxRepo:       outboxRepo,
		notifier:         n,
		maxAttempts:      DefaultMaxDeliveryAttempts,
		retryBase:        defaultDeliveryRetryBase,
	}, nil
}

// ListFor возвращает уведомления адресата, новые первыми.
func (s *NotificationService) ListFor(ctx context.Context, recipient string) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListFor(ctx, recipient)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	return notifications, nil
}

// Post публикует уведомление вне какой-либо операции леджера.
func (s *NotificationService) Post(
	ctx context.Context,
	recipient, title, message string,
	severity domain.Severity,
) error {
	nt := note{recipient: recipient, title: title, message: message, severity: severity}
	if err := s.uow.Do(ctx, nil, func(c context.Context, tx uow.TX) error {
		return s.notifier.post(c, tx, nt)
	}); err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	s.notifier.committed([]note{nt})
	return nil
}

// PendingDeliveries возвращает сообщения outbox, срок доставки которых наступил.
func (s *NotificationService) PendingDeliveries(ctx context.Context, limit uint) ([]domain.OutboxMessage, error) {
	messages, err := s.outboxRepo.List(ctx, repoargs.ListOutbox{
		Status:    domain.OutboxPending,
		DueBefore: time.Now(),
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("listing pending deliveries: %w", err)
	}
	return messages, nil
}

type DeliveryResult struct {
	ID    string
	Error error
}

// CompleteDeliveries фиксирует результаты доставки.
//
// Параметры:
//   - ctx: контекст для управления жизненным циклом
//   - results: результаты попыток доставки по id сообщений outbox.
//
// Алгоритм работы:
//  1. Доставленные сообщения помечаются DELIVERED и больше не выбираются.
//  2. Для недоставленных увеличивается счетчик попыток и откладывается следующая попытка с экспоненциальной
//     задержкой. После maxAttempts попыток сообщение помечается FAILED и больше не выбирается.
func (s *NotificationService) CompleteDeliveries(ctx context.Context, results []DeliveryResult) error {
	if len(results) == 0 {
		return nil
	}
	locks := make([]kvstore.Key, len(results))
	for i, r := range results {
		locks[i] = repoargs.OutboxKey(r.ID)
	}

	txErr := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[OutboxRepository](tx, repoName(repoargs.OutboxRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		now := time.Now()
		for _, r := range results {
			msg, findErr := repo.FindByID(c, r.ID)
			if findErr != nil {
				if errors.Is(findErr, domain.ErrRecordNotFound) {
					continue
				}
				return findErr //nolint:wrapcheck
			}
			if r.Error == nil {
				msg.Status = domain.OutboxDelivered
				msg.LastError = ""
				msg.UpdatedAt = now
			} else {
				s.scheduleRetry(msg, r.Error, now)
			}
			if err := repo.Save(c, *msg); err != nil {
				return err //nolint:wrapcheck
			}
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("completing deliveries: %w", txErr)
	}
	return nil
}

func (s *NotificationService) scheduleRetry(msg *domain.OutboxMessage, cause error, now time.Time) {
	msg.Attempts++
	msg.LastError = cause.Error()
	msg.UpdatedAt = now
	if msg.Attempts >= s.maxAttempts {
		msg.Status = domain.OutboxFailed
		return
	}
	backoff := float64(s.retryBase) * math.Pow(2, float64(msg.Attempts-1)) //nolint:mnd
	msg.NextAttemptAt = now.Add(time.Duration(jitter(backoff, 0.15, 0.15))) //nolint:mnd
}
