package kvrepo

import (
	"context"
	"slices"
	"strings"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type NotificationRepository struct {
	tx kvstore.Tx
}

func NewNotificationRepository(tx kvstore.Tx) *NotificationRepository {
	return &NotificationRepository{tx: tx}
}

func (n *NotificationRepository) Create(ctx context.Context, notification domain.Notification) error {
	key := repoargs.NotificationKey(notification.Recipient, notification.ID)
	return convertErr(putRecord(ctx, n.tx, key, notification), "creating notification %s", notification.ID)
}

// ListFor возвращает уведомления адресата, новые первыми.
func (n *NotificationRepository) ListFor(ctx context.Context, recipient string) ([]domain.Notification, error) {
	prefix := repoargs.NotificationPrefix(recipient)
	notifications, err := listRecords[domain.Notification](ctx, n.tx, repoargs.NamespaceNotifications, prefix)
	if err != nil {
		return nil, convertErr(err, "listing notifications for %s", recipient)
	}
	// префикс может совпасть у адресов вида "a" и "a/b".
	notifications = slices.DeleteFunc(notifications, func(item domain.Notification) bool {
		return item.Recipient != recipient
	})
	slices.SortStableFunc(notifications, func(a, b domain.Notification) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return notifications, nil
}
