package kvrepo

import (
	"context"
	"slices"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type OutboxRepository struct {
	tx kvstore.Tx
}

func NewOutboxRepository(tx kvstore.Tx) *OutboxRepository {
	return &OutboxRepository{tx: tx}
}

func (o *OutboxRepository) Save(ctx context.Context, msg domain.OutboxMessage) error {
	return convertErr(putRecord(ctx, o.tx, repoargs.OutboxKey(msg.ID), msg), "saving outbox message %s", msg.ID)
}

func (o *OutboxRepository) FindByID(ctx context.Context, id string) (*domain.OutboxMessage, error) {
	msg, err := getRecord[domain.OutboxMessage](ctx, o.tx, repoargs.OutboxKey(id))
	if err != nil {
		return nil, convertErr(err, "finding outbox message %s", id)
	}
	return msg, nil
}

// List возвращает не более args.Limit сообщений в статусе args.Status, срок попытки которых наступил,
// старые первыми.
func (o *OutboxRepository) List(ctx context.Context, args repoargs.ListOutbox) ([]domain.OutboxMessage, error) {
	messages, err := listRecords[domain.OutboxMessage](ctx, o.tx, repoargs.NamespaceOutbox, "")
	if err != nil {
		return nil, convertErr(err, "listing outbox")
	}
	messages = slices.DeleteFunc(messages, func(msg domain.OutboxMessage) bool {
		return msg.Status != args.Status || msg.NextAttemptAt.After(args.DueBefore)
	})
	slices.SortStableFunc(messages, func(a, b domain.OutboxMessage) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if args.Limit > 0 && uint(len(messages)) > args.Limit {
		messages = messages[:args.Limit]
	}
	return messages, nil
}
