package uow

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type TX interface {
	Get(name RepositoryName) (Repository, error)
}

type UOW interface {
	Register(name RepositoryName, factory RepositoryFactory) error
	Do(ctx context.Context, locks []kvstore.Key, fn func(ctx context.Context, tx TX) error) error
	GetRepository(name RepositoryName) (Repository, error)
}
