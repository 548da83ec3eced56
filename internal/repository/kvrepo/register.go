package kvrepo

import (
	"fmt"

	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
)

// Register регистрирует все репозитории леджера в unit of work.
func Register(u uow.UOW) error {
	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.BalanceRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewBalanceRepository(tx)
		},
		repoargs.ProfileRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewProfileRepository(tx)
		},
		repoargs.CatalogRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewCatalogRepository(tx)
		},
		repoargs.ShipmentRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewShipmentRepository(tx)
		},
		repoargs.NotificationRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewNotificationRepository(tx)
		},
		repoargs.OutboxRepoName: func(tx kvstore.Tx) uow.Repository {
			return NewOutboxRepository(tx)
		},
	}
	for name, factory := range factories {
		if regErr := u.Register(uow.RepositoryName(name), factory); regErr != nil {
			return fmt.Errorf("register %s repository: %w", name, regErr)
		}
	}
	return nil
}
