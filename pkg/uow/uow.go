// Package uow связывает именованные репозитории с транзакцией хранилища kvstore.
package uow

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(kvstore.Tx) Repository

type UnitOfWork struct {
	store        kvstore.Store
	repositories map[RepositoryName]RepositoryFactory
}

func NewUnitOfWork(store kvstore.Store) *UnitOfWork {
	return &UnitOfWork{
		store:        store,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
}

// Register регистрирует репозиторий у себя в мапе. Если репозиторий уже зарегистрирован, возвращает
// ошибку ErrRepositoryAlreadyRegistered.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет функцию fn внутри транзакции хранилища, удерживая блокировки locks.
// Все записи fn применяются вместе, либо не применяется ни одна.
func (u *UnitOfWork) Do(ctx context.Context, locks []kvstore.Key, fn func(context.Context, TX) error) error {
	return u.store.Do(ctx, locks, func(c context.Context, tx kvstore.Tx) error { //nolint:wrapcheck
		return fn(c, NewTransaction(tx, u.repositories))
	})
}

// GetRepository возвращает репозиторий только для чтения или ошибку ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(readOnlyTx{Reader: u.store}), nil
	}
	return nil, ErrRepositoryNotRegistered
}

// GetRepositoryAs возвращает репозиторий по имени name и приводит его к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var res T
	repo, err := u.GetRepository(name)
	if err != nil {
		return res, err
	}
	r, ok := repo.(T)

	if !ok {
		return res, ErrInvalidRepositoryType
	}

	return r, nil
}
