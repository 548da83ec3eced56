package uow

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type Transaction struct {
	repositories map[RepositoryName]RepositoryFactory
	tx           kvstore.Tx
}

func NewTransaction(tx kvstore.Tx, repositories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{
		repositories: repositories,
		tx:           tx,
	}
}

// Get возвращает репозиторий, привязанный к транзакции, или ошибку ErrRepositoryNotRegistered.
func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	if repo, ok := t.repositories[name]; ok {
		return repo(t.tx), nil
	}
	return nil, ErrRepositoryNotRegistered
}

// GetAs возвращает зарегистрированный репозиторий с именем name приведенный к типу T
// или ошибки ErrRepositoryNotRegistered в случае не найденного репозитория с указанным name, ErrInvalidRepositoryType.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	repo, err := t.Get(name)
	var res T
	if err != nil {
		return res, err
	}
	res, ok := repo.(T)
	if !ok {
		return res, ErrInvalidRepositoryType
	}
	return res, nil
}

// readOnlyTx адаптер хранилища для репозиториев, полученных вне транзакции. Запись через него запрещена.
type readOnlyTx struct {
	kvstore.Reader
}

func (readOnlyTx) Put(context.Context, kvstore.Key, []byte) error {
	return kvstore.ErrReadOnly
}

func (readOnlyTx) Delete(context.Context, kvstore.Key) error {
	return kvstore.ErrReadOnly
}
