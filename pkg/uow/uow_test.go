package uow

import (
	"context"
	"testing"

	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/stretchr/testify/suite"
)

type counterRepo struct {
	tx kvstore.Tx
}

var counterKey = kvstore.NewKey("counters", "c")

func (r *counterRepo) Set(ctx context.Context, v string) error {
	return r.tx.Put(ctx, counterKey, []byte(v))
}

type UOWTestSuite struct {
	suite.Suite
	store *kvstore.MemoryStore
	uow   *UnitOfWork
}

func TestUOWSuite(t *testing.T) {
	suite.Run(t, new(UOWTestSuite))
}

func (s *UOWTestSuite) SetupTest() {
	s.store = kvstore.NewMemoryStore()
	s.uow = NewUnitOfWork(s.store)
	s.Require().NoError(s.uow.Register("counter", func(tx kvstore.Tx) Repository {
		return &counterRepo{tx: tx}
	}))
}

func (s *UOWTestSuite) TestRegisterTwice() {
	err := s.uow.Register("counter", func(tx kvstore.Tx) Repository { return nil })
	s.ErrorIs(err, ErrRepositoryAlreadyRegistered)
}

func (s *UOWTestSuite) TestDo() {
	err := s.uow.Do(s.T().Context(), []kvstore.Key{counterKey}, func(ctx context.Context, tx TX) error {
		repo, repoErr := GetAs[*counterRepo](tx, "counter")
		if repoErr != nil {
			return repoErr
		}
		return repo.Set(ctx, "1")
	})
	s.Require().NoError(err)

	v, getErr := s.store.Get(s.T().Context(), counterKey)
	s.Require().NoError(getErr)
	s.Equal("1", string(v))
}

func (s *UOWTestSuite) TestGetRepositoryIsReadOnly() {
	repo, err := GetRepositoryAs[*counterRepo](s.uow, "counter")
	s.Require().NoError(err)
	s.ErrorIs(repo.Set(s.T().Context(), "2"), kvstore.ErrReadOnly)

	_, err = GetRepositoryAs[*counterRepo](s.uow, "missing")
	s.ErrorIs(err, ErrRepositoryNotRegistered)

	_, err = GetRepositoryAs[string](s.uow, "counter")
	s.ErrorIs(err, ErrInvalidRepositoryType)
}
