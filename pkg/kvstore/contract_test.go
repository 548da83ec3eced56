package kvstore

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/stretchr/testify/suite"
)

var errRollback = errors.New("rollback")

// StoreContractSuite общие проверки для всех реализаций Store.
type StoreContractSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
}

func (s *StoreContractSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *StoreContractSuite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *StoreContractSuite) put(key Key, value string) {
	err := s.store.Do(s.T().Context(), []Key{key}, func(ctx context.Context, tx Tx) error {
		return tx.Put(ctx, key, []byte(value))
	})
	s.Require().NoError(err)
}

func (s *StoreContractSuite) TestGetMissing() {
	_, err := s.store.Get(s.T().Context(), NewKey("balances", "nobody"))
	s.ErrorIs(err, ErrNotFound)
}

func (s *StoreContractSuite) TestCommitAndRollback() {
	key := NewKey("balances", "0xA")
	s.put(key, `"10"`)

	err := s.store.Do(s.T().Context(), []Key{key}, func(ctx context.Context, tx Tx) error {
		if putErr := tx.Put(ctx, key, []byte(`"0"`)); putErr != nil {
			return putErr
		}
		// внутри транзакции видна собственная запись
		v, getErr := tx.Get(ctx, key)
		s.Require().NoError(getErr)
		s.JSONEq(`"0"`, string(v))
		return errRollback
	})
	s.Require().ErrorIs(err, errRollback)

	v, getErr := s.store.Get(s.T().Context(), key)
	s.Require().NoError(getErr)
	s.JSONEq(`"10"`, string(v))
}

func (s *StoreContractSuite) TestListAndDelete() {
	s.put(NewKey("notifications", "0xB/2"), `{"n":2}`)
	s.put(NewKey("notifications", "0xB/1"), `{"n":1}`)
	s.put(NewKey("notifications", "0xC/1"), `{"n":3}`)
	s.put(NewKey("shipments", "0xB/1"), `{"n":4}`)

	entries, err := s.store.List(s.T().Context(), "notifications", "0xB/")
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("0xB/1", entries[0].Key.ID)
	s.Equal("0xB/2", entries[1].Key.ID)

	delKey := NewKey("notifications", "0xB/1")
	err = s.store.Do(s.T().Context(), []Key{delKey}, func(ctx context.Context, tx Tx) error {
		if delErr := tx.Delete(ctx, delKey); delErr != nil {
			return delErr
		}
		if putErr := tx.Put(ctx, NewKey("notifications", "0xB/3"), []byte(`{"n":5}`)); putErr != nil {
			return putErr
		}
		inTx, listErr := tx.List(ctx, "notifications", "0xB/")
		s.Require().NoError(listErr)
		s.Require().Len(inTx, 2)
		s.Equal("0xB/2", inTx[0].Key.ID)
		s.Equal("0xB/3", inTx[1].Key.ID)
		return nil
	})
	s.Require().NoError(err)

	all, listErr := s.store.List(s.T().Context(), "notifications", "")
	s.Require().NoError(listErr)
	s.Len(all, 3)
}

// TestSerializedIncrements конкурентные read-modify-write под одним ключом блокировки не теряют обновлений.
func (s *StoreContractSuite) TestSerializedIncrements() {
	key := NewKey("balances", "counter")
	s.put(key, "0")

	const workers = 20
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			err := s.store.Do(context.Background(), []Key{key}, func(ctx context.Context, tx Tx) error {
				v, getErr := tx.Get(ctx, key)
				if getErr != nil {
					return getErr
				}
				n, convErr := strconv.Atoi(string(v))
				if convErr != nil {
					return convErr
				}
				return tx.Put(ctx, key, []byte(strconv.Itoa(n+1)))
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	v, err := s.store.Get(s.T().Context(), key)
	s.Require().NoError(err)
	s.Equal(strconv.Itoa(workers), string(v))
}

// TestOppositeLockOrder транзакции с одинаковым набором ключей в разном порядке не взаимоблокируются.
func (s *StoreContractSuite) TestOppositeLockOrder() {
	a, b := NewKey("balances", "a"), NewKey("balances", "b")
	s.put(a, "0")
	s.put(b, "0")

	wg := new(sync.WaitGroup)
	const rounds = 10
	wg.Add(rounds * 2)
	for range rounds {
		for _, locks := range [][]Key{{a, b}, {b, a}} {
			go func() {
				defer wg.Done()
				err := s.store.Do(context.Background(), locks, func(ctx context.Context, tx Tx) error {
					for _, k := range locks {
						v, getErr := tx.Get(ctx, k)
						if getErr != nil {
							return getErr
						}
						n, _ := strconv.Atoi(string(v))
						if putErr := tx.Put(ctx, k, []byte(strconv.Itoa(n+1))); putErr != nil {
							return putErr
						}
					}
					return nil
				})
				s.NoError(err)
			}()
		}
	}
	wg.Wait()

	for _, k := range []Key{a, b} {
		v, err := s.store.Get(s.T().Context(), k)
		s.Require().NoError(err)
		s.Equal(strconv.Itoa(rounds*2), string(v))
	}
}
