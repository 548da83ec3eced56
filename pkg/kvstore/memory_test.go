package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreContractSuite{newStore: func() Store { return NewMemoryStore() }})
}

func TestMemoryStore_LockWaitCancelled(t *testing.T) {
	store := NewMemoryStore()
	key := NewKey("shipments", "SHP-1")

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.Do(context.Background(), []Key{key}, func(_ context.Context, _ Tx) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	called := false
	err := store.Do(ctx, []Key{key}, func(_ context.Context, _ Tx) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("expected lock wait to be cancelled, got err=%v called=%v", err, called)
	}
}

func TestCanonicalLocks(t *testing.T) {
	got := canonicalLocks([]Key{
		NewKey("shipments", "SHP-1"),
		NewKey("balances", "0xB"),
		NewKey("balances", "0xA"),
		NewKey("balances", "0xB"),
	})
	want := []Key{NewKey("balances", "0xA"), NewKey("balances", "0xB"), NewKey("shipments", "SHP-1")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
