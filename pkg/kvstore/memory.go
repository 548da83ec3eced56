package kvstore

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore хранилище в памяти процесса. Каждый ключ блокировки представлен семафором, поэтому
// ожидание блокировки прерывается отменой контекста.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[Key][]byte

	locksMu sync.Mutex
	locks   map[Key]*keyLock
}

type keyLock struct {
	sem  chan struct{}
	refs int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[Key][]byte),
		locks: make(map[Key]*keyLock),
	}
}

func (m *MemoryStore) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) List(_ context.Context, namespace, prefix string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []Entry
	for k, v := range m.data {
		if k.Namespace == namespace && strings.HasPrefix(k.ID, prefix) {
			entries = append(entries, Entry{Key: k, Value: slices.Clone(v)})
		}
	}
	sortEntries(entries)
	return entries, nil
}

// Do захватывает блокировки в каноническом порядке, выполняет fn над буфером изменений и применяет буфер
// целиком под эксклюзивной блокировкой данных.
func (m *MemoryStore) Do(ctx context.Context, locks []Key, fn TxFunc) error {
	keys := canonicalLocks(locks)
	acquired := make([]Key, 0, len(keys))
	defer func() {
		for i := len(acquired) - 1; i >= 0; i-- {
			m.release(acquired[i])
		}
	}()

	for _, k := range keys {
		if err := m.acquire(ctx, k); err != nil {
			return err
		}
		acquired = append(acquired, k)
	}

	tx := &memoryTx{store: m, staged: make(map[Key]stagedWrite)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, w := range tx.staged {
		if w.deleted {
			delete(m.data, k)
			continue
		}
		m.data[k] = w.value
	}
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) acquire(ctx context.Context, key Key) error {
	m.locksMu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyLock{sem: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	m.locksMu.Unlock()

	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.unref(key, l)
		return ctx.Err() //nolint:wrapcheck
	}
}

func (m *MemoryStore) release(key Key) {
	m.locksMu.Lock()
	l := m.locks[key]
	m.locksMu.Unlock()

	<-l.sem
	m.unref(key, l)
}

func (m *MemoryStore) unref(key Key, l *keyLock) {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}

type stagedWrite struct {
	value   []byte
	deleted bool
}

type memoryTx struct {
	store  *MemoryStore
	staged map[Key]stagedWrite
}

func (t *memoryTx) Get(ctx context.Context, key Key) ([]byte, error) {
	if w, ok := t.staged[key]; ok {
		if w.deleted {
			return nil, ErrNotFound
		}
		return slices.Clone(w.value), nil
	}
	return t.store.Get(ctx, key)
}

func (t *memoryTx) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	committed, err := t.store.List(ctx, namespace, prefix)
	if err != nil {
		return nil, err
	}
	return mergeStaged(committed, t.staged, namespace, prefix), nil
}

func (t *memoryTx) Put(_ context.Context, key Key, value []byte) error {
	t.staged[key] = stagedWrite{value: slices.Clone(value)}
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key Key) error {
	t.staged[key] = stagedWrite{deleted: true}
	return nil
}

// mergeStaged накладывает незафиксированные изменения транзакции на прочитанные записи.
func mergeStaged(committed []Entry, staged map[Key]stagedWrite, namespace, prefix string) []Entry {
	res := make([]Entry, 0, len(committed))
	for _, e := range committed {
		if _, ok := staged[e.Key]; !ok {
			res = append(res, e)
		}
	}
	for k, w := range staged {
		if w.deleted || k.Namespace != namespace || !strings.HasPrefix(k.ID, prefix) {
			continue
		}
		res = append(res, Entry{Key: k, Value: slices.Clone(w.value)})
	}
	sortEntries(res)
	return res
}
