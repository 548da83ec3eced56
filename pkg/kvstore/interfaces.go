// Package kvstore описывает хранилище JSON-записей "ключ-значение" с транзакциями, сериализуемыми по набору
// ключей блокировки, и его реализации: в памяти, поверх Postgres и поверх Redis.
package kvstore

import "context"

// Reader чтение записей.
type Reader interface {
	// Get возвращает значение по ключу или ErrNotFound.
	Get(ctx context.Context, key Key) ([]byte, error)
	// List возвращает записи пространства имен namespace, id которых начинается с prefix, отсортированные по id.
	List(ctx context.Context, namespace, prefix string) ([]Entry, error)
}

// Tx транзакция хранилища. Записи становятся видимыми только после успешного завершения Store.Do.
type Tx interface {
	Reader
	Put(ctx context.Context, key Key, value []byte) error
	Delete(ctx context.Context, key Key) error
}

// TxFunc тело транзакции. Может быть вызвана повторно, если хранилище использует оптимистичные блокировки,
// поэтому не должна иметь побочных эффектов вне tx.
type TxFunc func(ctx context.Context, tx Tx) error

type Store interface {
	Reader
	// Do выполняет fn эксклюзивно относительно других вызовов Do, пересекающихся по locks.
	// Если fn вернула ошибку, ни одна запись не сохраняется.
	Do(ctx context.Context, locks []Key, fn TxFunc) error
	Close() error
}
