package kvstore

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const (
	pgGetQuery  = `SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2`
	pgListQuery = `SELECT key, value FROM kv_entries WHERE namespace = $1 AND starts_with(key, $2) ORDER BY key COLLATE "C"`
	pgPutQuery  = `INSERT INTO kv_entries (namespace, key, value, updated_at) VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	pgDeleteQuery = `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`
	pgLockQuery   = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
)

// pgQuerier общая часть pgxpool.Pool и pgx.Tx.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore хранит записи в таблице kv_entries. Блокировки ключей реализованы транзакционными
// advisory-локами, которые освобождаются при завершении транзакции.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Get(ctx context.Context, key Key) ([]byte, error) {
	return pgGet(ctx, p.pool, key)
}

func (p *PostgresStore) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	return pgList(ctx, p.pool, namespace, prefix)
}

//nolint:nonamedreturns
func (p *PostgresStore) Do(ctx context.Context, locks []Key, fn TxFunc) (err error) {
	tx, txErr := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if txErr != nil {
		return errors.Wrap(txErr, "[kvstore/postgres] begin tx")
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !stderrors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = stderrors.Join(err, rollbackErr)
		}
	}()

	for _, k := range canonicalLocks(locks) {
		if _, lockErr := tx.Exec(ctx, pgLockQuery, k.String()); lockErr != nil {
			return errors.Wrapf(lockErr, "[kvstore/postgres] lock %s", k)
		}
	}

	if fnErr := fn(ctx, &postgresTx{tx: tx}); fnErr != nil {
		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errors.Wrap(commitErr, "[kvstore/postgres] commit")
	}
	return nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

type postgresTx struct {
	tx pgx.Tx
}

func (t *postgresTx) Get(ctx context.Context, key Key) ([]byte, error) {
	return pgGet(ctx, t.tx, key)
}

func (t *postgresTx) List(ctx context.Context, namespace, prefix string) ([]Entry, error) {
	return pgList(ctx, t.tx, namespace, prefix)
}

func (t *postgresTx) Put(ctx context.Context, key Key, value []byte) error {
	if _, err := t.tx.Exec(ctx, pgPutQuery, key.Namespace, key.ID, value); err != nil {
		return errors.Wrapf(err, "[kvstore/postgres] put %s", key)
	}
	return nil
}

func (t *postgresTx) Delete(ctx context.Context, key Key) error {
	if _, err := t.tx.Exec(ctx, pgDeleteQuery, key.Namespace, key.ID); err != nil {
		return errors.Wrapf(err, "[kvstore/postgres] delete %s", key)
	}
	return nil
}

func pgGet(ctx context.Context, q pgQuerier, key Key) ([]byte, error) {
	var value []byte
	if err := q.QueryRow(ctx, pgGetQuery, key.Namespace, key.ID).Scan(&value); err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "[kvstore/postgres] get %s", key)
	}
	return value, nil
}

func pgList(ctx context.Context, q pgQuerier, namespace, prefix string) ([]Entry, error) {
	rows, err := q.Query(ctx, pgListQuery, namespace, prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "[kvstore/postgres] list %s", namespace)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var id string
		var value []byte
		if scanErr := rows.Scan(&id, &value); scanErr != nil {
			return nil, errors.Wrapf(scanErr, "[kvstore/postgres] scan %s", namespace)
		}
		entries = append(entries, Entry{Key: NewKey(namespace, id), Value: value})
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Wrapf(rowsErr, "[kvstore/postgres] list %s", namespace)
	}
	return entries, nil
}
