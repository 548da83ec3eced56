package kvrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

func getRecord[T any](ctx context.Context, r kvstore.Reader, key kvstore.Key) (*T, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	var rec T
	if jsonErr := json.Unmarshal(raw, &rec); jsonErr != nil {
		return nil, fmt.Errorf("decode %s: %w", key, jsonErr)
	}
	return &rec, nil
}

func putRecord(ctx context.Context, tx kvstore.Tx, key kvstore.Key, rec any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return tx.Put(ctx, key, raw) //nolint:wrapcheck
}

func listRecords[T any](ctx context.Context, r kvstore.Reader, namespace, prefix string) ([]T, error) {
	entries, err := r.List(ctx, namespace, prefix)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	res := make([]T, 0, len(entries))
	for _, e := range entries {
		var rec T
		if jsonErr := json.Unmarshal(e.Value, &rec); jsonErr != nil {
			return nil, fmt.Errorf("decode %s: %w", e.Key, jsonErr)
		}
		res = append(res, rec)
	}
	return res, nil
}
