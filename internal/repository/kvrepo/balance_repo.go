package kvrepo

import (
	"context"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/shopspring/decimal"
)

type BalanceRepository struct {
	tx kvstore.Tx
}

func NewBalanceRepository(tx kvstore.Tx) *BalanceRepository {
	return &BalanceRepository{tx: tx}
}

// GetBalance возвращает баланс счета или domain.ErrRecordNotFound, если счет ни разу не пополнялся.
func (b *BalanceRepository) GetBalance(ctx context.Context, account string) (*domain.Balance, error) {
	balance, err := getRecord[domain.Balance](ctx, b.tx, repoargs.BalanceKey(account))
	if err != nil {
		return nil, convertErr(err, "getting balance of %s", account)
	}
	return balance, nil
}

func (b *BalanceRepository) SetBalance(ctx context.Context, account string, amount decimal.Decimal) error {
	err := putRecord(ctx, b.tx, repoargs.BalanceKey(account), domain.Balance{
		Account:   account,
		Amount:    amount,
		UpdatedAt: time.Now(),
	})
	return convertErr(err, "setting balance of %s", account)
}

func (b *BalanceRepository) ListBalances(ctx context.Context) ([]domain.Balance, error) {
	balances, err := listRecords[domain.Balance](ctx, b.tx, repoargs.NamespaceBalances, "")
	if err != nil {
		return nil, convertErr(err, "listing balances")
	}
	return balances, nil
}

// FindSeedGrant возвращает отметку стартового начисления или domain.ErrRecordNotFound.
func (b *BalanceRepository) FindSeedGrant(ctx context.Context, account string) (*domain.SeedGrant, error) {
	grant, err := getRecord[domain.SeedGrant](ctx, b.tx, repoargs.SeedKey(account))
	if err != nil {
		return nil, convertErr(err, "finding seed grant of %s", account)
	}
	return grant, nil
}

func (b *BalanceRepository) CreateSeedGrant(ctx context.Context, grant domain.SeedGrant) error {
	err := putRecord(ctx, b.tx, repoargs.SeedKey(grant.Account), grant)
	return convertErr(err, "creating seed grant of %s", grant.Account)
}
