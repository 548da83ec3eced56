package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/metrics"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/shopspring/decimal"
)

// LedgerService балансы счетов. Каждая операция над счетом выполняется под блокировкой ключа баланса,
// поэтому две операции над одним счетом никогда не видят один и тот же исходный баланс.
type LedgerService struct {
	uow         uow.UOW
	balanceRepo BalanceRepository
	metrics     *metrics.Metrics
}

func NewLedgerService(u uow.UOW, m *metrics.Metrics) (*LedgerService, error) {
	balanceRepo, err := uow.GetRepositoryAs[BalanceRepository](u, repoName(repoargs.BalanceRepoName))
	if err != nil {
		return nil, err
	}
	return &LedgerService{
		uow:         u,
		balanceRepo: balanceRepo,
		metrics:     m,
	}, nil
}

// GetBalance возвращает баланс счета. Для неизвестного счета возвращает ноль, не создавая его.
func (l *LedgerService) GetBalance(ctx context.Context, account string) (decimal.Decimal, error) {
	amount, err := readBalance(ctx, l.balanceRepo, account)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting balance: %w", err)
	}
	return amount, nil
}

// Credit зачисляет amount > 0 на счет.
func (l *LedgerService) Credit(ctx context.Context, account string, amount decimal.Decimal) error {
	locks := []kvstore.Key{repoargs.BalanceKey(account)}
	if err := l.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		return credit(c, tx, account, amount)
	}); err != nil {
		return fmt.Errorf("credit: %w", err)
	}
	l.metrics.AddFundsMoved("credit", amount.InexactFloat64())
	return nil
}

// Debit списывает amount > 0 со счета или возвращает domain.ErrInsufficientFunds.
func (l *LedgerService) Debit(ctx context.Context, account string, amount decimal.Decimal) error {
	locks := []kvstore.Key{repoargs.BalanceKey(account)}
	if err := l.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		return debit(c, tx, account, amount)
	}); err != nil {
		l.metrics.IncRejection("debit", rejectionReason(err))
		return fmt.Errorf("debit: %w", err)
	}
	l.metrics.AddFundsMoved("debit", amount.InexactFloat64())
	return nil
}

// Transfer переводит amount между счетами. Списание и зачисление фиксируются одной транзакцией под
// блокировками обоих счетов: наблюдатель видит либо оба изменения, либо ни одного.
func (l *LedgerService) Transfer(ctx context.Context, from, to string, amount decimal.Decimal) error {
	start := time.Now()
	defer l.metrics.ObserveOperation("transfer", start)

	locks := []kvstore.Key{repoargs.BalanceKey(from), repoargs.BalanceKey(to)}
	if err := l.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		return transfer(c, tx, from, to, amount)
	}); err != nil {
		l.metrics.IncRejection("transfer", rejectionReason(err))
		return fmt.Errorf("transfer: %w", err)
	}
	l.metrics.AddFundsMoved("transfer", amount.InexactFloat64())
	return nil
}

// TotalBalance сумма всех балансов.
func (l *LedgerService) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	balances, err := l.balanceRepo.ListBalances(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total balance: %w", err)
	}
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Amount)
	}
	return total, nil
}

// Функции ниже работают внутри уже открытой транзакции. Вызывающая сторона обязана держать блокировку
// ключа баланса каждого затрагиваемого счета.

func credit(ctx context.Context, tx uow.TX, account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	repo, repoErr := uow.GetAs[BalanceRepository](tx, repoName(repoargs.BalanceRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	current, err := readBalance(ctx, repo, account)
	if err != nil {
		return err
	}
	return repo.SetBalance(ctx, account, current.Add(amount)) //nolint:wrapcheck
}

func debit(ctx context.Context, tx uow.TX, account string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}
	repo, repoErr := uow.GetAs[BalanceRepository](tx, repoName(repoargs.BalanceRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	current, err := readBalance(ctx, repo, account)
	if err != nil {
		return err
	}
	if current.LessThan(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", domain.ErrInsufficientFunds, current, amount)
	}
	return repo.SetBalance(ctx, account, current.Sub(amount)) //nolint:wrapcheck
}

func transfer(ctx context.Context, tx uow.TX, from, to string, amount decimal.Decimal) error {
	if err := debit(ctx, tx, from, amount); err != nil {
		return err
	}
	return credit(ctx, tx, to, amount)
}

func readBalance(ctx context.Context, repo BalanceRepository, account string) (decimal.Decimal, error) {
	balance, err := repo.GetBalance(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err //nolint:wrapcheck
	}
	return balance.Amount, nil
}

// rejectionReason метка метрики отказов по виду доменной ошибки.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrKycRequired):
		return "kyc_required"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrDuplicateKey):
		return "duplicate"
	default:
		return "internal"
	}
}
