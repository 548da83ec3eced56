package service

import (
	"context"
	"encoding/hex"
	"errors"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/google/uuid"
)

const (
	ShipmentIDPrefix = "SHP-"
	OrderIDPrefix    = "ORD-"
	ItemIDPrefix     = "ITM-"

	idSuffixLength = 9
)

// jitter возвращает число, рассыпавшееся относительно value на случайный процент в пределах
// [1-minPercent, 1+maxPercent].
// Например, если minPercent=0.15, maxPercent=0.15, получим диапазон [0.85*value, 1.15*value].
//
// minPercent и maxPercent должны быть >= 0 (0.1 = 10%). Если указано иное, значение выставится в 0.15.
func jitter(value, minPercent, maxPercent float64) float64 {
	if minPercent < 0 || maxPercent < 0 {
		minPercent = 0.15
		maxPercent = 0.15
	}
	factor := 1 - minPercent + rand.Float64()*(minPercent+maxPercent) // nolint:gosec
	return value * factor
}

// generateID возвращает идентификатор вида <prefix>XXXXXXXXX, где X - символы base36 в верхнем регистре.
func generateID(prefix string) string {
	u := uuid.New()
	s := strings.ToUpper(new(big.Int).SetBytes(u[:]).Text(36)) //nolint:mnd
	if len(s) < idSuffixLength {
		s = strings.Repeat("0", idSuffixLength-len(s)) + s
	}
	return prefix + s[len(s)-idSuffixLength:]
}

// generateAccount возвращает новый адрес счета вида 0x<32 hex>.
func generateAccount() string {
	u := uuid.New()
	return "0x" + strings.ToUpper(hex.EncodeToString(u[:]))
}

func repoName(name repoargs.RepositoryName) uow.RepositoryName {
	return uow.RepositoryName(name)
}

// isAdmin проверяет, что account зарегистрирован с ролью ADMIN.
func isAdmin(ctx context.Context, repo ProfileRepository, account string) (bool, error) {
	profile, err := repo.FindByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}
		return false, err //nolint:wrapcheck
	}
	return profile.Role == domain.RoleAdmin, nil
}
