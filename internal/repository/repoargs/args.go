package repoargs

import (
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
)

// ListOutbox выборка сообщений outbox, готовых к доставке.
type ListOutbox struct {
	Status domain.OutboxStatus
	// DueBefore сообщения с NextAttemptAt позже этого момента пропускаются.
	DueBefore time.Time
	Limit     uint
}

// ListProfiles фильтр профилей. Пустой KycStatus означает все профили.
type ListProfiles struct {
	KycStatus domain.KycStatus
}
