package kvrepo

import (
	"context"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
)

type ProfileRepository struct {
	tx kvstore.Tx
}

func NewProfileRepository(tx kvstore.Tx) *ProfileRepository {
	return &ProfileRepository{tx: tx}
}

// FindByAccount ищет профиль. Возвращает ошибку domain.ErrRecordNotFound если запись не найдена,
// во всех других случаях - domain.ErrUnknown.
func (p *ProfileRepository) FindByAccount(ctx context.Context, account string) (*domain.Profile, error) {
	profile, err := getRecord[domain.Profile](ctx, p.tx, repoargs.ProfileKey(account))
	if err != nil {
		return nil, convertErr(err, "finding profile %s", account)
	}
	return profile, nil
}

func (p *ProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	err := putRecord(ctx, p.tx, repoargs.ProfileKey(profile.Account), profile)
	return convertErr(err, "saving profile %s", profile.Account)
}

func (p *ProfileRepository) List(ctx context.Context, args repoargs.ListProfiles) ([]domain.Profile, error) {
	profiles, err := listRecords[domain.Profile](ctx, p.tx, repoargs.NamespaceProfiles, "")
	if err != nil {
		return nil, convertErr(err, "listing profiles")
	}
	if args.KycStatus == "" {
		return profiles, nil
	}
	filtered := profiles[:0]
	for _, profile := range profiles {
		if profile.KycStatus == args.KycStatus {
			filtered = append(filtered, profile)
		}
	}
	return filtered, nil
}
