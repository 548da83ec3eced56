package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/internal/service/tokens"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/fsdevblog/escrow-ledger/pkg/uow"
	"github.com/shopspring/decimal"
)

const JWTTokenExpire = 24 * time.Hour

type IdentityService struct {
	uow            uow.UOW
	profileRepo    ProfileRepository
	balanceRepo    BalanceRepository
	notifier       *notifier
	seedBalance    decimal.Decimal
	adminAccounts  []string
	jwtTokenSecret []byte
}

type IdentityServiceArgs struct {
	SeedBalance    decimal.Decimal
	AdminAccounts  []string
	JWTTokenSecret []byte
}

func NewIdentityService(u uow.UOW, n *notifier, args IdentityServiceArgs) (*IdentityService, error) {
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, repoName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err
	}
	balanceRepo, err := uow.GetRepositoryAs[BalanceRepository](u, repoName(repoargs.BalanceRepoName))
	if err != nil {
		return nil, err
	}
	return &IdentityService{
		uow:            u,
		profileRepo:    profileRepo,
		balanceRepo:    balanceRepo,
		notifier:       n,
		seedBalance:    args.SeedBalance,
		adminAccounts:  args.AdminAccounts,
		jwtTokenSecret: args.JWTTokenSecret,
	}, nil
}

type ConnectResult struct {
	Account string
	Balance decimal.Decimal
	Token   string
	// Seeded true, если при этом подключении счет получил стартовый баланс.
	Seeded bool
}

// Connect подключает счет account (или создает новый, если account пустой) и выпускает для него токен.
// Стартовый баланс начисляется ровно один раз на идентификатор: отметка о начислении и баланс пишутся
// одной транзакцией под блокировками обоих ключей.
func (s *IdentityService) Connect(ctx context.Context, account string) (*ConnectResult, error) {
	if account == "" {
		account = generateAccount()
	}
	res := ConnectResult{Account: account}

	locks := []kvstore.Key{repoargs.SeedKey(account), repoargs.BalanceKey(account)}
	txErr := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		res.Seeded = false
		repo, repoErr := uow.GetAs[BalanceRepository](tx, repoName(repoargs.BalanceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		_, grantErr := repo.FindSeedGrant(c, account)
		switch {
		case grantErr == nil:
		case errors.Is(grantErr, domain.ErrRecordNotFound):
			if s.seedBalance.IsPositive() {
				if err := credit(c, tx, account, s.seedBalance); err != nil {
					return err
				}
			}
			if err := repo.CreateSeedGrant(c, domain.SeedGrant{
				Account:   account,
				Amount:    s.seedBalance,
				GrantedAt: time.Now(),
			}); err != nil {
				return err //nolint:wrapcheck
			}
			res.Seeded = true
		default:
			return grantErr //nolint:wrapcheck
		}

		balance, balanceErr := readBalance(c, repo, account)
		if balanceErr != nil {
			return balanceErr
		}
		res.Balance = balance
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("connecting identity: %w", txErr)
	}

	token, tokenErr := tokens.GenerateAccountJWT(account, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, fmt.Errorf("connecting identity: %w", tokenErr)
	}
	res.Token = token
	return &res, nil
}

type RegisterProfileArgs struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Role    domain.Role
}

// Register создает профиль или заменяет его изменяемые поля. Статус KYC и документы сохраняются: их меняет
// только проверка. Роль ADMIN доступна лишь счетам из списка администраторов.
func (s *IdentityService) Register(
	ctx context.Context,
	account string,
	args RegisterProfileArgs,
) (*domain.Profile, error) {
	if args.Role == domain.RoleAdmin && !slices.Contains(s.adminAccounts, account) {
		return nil, fmt.Errorf("registering profile: %w: admin role is not allowed", domain.ErrForbidden)
	}

	var profile domain.Profile
	locks := []kvstore.Key{repoargs.ProfileKey(account)}
	txErr := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[ProfileRepository](tx, repoName(repoargs.ProfileRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		now := time.Now()
		existing, findErr := repo.FindByAccount(c, account)
		switch {
		case findErr == nil:
			profile = *existing
		case errors.Is(findErr, domain.ErrRecordNotFound):
			profile = domain.Profile{
				Account:   account,
				KycStatus: domain.KycNotStarted,
				CreatedAt: now,
			}
		default:
			return findErr //nolint:wrapcheck
		}

		profile.Name = args.Name
		profile.Email = args.Email
		profile.Phone = args.Phone
		profile.Company = args.Company
		profile.Role = args.Role
		profile.UpdatedAt = now
		return repo.Save(c, profile) //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, fmt.Errorf("registering profile: %w", txErr)
	}
	return &profile, nil
}

// Lookup возвращает профиль или domain.ErrRecordNotFound.
func (s *IdentityService) Lookup(ctx context.Context, account string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("looking up profile: %w", err)
	}
	return profile, nil
}

// SetKyc меняет статус KYC счета account. Вызывающий caller должен быть зарегистрирован с ролью ADMIN.
// Счет получает уведомление о новом статусе.
func (s *IdentityService) SetKyc(
	ctx context.Context,
	caller, account string,
	status domain.KycStatus,
) (*domain.Profile, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, fmt.Errorf("setting kyc: %w", err)
	}
	if !isKnownKycStatus(status) {
		return nil, fmt.Errorf("setting kyc: %w", domain.NewTransitionError("kyc", "", string(status)))
	}

	var profile domain.Profile
	nt := kycNote(account, status)
	txErr := s.uow.Do(ctx, []kvstore.Key{repoargs.ProfileKey(account)}, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[ProfileRepository](tx, repoName(repoargs.ProfileRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		existing, findErr := repo.FindByAccount(c, account)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		profile = *existing
		profile.KycStatus = status
		profile.UpdatedAt = time.Now()
		if err := repo.Save(c, profile); err != nil {
			return err //nolint:wrapcheck
		}
		return s.notifier.post(c, tx, nt)
	})
	if txErr != nil {
		return nil, fmt.Errorf("setting kyc: %w", txErr)
	}
	s.notifier.committed([]note{nt})
	return &profile, nil
}

// SubmitKyc отправляет документы счета на проверку: статус становится PENDING.
func (s *IdentityService) SubmitKyc(
	ctx context.Context,
	account string,
	docs domain.KycDocuments,
) (*domain.Profile, error) {
	var profile domain.Profile
	nt := note{
		recipient: account,
		title:     "KYC Submitted",
		message:   "Your documents were submitted and are waiting for review.",
		severity:  domain.SeverityInfo,
	}
	txErr := s.uow.Do(ctx, []kvstore.Key{repoargs.ProfileKey(account)}, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[ProfileRepository](tx, repoName(repoargs.ProfileRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		existing, findErr := repo.FindByAccount(c, account)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		profile = *existing
		docs.SubmittedAt = time.Now()
		if err := profile.SubmitKyc(docs); err != nil {
			return err //nolint:wrapcheck
		}
		profile.UpdatedAt = docs.SubmittedAt
		if err := repo.Save(c, profile); err != nil {
			return err //nolint:wrapcheck
		}
		return s.notifier.post(c, tx, nt)
	})
	if txErr != nil {
		return nil, fmt.Errorf("submitting kyc: %w", txErr)
	}
	s.notifier.committed([]note{nt})
	return &profile, nil
}

// ListProfiles список профилей для администратора, опционально по статусу KYC.
func (s *IdentityService) ListProfiles(
	ctx context.Context,
	caller string,
	status domain.KycStatus,
) ([]domain.Profile, error) {
	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	profiles, err := s.profileRepo.List(ctx, repoargs.ListProfiles{KycStatus: status})
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return profiles, nil
}

func (s *IdentityService) requireAdmin(ctx context.Context, caller string) error {
	admin, err := isAdmin(ctx, s.profileRepo, caller)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("%w: admin role required", domain.ErrForbidden)
	}
	return nil
}

func isKnownKycStatus(status domain.KycStatus) bool {
	switch status {
	case domain.KycNotStarted, domain.KycPending, domain.KycVerified, domain.KycRejected:
		return true
	default:
		return false
	}
}

func kycNote(account string, status domain.KycStatus) note {
	nt := note{
		recipient: account,
		title:     "KYC Status Update",
		message:   fmt.Sprintf("Your KYC status is now %s.", status),
		severity:  domain.SeverityInfo,
	}
	switch status {
	case domain.KycVerified:
		nt.message = "Your identity has been verified. You can now create escrow contracts."
		nt.severity = domain.SeveritySuccess
	case domain.KycRejected:
		nt.message = "Your KYC verification was rejected. Please resubmit your documents."
		nt.severity = domain.SeverityError
	default:
	}
	return nt
}
