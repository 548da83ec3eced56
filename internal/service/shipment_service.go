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

const (
	dateLayout          = "2006-01-02"
	purchaseDeliveryIn  = 3 * 24 * time.Hour
	purchaseTitlePrefix = "Order: "

	originManual   = "manual"
	originPurchase = "purchase"
)

// ShipmentService оркестрация жизненного цикла отправления. Каждая операция выполняется одной транзакцией под
// блокировками ключа отправления и балансов затронутых счетов: статус, статус оплаты, история, балансы и
// уведомления меняются вместе или не меняются вовсе.
type ShipmentService struct {
	uow            uow.UOW
	shipmentRepo   ShipmentRepository
	profileRepo    ProfileRepository
	catalogRepo    CatalogRepository
	notifier       *notifier
	metrics        *metrics.Metrics
	defaultCourier string
	newID          func(prefix string) string
}

func NewShipmentService(u uow.UOW, n *notifier, m *metrics.Metrics, defaultCourier string) (*ShipmentService, error) {
	shipmentRepo, err := uow.GetRepositoryAs[ShipmentRepository](u, repoName(repoargs.ShipmentRepoName))
	if err != nil {
		return nil, err
	}
	profileRepo, err := uow.GetRepositoryAs[ProfileRepository](u, repoName(repoargs.ProfileRepoName))
	if err != nil {
		return nil, err
	}
	catalogRepo, err := uow.GetRepositoryAs[CatalogRepository](u, repoName(repoargs.CatalogRepoName))
	if err != nil {
		return nil, err
	}
	return &ShipmentService{
		uow:            u,
		shipmentRepo:   shipmentRepo,
		profileRepo:    profileRepo,
		catalogRepo:    catalogRepo,
		notifier:       n,
		metrics:        m,
		defaultCourier: defaultCourier,
		newID:          generateID,
	}, nil
}

type OpenShipmentArgs struct {
	Sender       string
	Receiver     string
	Courier      string
	Title        string
	Description  string
	Category     string
	Weight       decimal.Decimal
	Price        decimal.Decimal
	PickupDate   string
	DeliveryDate string
}

// Open создает отправление по ручному контракту. Отправитель платит: его KYC должен быть VERIFIED, а цена
// списывается с его баланса в той же транзакции, что и создание отправления.
func (s *ShipmentService) Open(ctx context.Context, args OpenShipmentArgs) (*domain.Shipment, error) {
	start := time.Now()
	defer s.metrics.ObserveOperation("open", start)

	if !args.Price.IsPositive() {
		return nil, fmt.Errorf("opening shipment: %w", domain.ErrInvalidAmount)
	}

	shipment := domain.Shipment{
		ID:           s.newID(ShipmentIDPrefix),
		Sender:       args.Sender,
		Receiver:     args.Receiver,
		Courier:      args.Courier,
		Payer:        args.Sender,
		Title:        args.Title,
		Description:  args.Description,
		Category:     args.Category,
		Weight:       args.Weight,
		Price:        args.Price,
		PickupDate:   args.PickupDate,
		DeliveryDate: args.DeliveryDate,
	}
	shipment.Lock(domain.LocationOrigin, domain.MessageFundsLocked, start)

	notes := []note{{
		recipient: shipment.Sender,
		title:     "Contract Created",
		message:   fmt.Sprintf("Shipment %s created. %s locked in escrow.", shipment.ID, shipment.Price),
		severity:  domain.SeveritySuccess,
	}, {
		recipient: shipment.Receiver,
		title:     "Incoming Shipment",
		message:   fmt.Sprintf("You have a new incoming shipment %s.", shipment.ID),
		severity:  domain.SeverityInfo,
	}, {
		recipient: shipment.Courier,
		title:     "New Assignment",
		message:   fmt.Sprintf("Shipment %s assigned. Reward: %s upon delivery.", shipment.ID, shipment.Price),
		severity:  domain.SeverityWarning,
	}}

	locks := []kvstore.Key{
		repoargs.BalanceKey(shipment.Payer),
		repoargs.ProfileKey(shipment.Payer),
		repoargs.ShipmentKey(shipment.ID),
	}
	if err := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		return s.lockFunds(c, tx, &shipment, notes)
	}); err != nil {
		s.metrics.IncRejection("open", rejectionReason(err))
		return nil, fmt.Errorf("opening shipment: %w", err)
	}

	s.committed(originManual, &shipment, notes)
	return &shipment, nil
}

// OpenFromPurchase создает отправление по покупке листинга itemID. Отправителем становится продавец, ценой -
// цена листинга, платит покупатель buyer. courier можно не указывать, тогда назначается курьер по умолчанию.
func (s *ShipmentService) OpenFromPurchase(
	ctx context.Context,
	buyer, itemID, courier string,
) (*domain.Shipment, error) {
	start := time.Now()
	defer s.metrics.ObserveOperation("purchase", start)

	if courier == "" {
		courier = s.defaultCourier
	}
	id := s.newID(OrderIDPrefix)

	var shipment domain.Shipment
	var notes []note
	locks := []kvstore.Key{
		repoargs.BalanceKey(buyer),
		repoargs.ProfileKey(buyer),
		repoargs.ShipmentKey(id),
		repoargs.CatalogKey(itemID),
	}
	txErr := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CatalogRepository](tx, repoName(repoargs.CatalogRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		item, findErr := repo.FindByID(c, itemID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if item.Seller == buyer {
			return fmt.Errorf("%w: cannot purchase own listing", domain.ErrForbidden)
		}

		now := time.Now()
		shipment = domain.Shipment{
			ID:           id,
			Sender:       item.Seller,
			Receiver:     buyer,
			Courier:      courier,
			Payer:        buyer,
			Title:        purchaseTitlePrefix + item.Title,
			Description:  item.Description,
			Category:     item.Category,
			Weight:       decimal.NewFromInt(1),
			Price:        item.Price,
			PickupDate:   now.Format(dateLayout),
			DeliveryDate: now.Add(purchaseDeliveryIn).Format(dateLayout),
		}
		shipment.Lock(domain.LocationMarketplace, domain.MessageOrderPlaced, now)

		notes = []note{{
			recipient: buyer,
			title:     "Order Confirmed",
			message:   fmt.Sprintf("You purchased %s. %s locked in escrow.", item.Title, item.Price),
			severity:  domain.SeveritySuccess,
		}, {
			recipient: item.Seller,
			title:     "New Sale",
			message:   fmt.Sprintf("Order received for %s. Please approve shipment.", item.Title),
			severity:  domain.SeveritySuccess,
		}, {
			recipient: courier,
			title:     "New Assignment",
			message:   fmt.Sprintf("Shipment %s assigned. Reward: %s upon delivery.", id, item.Price),
			severity:  domain.SeverityWarning,
		}}
		return s.lockFunds(c, tx, &shipment, notes)
	})
	if txErr != nil {
		s.metrics.IncRejection("purchase", rejectionReason(txErr))
		return nil, fmt.Errorf("purchasing item: %w", txErr)
	}

	s.committed(originPurchase, &shipment, notes)
	return &shipment, nil
}

// lockFunds общая механика открытия: проверка KYC плательщика, списание цены, сохранение отправления и
// уведомления. Вызывается под блокировками баланса и профиля плательщика и ключа отправления. Существующее
// отправление с тем же id не перезаписывается: возвращается domain.ErrDuplicateKey.
func (s *ShipmentService) lockFunds(ctx context.Context, tx uow.TX, shipment *domain.Shipment, notes []note) error {
	profiles, repoErr := uow.GetAs[ProfileRepository](tx, repoName(repoargs.ProfileRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	profile, findErr := profiles.FindByAccount(ctx, shipment.Payer)
	if findErr != nil && !errors.Is(findErr, domain.ErrRecordNotFound) {
		return findErr //nolint:wrapcheck
	}
	if profile == nil || profile.KycStatus != domain.KycVerified {
		return fmt.Errorf("%w: account %s is not verified", domain.ErrKycRequired, shipment.Payer)
	}

	shipments, repoErr := uow.GetAs[ShipmentRepository](tx, repoName(repoargs.ShipmentRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	_, existsErr := shipments.FindByID(ctx, shipment.ID)
	switch {
	case existsErr == nil:
		return fmt.Errorf("%w: shipment %s", domain.ErrDuplicateKey, shipment.ID)
	case !errors.Is(existsErr, domain.ErrRecordNotFound):
		return existsErr //nolint:wrapcheck
	}

	if err := debit(ctx, tx, shipment.Payer, shipment.Price); err != nil {
		return err
	}
	if err := shipments.Save(ctx, *shipment); err != nil {
		return err //nolint:wrapcheck
	}
	return s.notifier.post(ctx, tx, notes...)
}

// Dispatch переводит отправление из PENDING в IN_TRANSIT. Доступно отправителю и администратору.
func (s *ShipmentService) Dispatch(ctx context.Context, caller, id string) (*domain.Shipment, error) {
	var shipment *domain.Shipment
	var notes []note
	txErr := s.uow.Do(ctx, []kvstore.Key{repoargs.ShipmentKey(id)}, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[ShipmentRepository](tx, repoName(repoargs.ShipmentRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		var findErr error
		shipment, findErr = repo.FindByID(c, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if err := s.authorize(c, tx, caller, shipment.Sender == caller); err != nil {
			return err
		}
		if err := shipment.Dispatch(time.Now()); err != nil {
			return err //nolint:wrapcheck
		}
		if err := repo.Save(c, *shipment); err != nil {
			return err //nolint:wrapcheck
		}
		notes = []note{{
			recipient: shipment.Receiver,
			title:     "Order Shipped",
			message:   fmt.Sprintf("Your order %s has been shipped by the sender!", shipment.Title),
			severity:  domain.SeveritySuccess,
		}, {
			recipient: shipment.Courier,
			title:     "Package Ready",
			message:   fmt.Sprintf("Package %s is ready for pickup at the sender location.", shipment.ID),
			severity:  domain.SeverityWarning,
		}, {
			recipient: shipment.Sender,
			title:     "Dispatch Confirmed",
			message:   fmt.Sprintf("You have approved shipment %s.", shipment.ID),
			severity:  domain.SeverityInfo,
		}}
		return s.notifier.post(c, tx, notes...)
	})
	if txErr != nil {
		s.metrics.IncRejection("dispatch", rejectionReason(txErr))
		return nil, fmt.Errorf("dispatching shipment: %w", txErr)
	}

	s.metrics.IncTransition(string(shipment.Status))
	s.notifier.committed(notes)
	return shipment, nil
}

type AdvanceShipmentArgs struct {
	Caller   string
	ID       string
	Status   domain.ShipmentStatus
	Location string
	Message  string
}

// Advance единственная точка изменения статуса курьером.
//
// Алгоритм работы:
//  1. Читает отправление вне транзакции, чтобы узнать участников: они неизменны, поэтому набор блокировок
//     (отправление, балансы sender и receiver) стабилен.
//  2. Под блокировками перечитывает отправление, проверяет права и выполняет переход.
//  3. Если переход освобождает или возвращает средства, зачисляет их в той же транзакции.
//
// Права: курьер и администратор; отмену также могут выполнить отправитель и получатель.
func (s *ShipmentService) Advance(ctx context.Context, args AdvanceShipmentArgs) (*domain.Shipment, error) {
	start := time.Now()
	defer s.metrics.ObserveOperation("advance", start)

	pre, preErr := s.shipmentRepo.FindByID(ctx, args.ID)
	if preErr != nil {
		return nil, fmt.Errorf("advancing shipment: %w", preErr)
	}

	var shipment *domain.Shipment
	var settlement *domain.Settlement
	var notes []note
	locks := []kvstore.Key{
		repoargs.ShipmentKey(args.ID),
		repoargs.BalanceKey(pre.Sender),
		repoargs.BalanceKey(pre.Receiver),
	}
	txErr := s.uow.Do(ctx, locks, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[ShipmentRepository](tx, repoName(repoargs.ShipmentRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		var findErr error
		shipment, findErr = repo.FindByID(c, args.ID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		participant := shipment.Courier == args.Caller
		if args.Status == domain.ShipmentCancelled {
			participant = participant || shipment.Sender == args.Caller || shipment.Receiver == args.Caller
		}
		if err := s.authorize(c, tx, args.Caller, participant); err != nil {
			return err
		}

		var advErr error
		settlement, advErr = shipment.Advance(args.Status, args.Location, args.Message, time.Now())
		if advErr != nil {
			return advErr //nolint:wrapcheck
		}
		if settlement != nil {
			if err := credit(c, tx, settlement.Account, settlement.Amount); err != nil {
				return err
			}
		}
		if err := repo.Save(c, *shipment); err != nil {
			return err //nolint:wrapcheck
		}
		notes = advanceNotes(shipment, settlement)
		return s.notifier.post(c, tx, notes...)
	})
	if txErr != nil {
		s.metrics.IncRejection("advance", rejectionReason(txErr))
		return nil, fmt.Errorf("advancing shipment: %w", txErr)
	}

	s.metrics.IncTransition(string(shipment.Status))
	if settlement != nil {
		s.metrics.AddFundsMoved(string(settlement.PaymentStatus), settlement.Amount.InexactFloat64())
	}
	s.notifier.committed(notes)
	return shipment, nil
}

func advanceNotes(shipment *domain.Shipment, settlement *domain.Settlement) []note {
	update := fmt.Sprintf("Shipment %s is now %s.", shipment.ID, shipment.Status)
	notes := []note{
		{recipient: shipment.Sender, title: "Shipment Update", message: update, severity: domain.SeverityInfo},
		{recipient: shipment.Receiver, title: "Shipment Update", message: update, severity: domain.SeverityInfo},
	}
	if settlement == nil {
		return notes
	}
	switch settlement.PaymentStatus {
	case domain.PaymentReleased:
		notes = append(notes, note{
			recipient: shipment.Sender,
			title:     "Funds Released",
			message:   fmt.Sprintf("Shipment delivered! %s released to your account.", settlement.Amount),
			severity:  domain.SeveritySuccess,
		}, note{
			recipient: shipment.Courier,
			title:     "Delivery Confirmed",
			message:   fmt.Sprintf("Delivery of %s recorded successfully.", shipment.ID),
			severity:  domain.SeveritySuccess,
		})
	case domain.PaymentRefunded:
		notes = append(notes, note{
			recipient: shipment.Receiver,
			title:     "Funds Refunded",
			message:   fmt.Sprintf("Shipment cancelled. %s refunded to your account.", settlement.Amount),
			severity:  domain.SeverityWarning,
		})
	default:
	}
	return notes
}

// authorize пропускает участника с нужной ролью в отправлении или администратора.
func (s *ShipmentService) authorize(ctx context.Context, tx uow.TX, caller string, participant bool) error {
	if participant {
		return nil
	}
	profiles, repoErr := uow.GetAs[ProfileRepository](tx, repoName(repoargs.ProfileRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	admin, err := isAdmin(ctx, profiles, caller)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("%w: account %s may not change this shipment", domain.ErrForbidden, caller)
	}
	return nil
}

func (s *ShipmentService) committed(origin string, shipment *domain.Shipment, notes []note) {
	s.metrics.IncShipmentOpened(origin)
	s.metrics.AddFundsMoved("lock", shipment.Price.InexactFloat64())
	s.notifier.committed(notes)
}

// Get возвращает отправление или domain.ErrRecordNotFound.
func (s *ShipmentService) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting shipment: %w", err)
	}
	return shipment, nil
}

// ListAll возвращает все отправления без фильтрации, новые первыми.
func (s *ShipmentService) ListAll(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := s.shipmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing shipments: %w", err)
	}
	return shipments, nil
}

// ListFor возвращает отправления, в которых account участвует в роли, заданной filter.
func (s *ShipmentService) ListFor(
	ctx context.Context,
	account string,
	filter domain.ParticipantFilter,
) ([]domain.Shipment, error) {
	shipments, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Shipment, 0, len(shipments))
	for _, sh := range shipments {
		if sh.Matches(account, filter) {
			res = append(res, sh)
		}
	}
	return res, nil
}

// Stats сводка по отправлениям, листингам и очереди KYC для панели account.
func (s *ShipmentService) Stats(ctx context.Context, account string) (*domain.Stats, error) {
	shipments, err := s.ListFor(ctx, account, domain.FilterAll)
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}
	stats := domain.Stats{
		EscrowLocked: decimal.Zero,
		Revenue:      decimal.Zero,
		Spent:        decimal.Zero,
	}
	for _, sh := range shipments {
		stats.TotalShipments++
		if !sh.Status.IsTerminal() {
			stats.ActiveShipments++
		}
		if sh.Status == domain.ShipmentDelivered {
			stats.CompletedShipments++
		}
		if sh.Payer == account {
			if sh.PaymentStatus == domain.PaymentLocked {
				stats.EscrowLocked = stats.EscrowLocked.Add(sh.Price)
			}
			if sh.PaymentStatus != domain.PaymentRefunded {
				stats.Spent = stats.Spent.Add(sh.Price)
			}
		}
		if sh.Sender == account && sh.PaymentStatus == domain.PaymentReleased {
			stats.Revenue = stats.Revenue.Add(sh.Price)
		}
	}

	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}
	for _, item := range items {
		if item.Seller == account {
			stats.InventoryCount++
		}
	}

	pending, err := s.profileRepo.List(ctx, repoargs.ListProfiles{KycStatus: domain.KycPending})
	if err != nil {
		return nil, fmt.Errorf("collecting stats: %w", err)
	}
	stats.PendingKyc = len(pending)
	return &stats, nil
}

// LockedEscrow сумма цен отправлений со статусом оплаты LOCKED по всем счетам.
func (s *ShipmentService) LockedEscrow(ctx context.Context) (decimal.Decimal, error) {
	shipments, err := s.ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, sh := range shipments {
		if sh.PaymentStatus == domain.PaymentLocked {
			total = total.Add(sh.Price)
		}
	}
	return total, nil
}
