package service

import (
	"context"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/fsdevblog/escrow-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/escrow-ledger/pkg/kvstore"
	"github.com/shopspring/decimal"
)

func (s *ServiceTestSuite) openArgs(sender, receiver string, price int64) OpenShipmentArgs {
	return OpenShipmentArgs{
		Sender:       sender,
		Receiver:     receiver,
		Courier:      testCourier,
		Title:        gofakeit.ProductName(),
		Description:  gofakeit.Sentence(5),
		Category:     gofakeit.ProductCategory(),
		Weight:       decimal.NewFromFloat(2.5),
		Price:        decimal.NewFromInt(price),
		PickupDate:   "2026-10-18",
		DeliveryDate: "2026-10-21",
	}
}

func (s *ServiceTestSuite) TestOpen() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	receiver := s.account()

	s.Run("kyc required", func() {
		unverified := s.account()
		_, err := s.services.Shipments.Open(ctx, s.openArgs(unverified, receiver, 10))
		s.ErrorIs(err, domain.ErrKycRequired)
		s.requireBalance(unverified, 100)
	})
	s.Run("insufficient funds", func() {
		_, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 101))
		s.ErrorIs(err, domain.ErrInsufficientFunds)
		s.requireBalance(sender, 100)
	})
	s.Run("non positive price", func() {
		_, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 0))
		s.ErrorIs(err, domain.ErrInvalidAmount)
	})
	s.Run("locks funds", func() {
		shipment, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 30))
		s.Require().NoError(err)
		s.Regexp(`^SHP-[0-9A-Z]{9}$`, shipment.ID)
		s.Equal(domain.ShipmentPending, shipment.Status)
		s.Equal(domain.PaymentLocked, shipment.PaymentStatus)
		s.Equal(sender, shipment.Payer)
		s.Require().Len(shipment.History, 1)
		s.Equal(domain.LocationOrigin, shipment.History[0].Location)
		s.requireBalance(sender, 70)

		stored, getErr := s.services.Shipments.Get(ctx, shipment.ID)
		s.Require().NoError(getErr)
		s.Equal(shipment.ID, stored.ID)

		courierNotes, listErr := s.services.Notifications.ListFor(ctx, testCourier)
		s.Require().NoError(listErr)
		s.Require().Len(courierNotes, 1)
		s.Equal("New Assignment", courierNotes[0].Title)
		s.Equal(domain.SeverityWarning, courierNotes[0].Severity)
	})

	s.Len(s.allShipments(), 1)
	s.requireConserved(decimal.NewFromInt(300))
}

// TestPurchase_HappyPath покупатель со 100 единицами покупает листинг за 10, доставка освобождает средства
// продавцу.
func (s *ServiceTestSuite) TestPurchase_HappyPath() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	item := s.listing(seller, 10)

	shipment, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
	s.Require().NoError(err)
	s.Regexp(`^ORD-[0-9A-Z]{9}$`, shipment.ID)
	s.Equal(seller, shipment.Sender)
	s.Equal(buyer, shipment.Receiver)
	s.Equal(buyer, shipment.Payer)
	s.Equal(testCourier, shipment.Courier)
	s.Equal("Order: "+item.Title, shipment.Title)
	s.True(decimal.NewFromInt(1).Equal(shipment.Weight))
	s.Equal(domain.ShipmentPending, shipment.Status)
	s.Equal(domain.PaymentLocked, shipment.PaymentStatus)
	s.requireBalance(buyer, 90)
	s.requireBalance(seller, 100)

	dispatched, err := s.services.Shipments.Dispatch(ctx, seller, shipment.ID)
	s.Require().NoError(err)
	s.Equal(domain.ShipmentInTransit, dispatched.Status)
	s.Len(dispatched.History, 2)

	delivered, err := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
		Caller:   testCourier,
		ID:       shipment.ID,
		Status:   domain.ShipmentDelivered,
		Location: "X",
		Message:  "done",
	})
	s.Require().NoError(err)
	s.Equal(domain.ShipmentDelivered, delivered.Status)
	s.Equal(domain.PaymentReleased, delivered.PaymentStatus)
	s.Len(delivered.History, 3)
	s.requireBalance(seller, 110)
	s.requireBalance(buyer, 90)
	s.requireConserved(decimal.NewFromInt(200))
}

func (s *ServiceTestSuite) TestPurchase_Rejections() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	item := s.listing(seller, 150)

	s.Run("unknown item", func() {
		buyer := s.verifiedAccount(domain.RoleBuyer)
		_, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, "ITM-UNKNOWN", "")
		s.ErrorIs(err, domain.ErrRecordNotFound)
	})
	s.Run("own listing", func() {
		_, err := s.services.Shipments.OpenFromPurchase(ctx, seller, item.ID, "")
		s.ErrorIs(err, domain.ErrForbidden)
	})
	s.Run("unverified buyer", func() {
		buyer := s.account()
		_, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
		s.ErrorIs(err, domain.ErrKycRequired)
	})
	s.Run("insufficient funds", func() {
		buyer := s.verifiedAccount(domain.RoleBuyer)
		_, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
		s.ErrorIs(err, domain.ErrInsufficientFunds)
		s.requireBalance(buyer, 100)
	})

	s.Empty(s.allShipments())
}

func (s *ServiceTestSuite) TestAdvance_CancelRefundsReceiver() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	item := s.listing(seller, 40)

	shipment, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
	s.Require().NoError(err)
	s.requireBalance(buyer, 60)

	cancelled, err := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
		Caller:   buyer,
		ID:       shipment.ID,
		Status:   domain.ShipmentCancelled,
		Location: "Hub",
		Message:  "buyer changed mind",
	})
	s.Require().NoError(err)
	s.Equal(domain.PaymentRefunded, cancelled.PaymentStatus)
	s.requireBalance(buyer, 100)
	s.requireBalance(seller, 100)

	notes, err := s.services.Notifications.ListFor(ctx, buyer)
	s.Require().NoError(err)
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		titles = append(titles, n.Title)
	}
	s.Contains(titles, "Funds Refunded")
	s.requireConserved(decimal.NewFromInt(200))
}

// TestAdvance_NoDoublePayout после терминального статуса никакой переход не двигает средства.
func (s *ServiceTestSuite) TestAdvance_NoDoublePayout() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	receiver := s.account()

	shipment, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 20))
	s.Require().NoError(err)

	advance := func(status domain.ShipmentStatus) (*domain.Shipment, error) {
		return s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
			Caller: testCourier, ID: shipment.ID, Status: status, Location: "L", Message: "M",
		})
	}

	_, err = advance(domain.ShipmentDelivered)
	s.Require().NoError(err)
	s.requireBalance(sender, 100)

	for _, status := range []domain.ShipmentStatus{
		domain.ShipmentDelivered, domain.ShipmentCancelled, domain.ShipmentInTransit, domain.ShipmentPending,
	} {
		_, advErr := advance(status)
		s.ErrorIs(advErr, domain.ErrInvalidTransition, status)
	}
	_, err = s.services.Shipments.Dispatch(ctx, sender, shipment.ID)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	stored, err := s.services.Shipments.Get(ctx, shipment.ID)
	s.Require().NoError(err)
	s.Len(stored.History, 2)
	s.requireBalance(sender, 100)
	s.requireBalance(receiver, 100)
	s.requireConserved(decimal.NewFromInt(200))
}

func (s *ServiceTestSuite) TestAdvance_Rights() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	receiver := s.account()
	stranger := s.account()

	shipment, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 20))
	s.Require().NoError(err)

	s.Run("stranger cannot dispatch", func() {
		_, dErr := s.services.Shipments.Dispatch(ctx, stranger, shipment.ID)
		s.ErrorIs(dErr, domain.ErrForbidden)
	})
	s.Run("receiver cannot deliver", func() {
		_, aErr := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
			Caller: receiver, ID: shipment.ID, Status: domain.ShipmentDelivered,
		})
		s.ErrorIs(aErr, domain.ErrForbidden)
	})
	s.Run("pending is not a target", func() {
		_, aErr := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
			Caller: testCourier, ID: shipment.ID, Status: domain.ShipmentPending,
		})
		s.ErrorIs(aErr, domain.ErrInvalidTransition)
	})
	s.Run("unknown shipment", func() {
		_, aErr := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
			Caller: testCourier, ID: "SHP-UNKNOWN", Status: domain.ShipmentInTransit,
		})
		s.ErrorIs(aErr, domain.ErrRecordNotFound)
	})
	s.Run("admin may advance", func() {
		updated, aErr := s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
			Caller: testAdmin, ID: shipment.ID, Status: domain.ShipmentOutForDelivery, Location: "City",
		})
		s.Require().NoError(aErr)
		s.Equal(domain.ShipmentOutForDelivery, updated.Status)
		s.Equal(domain.PaymentLocked, updated.PaymentStatus)
	})

	s.requireBalance(sender, 80)
}

// TestPurchase_ConcurrentRace две покупки на сумму больше баланса покупателя: проходит ровно одна.
func (s *ServiceTestSuite) TestPurchase_ConcurrentRace() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	items := []*domain.CatalogItem{s.listing(seller, 60), s.listing(seller, 60)}

	var wg sync.WaitGroup
	errs := make([]error, len(items))
	for i, item := range items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
		}()
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, domain.ErrInsufficientFunds)
	}
	s.Equal(1, succeeded)
	s.requireBalance(buyer, 40)
	s.Len(s.allShipments(), 1)
	s.requireConserved(decimal.NewFromInt(200))
}

// TestConservation случайная последовательность операций не меняет сумму балансов и блокировок.
func (s *ServiceTestSuite) TestConservation() {
	ctx := context.Background()
	accounts := []string{
		s.verifiedAccount(domain.RoleSeller),
		s.verifiedAccount(domain.RoleSeller),
		s.verifiedAccount(domain.RoleBuyer),
		s.verifiedAccount(domain.RoleBuyer),
	}
	issued := decimal.NewFromInt(int64(100 * len(accounts)))
	faker := gofakeit.New(42)

	var opened []string
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := range 40 {
		sender := accounts[faker.IntN(len(accounts))]
		receiver := accounts[faker.IntN(len(accounts))]
		price := int64(faker.IntRange(1, 40))
		wg.Add(1)
		go func() {
			defer wg.Done()
			shipment, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, price))
			if err != nil {
				return
			}
			mu.Lock()
			opened = append(opened, shipment.ID)
			mu.Unlock()
		}()
		if i%4 == 3 {
			wg.Wait()
		}
	}
	wg.Wait()
	s.requireConserved(issued)

	targets := []domain.ShipmentStatus{
		domain.ShipmentInTransit, domain.ShipmentDelivered, domain.ShipmentCancelled, domain.ShipmentDelivered,
	}
	for _, id := range opened {
		for _, target := range targets {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
					Caller: testCourier, ID: id, Status: target, Location: "L", Message: "M",
				})
			}()
		}
	}
	wg.Wait()

	s.requireConserved(issued)
	for _, sh := range s.allShipments() {
		s.True(sh.Status.IsTerminal(), sh.ID)
		s.NotEqual(domain.PaymentLocked, sh.PaymentStatus, sh.ID)
	}
	for _, account := range accounts {
		s.False(s.balance(account).IsNegative())
	}
}

func (s *ServiceTestSuite) TestListForAndStats() {
	ctx := context.Background()
	seller := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	s.listing(seller, 5)
	item := s.listing(seller, 10)

	delivered, err := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
	s.Require().NoError(err)
	_, err = s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
		Caller: testCourier, ID: delivered.ID, Status: domain.ShipmentDelivered,
	})
	s.Require().NoError(err)
	_, err = s.services.Shipments.Open(ctx, s.openArgs(seller, buyer, 7))
	s.Require().NoError(err)

	sent, err := s.services.Shipments.ListFor(ctx, seller, domain.FilterSent)
	s.Require().NoError(err)
	s.Len(sent, 2)
	received, err := s.services.Shipments.ListFor(ctx, seller, domain.FilterReceived)
	s.Require().NoError(err)
	s.Empty(received)
	carried, err := s.services.Shipments.ListFor(ctx, testCourier, domain.FilterCourier)
	s.Require().NoError(err)
	s.Len(carried, 2)

	stats, err := s.services.Shipments.Stats(ctx, seller)
	s.Require().NoError(err)
	s.Equal(2, stats.TotalShipments)
	s.Equal(1, stats.ActiveShipments)
	s.Equal(1, stats.CompletedShipments)
	s.Equal(2, stats.InventoryCount)
	s.True(decimal.NewFromInt(10).Equal(stats.Revenue))
	s.True(decimal.NewFromInt(7).Equal(stats.EscrowLocked))
	s.True(decimal.NewFromInt(7).Equal(stats.Spent))
}

// TestAdvance_ConcurrentTerminal одновременные DELIVERED и CANCELLED по одному отправлению: проходит ровно
// один переход, второй отклоняется, средства двигаются один раз.
func (s *ServiceTestSuite) TestAdvance_ConcurrentTerminal() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	receiver := s.account()

	const rounds = 20
	for round := range rounds {
		shipment, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 5))
		s.Require().NoError(err)

		statuses := []domain.ShipmentStatus{domain.ShipmentDelivered, domain.ShipmentCancelled}
		errs := make([]error, len(statuses))
		var wg sync.WaitGroup
		for i, status := range statuses {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = s.services.Shipments.Advance(ctx, AdvanceShipmentArgs{
					Caller: testCourier, ID: shipment.ID, Status: status, Location: "L", Message: "M",
				})
			}()
		}
		wg.Wait()

		var succeeded int
		for _, advErr := range errs {
			if advErr == nil {
				succeeded++
				continue
			}
			s.ErrorIs(advErr, domain.ErrInvalidTransition, "round %d", round)
		}
		s.Require().Equal(1, succeeded, "round %d", round)

		stored, err := s.services.Shipments.Get(ctx, shipment.ID)
		s.Require().NoError(err)
		s.Len(stored.History, 2)
		s.Contains([]domain.PaymentStatus{domain.PaymentReleased, domain.PaymentRefunded}, stored.PaymentStatus)
	}

	s.True(s.balance(sender).Add(s.balance(receiver)).Equal(decimal.NewFromInt(200)))
	s.requireConserved(decimal.NewFromInt(200))
}

// TestOpen_DuplicateID повторно выданный id не перезаписывает существующее отправление.
func (s *ServiceTestSuite) TestOpen_DuplicateID() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	receiver := s.account()
	s.services.Shipments.newID = func(prefix string) string { return prefix + "DUPLICATE" }

	first, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 10))
	s.Require().NoError(err)
	s.requireBalance(sender, 90)

	s.Run("open", func() {
		_, openErr := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 30))
		s.ErrorIs(openErr, domain.ErrDuplicateKey)
		s.requireBalance(sender, 90)
	})
	s.Run("purchase", func() {
		item := s.listing(sender, 15)
		_, err = s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
		s.Require().NoError(err)
		_, purchaseErr := s.services.Shipments.OpenFromPurchase(ctx, buyer, item.ID, "")
		s.ErrorIs(purchaseErr, domain.ErrDuplicateKey)
		s.requireBalance(buyer, 85)
	})

	stored, err := s.services.Shipments.Get(ctx, first.ID)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(10).Equal(stored.Price))
	s.Equal(domain.PaymentLocked, stored.PaymentStatus)
	s.Len(s.allShipments(), 2)
	s.requireConserved(decimal.NewFromInt(300))
}

// TestOpen_WaitsForProfileLock открытие ждет, пока профиль плательщика заблокирован другой транзакцией.
func (s *ServiceTestSuite) TestOpen_WaitsForProfileLock() {
	ctx := context.Background()
	sender := s.verifiedAccount(domain.RoleSeller)
	buyer := s.verifiedAccount(domain.RoleBuyer)
	receiver := s.account()
	item := s.listing(sender, 10)

	holdProfile := func(account string) (release func()) {
		held, done := make(chan struct{}), make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.store.Do(ctx, []kvstore.Key{repoargs.ProfileKey(account)}, func(context.Context, kvstore.Tx) error {
				close(held)
				<-done
				return nil
			})
		}()
		<-held
		return func() {
			close(done)
			wg.Wait()
		}
	}

	s.Run("open", func() {
		release := holdProfile(sender)
		defer release()

		timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := s.services.Shipments.Open(timeoutCtx, s.openArgs(sender, receiver, 10))
		s.ErrorIs(err, context.DeadlineExceeded)
		s.requireBalance(sender, 100)
	})
	s.Run("purchase", func() {
		release := holdProfile(buyer)
		defer release()

		timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err := s.services.Shipments.OpenFromPurchase(timeoutCtx, buyer, item.ID, "")
		s.ErrorIs(err, context.DeadlineExceeded)
		s.requireBalance(buyer, 100)
	})

	s.Empty(s.allShipments())

	_, err := s.services.Shipments.Open(ctx, s.openArgs(sender, receiver, 10))
	s.Require().NoError(err)
	s.requireBalance(sender, 90)
}

func (s *ServiceTestSuite) allShipments() []domain.Shipment {
	shipments, err := s.services.Shipments.ListAll(context.Background())
	s.Require().NoError(err)
	return shipments
}
