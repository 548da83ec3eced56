package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	LocationOrigin      = "Origin"
	LocationMarketplace = "Marketplace"
	LocationWarehouse   = "Seller Warehouse"

	MessageFundsLocked   = "Escrow initialized & funds locked"
	MessageOrderPlaced   = "Order placed. Waiting for seller approval."
	MessageDispatched    = "Seller approved and dispatched package to courier"
	shipmentEntityName   = "shipment"
	releasedNoteTemplate = "%s | Escrow: %s released to sender."
	refundedNoteTemplate = "%s | Escrow: %s refunded to receiver."
)

// Settlement денежное движение, сопровождающее переход отправления в терминальный статус: зачислить Amount на
// счет Account.
type Settlement struct {
	Account       string
	Amount        decimal.Decimal
	PaymentStatus PaymentStatus
}

// Lock инициализирует отправление: PENDING, средства заблокированы, одна запись истории.
func (s *Shipment) Lock(location, message string, at time.Time) {
	s.Status = ShipmentPending
	s.PaymentStatus = PaymentLocked
	s.CreatedAt = at
	s.History = []HistoryEntry{{
		Status:    ShipmentPending,
		Location:  location,
		Message:   message,
		Timestamp: at,
	}}
}

// Dispatch переводит отправление из PENDING в IN_TRANSIT.
func (s *Shipment) Dispatch(at time.Time) error {
	if s.Status != ShipmentPending {
		return NewTransitionError(shipmentEntityName, string(s.Status), string(ShipmentInTransit))
	}
	s.appendHistory(ShipmentInTransit, LocationWarehouse, MessageDispatched, at)
	return nil
}

// Advance выполняет переход в статус to. Для DELIVERED и CANCELLED при заблокированных средствах возвращает
// Settlement, который вызывающая сторона обязана провести в той же транзакции. Статус, статус оплаты и история
// меняются только при успешном переходе.
//
// Правила:
//   - из DELIVERED и CANCELLED переходов нет;
//   - IN_TRANSIT и OUT_FOR_DELIVERY допустимы из любого нетерминального статуса;
//   - DELIVERED освобождает средства в пользу sender, CANCELLED возвращает их receiver;
//   - PENDING и неизвестные статусы недопустимы.
func (s *Shipment) Advance(to ShipmentStatus, location, message string, at time.Time) (*Settlement, error) {
	if s.Status.IsTerminal() {
		return nil, NewTransitionError(shipmentEntityName, string(s.Status), string(to))
	}

	var settlement *Settlement
	switch to {
	case ShipmentInTransit, ShipmentOutForDelivery:
	case ShipmentDelivered:
		if s.PaymentStatus == PaymentLocked {
			settlement = &Settlement{Account: s.Sender, Amount: s.Price, PaymentStatus: PaymentReleased}
			message = fmt.Sprintf(releasedNoteTemplate, message, s.Price.String())
		}
	case ShipmentCancelled:
		if s.PaymentStatus == PaymentLocked {
			settlement = &Settlement{Account: s.Receiver, Amount: s.Price, PaymentStatus: PaymentRefunded}
			message = fmt.Sprintf(refundedNoteTemplate, message, s.Price.String())
		}
	default:
		return nil, NewTransitionError(shipmentEntityName, string(s.Status), string(to))
	}

	if settlement != nil {
		s.PaymentStatus = settlement.PaymentStatus
	}
	s.appendHistory(to, location, message, at)
	return settlement, nil
}

func (s *Shipment) appendHistory(status ShipmentStatus, location, message string, at time.Time) {
	s.Status = status
	s.History = append(s.History, HistoryEntry{
		Status:    status,
		Location:  location,
		Message:   message,
		Timestamp: at,
	})
}

// SubmitKyc переводит профиль на проверку. Повторная подача возможна только после отказа.
func (p *Profile) SubmitKyc(docs KycDocuments) error {
	switch p.KycStatus {
	case KycNotStarted, KycRejected, "":
		p.KycStatus = KycPending
		p.KycDocuments = &docs
		return nil
	default:
		return NewTransitionError("kyc", string(p.KycStatus), string(KycPending))
	}
}
