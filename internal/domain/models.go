package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	Account      string        `json:"account"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone,omitempty"`
	Company      string        `json:"company,omitempty"`
	Role         Role          `json:"role"`
	KycStatus    KycStatus     `json:"kycStatus"`
	KycDocuments *KycDocuments `json:"kycDocuments,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type KycDocuments struct {
	IDDocument   string    `json:"idDocument"`
	AddressProof string    `json:"addressProof"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type CatalogItem struct {
	ID          string          `json:"id"`
	Seller      string          `json:"seller"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type HistoryEntry struct {
	Status    ShipmentStatus `json:"status"`
	Location  string         `json:"location"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
}

type Shipment struct {
	ID            string          `json:"id"`
	Sender        string          `json:"sender"`
	Receiver      string          `json:"receiver"`
	Courier       string          `json:"courier"`
	Payer         string          `json:"payer"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Weight        decimal.Decimal `json:"weight"`
	Price         decimal.Decimal `json:"price"`
	Status        ShipmentStatus  `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PickupDate    string          `json:"pickupDate"`
	DeliveryDate  string          `json:"deliveryDate"`
	CreatedAt     time.Time       `json:"createdAt"`
	History       []HistoryEntry  `json:"history"`
}

// IsParticipant проверяет, что account является отправителем, получателем или курьером.
func (s *Shipment) IsParticipant(account string) bool {
	return s.Sender == account || s.Receiver == account || s.Courier == account
}

// Matches проверяет отправление на соответствие фильтру участника.
func (s *Shipment) Matches(account string, filter ParticipantFilter) bool {
	switch filter {
	case FilterSent:
		return s.Sender == account
	case FilterReceived:
		return s.Receiver == account
	case FilterCourier:
		return s.Courier == account
	default:
		return s.IsParticipant(account)
	}
}

type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"timestamp"`
}

// OutboxMessage уведомление, ожидающее доставки во внешнюю систему.
type OutboxMessage struct {
	ID            string       `json:"id"`
	Notification  Notification `json:"notification"`
	Status        OutboxStatus `json:"status"`
	Attempts      uint         `json:"attempts"`
	NextAttemptAt time.Time    `json:"nextAttemptAt"`
	LastError     string       `json:"lastError,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Stats сводка для панели участника.
type Stats struct {
	TotalShipments     int             `json:"totalShipments"`
	ActiveShipments    int             `json:"activeShipments"`
	CompletedShipments int             `json:"completedShipments"`
	EscrowLocked       decimal.Decimal `json:"escrowLocked"`
	Revenue            decimal.Decimal `json:"revenue"`
	Spent              decimal.Decimal `json:"spent"`
	InventoryCount     int             `json:"inventoryCount"`
	PendingKyc         int             `json:"pendingKyc"`
}

type Balance struct {
	Account   string          `json:"account"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SeedGrant отметка о единоразовом стартовом начислении.
type SeedGrant struct {
	Account   string          `json:"account"`
	Amount    decimal.Decimal `json:"amount"`
	GrantedAt time.Time       `json:"grantedAt"`
}
