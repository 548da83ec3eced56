package domain

type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleUser    Role = "USER"
	RoleSeller  Role = "SELLER"
	RoleCourier Role = "COURIER"
	RoleAdmin   Role = "ADMIN"
)

type KycStatus string

const (
	KycNotStarted KycStatus = "NOT_STARTED"
	KycPending    KycStatus = "PENDING"
	KycVerified   KycStatus = "VERIFIED"
	KycRejected   KycStatus = "REJECTED"
)

type ShipmentStatus string

const (
	ShipmentPending        ShipmentStatus = "PENDING"
	ShipmentInTransit      ShipmentStatus = "IN_TRANSIT"
	ShipmentOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	ShipmentDelivered      ShipmentStatus = "DELIVERED"
	ShipmentCancelled      ShipmentStatus = "CANCELLED"
)

// IsTerminal после DELIVERED и CANCELLED статус больше не меняется.
func (s ShipmentStatus) IsTerminal() bool {
	return s == ShipmentDelivered || s == ShipmentCancelled
}

type PaymentStatus string

const (
	PaymentLocked   PaymentStatus = "LOCKED"
	PaymentReleased PaymentStatus = "RELEASED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeveritySuccess Severity = "SUCCESS"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// ParticipantFilter фильтр списка отправлений по роли участника.
type ParticipantFilter string

const (
	FilterAll      ParticipantFilter = "ALL"
	FilterSent     ParticipantFilter = "SENT"
	FilterReceived ParticipantFilter = "RECEIVED"
	FilterCourier  ParticipantFilter = "COURIER"
)

type OutboxStatus string

const (
	OutboxPending   OutboxStatus = "PENDING"
	OutboxDelivered OutboxStatus = "DELIVERED"
	OutboxFailed    OutboxStatus = "FAILED"
)
