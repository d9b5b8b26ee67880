package enum

// PaymentMethod is how a sale was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentTransfer PaymentMethod = "TRANSFER"
	PaymentQRIS     PaymentMethod = "QRIS"
)

// IsValid reports whether the payment method is a known value
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentTransfer, PaymentQRIS:
		return true
	}
	return false
}

// SaleStatus represents the state of a completed sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusVoided    SaleStatus = "VOIDED"
)

// KdsStatus tracks a kitchen order (or a single item) through preparation
type KdsStatus string

const (
	KdsStatusNew       KdsStatus = "NEW"
	KdsStatusAccepted  KdsStatus = "ACCEPTED"
	KdsStatusCooking   KdsStatus = "COOKING"
	KdsStatusReady     KdsStatus = "READY"
	KdsStatusServed    KdsStatus = "SERVED"
	KdsStatusCancelled KdsStatus = "CANCELLED"
)

// IsValid reports whether the KDS status is a known value
func (k KdsStatus) IsValid() bool {
	switch k {
	case KdsStatusNew, KdsStatusAccepted, KdsStatusCooking, KdsStatusReady, KdsStatusServed, KdsStatusCancelled:
		return true
	}
	return false
}

// PurchaseStatus represents the state of a stock purchase
type PurchaseStatus string

const (
	PurchaseStatusDraft    PurchaseStatus = "DRAFT"
	PurchaseStatusReceived PurchaseStatus = "RECEIVED"
)
