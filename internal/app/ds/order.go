package ds

import "time"

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusWaitingPayment OrderStatus = "waiting_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusFailed         OrderStatus = "failed"
	OrderStatusExpired        OrderStatus = "expired"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPending:        true,
	OrderStatusWaitingPayment: true,
	OrderStatusPaid:           true,
	OrderStatusCancelled:      true,
	OrderStatusFailed:         true,
	OrderStatusExpired:        true,
}

// IsKnown reports whether s is one of the statuses the backend documents.
// Unknown statuses are still valid payloads and render literally.
func (s OrderStatus) IsKnown() bool {
	return orderStatuses[s]
}

func (s OrderStatus) String() string {
	return string(s)
}

type Order struct {
	ID              string      `json:"id" validate:"required"`
	UserID          string      `json:"user_id"`
	User            *User       `json:"user,omitempty"`
	ProductID       string      `json:"product_id"`
	Product         *Product    `json:"product,omitempty"`
	Status          OrderStatus `json:"status"`
	Total           float64     `json:"total"`
	DuitkuReference string      `json:"duitku_reference,omitempty"`
	MerchantOrderID string      `json:"merchant_order_id,omitempty"`
	LicenseID       string      `json:"license_id,omitempty"`
	LicenseRedeemed *bool       `json:"license_redeemed,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// HasLicense reports whether a license has been issued for the order.
func (o *Order) HasLicense() bool {
	return o.LicenseID != ""
}

// IsRedeemed is false whenever no license has been issued, regardless of
// what the backend sent in license_redeemed.
func (o *Order) IsRedeemed() bool {
	return o.HasLicense() && o.LicenseRedeemed != nil && *o.LicenseRedeemed
}
