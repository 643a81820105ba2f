package dashboard

import "marketadmin/internal/app/ds"

var orderStatusLabels = map[ds.OrderStatus]string{
	ds.OrderStatusPaid:           "Paid",
	ds.OrderStatusWaitingPayment: "Waiting Payment",
	ds.OrderStatusPending:        "Pending",
	ds.OrderStatusCancelled:      "Cancelled",
	ds.OrderStatusFailed:         "Failed",
	ds.OrderStatusExpired:        "Expired",
}

// OrderStatusLabel returns the display label; unknown statuses render as
// sent by the backend.
func OrderStatusLabel(s ds.OrderStatus) string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return s.String()
}

func RedeemedLabel(o ds.Order) string {
	switch {
	case !o.HasLicense():
		return "-"
	case o.IsRedeemed():
		return "Redeemed"
	default:
		return "Not Redeemed"
	}
}
