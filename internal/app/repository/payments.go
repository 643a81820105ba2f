package repository

import (
	"fmt"
	"time"

	"marketadmin/internal/app/ds"

	"gorm.io/gorm"
)

func withPaymentRefs(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Order").Preload("Order.User").Preload("Order.Product")
}

func (r *Repository) ListPendingPayments(limit, offset int) ([]ds.Payment, int64, error) {
	limit, offset = pageBounds(limit, offset)
	pending := string(ds.PaymentStatusPending)

	var total int64
	if err := r.db.Model(&Payment{}).Where("status = ?", pending).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []Payment
	err := withPaymentRefs(r.db).
		Where("status = ?", pending).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]ds.Payment, len(payments))
	for i := range payments {
		out[i] = payments[i].toDS()
	}
	return out, total, nil
}

func (r *Repository) GetPayment(id string) (*ds.Payment, error) {
	var payment Payment
	if err := withPaymentRefs(r.db).First(&payment, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "payment")
	}
	out := payment.toDS()
	return &out, nil
}

// CreatePayment records an uploaded transfer proof for an order and moves
// the order to waiting_payment.
func (r *Repository) CreatePayment(orderID, transferProof string) (*ds.Payment, error) {
	var id string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			return notFound(err, "order")
		}
		payment := Payment{
			OrderID:       order.ID,
			TransferProof: transferProof,
			Status:        string(ds.PaymentStatusPending),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		id = payment.ID
		return tx.Model(&order).Update("status", string(ds.OrderStatusWaitingPayment)).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetPayment(id)
}

// DecidePayment approves or rejects a pending payment. Approval marks the
// order paid and issues its license; rejection marks the order failed.
func (r *Repository) DecidePayment(id string, status ds.PaymentStatus, adminID string) (*ds.Payment, error) {
	if !status.IsDecision() {
		return nil, fmt.Errorf("status %q: %w", status, ErrInvalid)
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var payment Payment
		if err := tx.First(&payment, "id = ?", id).Error; err != nil {
			return notFound(err, "payment")
		}
		if payment.Status != string(ds.PaymentStatusPending) {
			return fmt.Errorf("payment already %s: %w", payment.Status, ErrConflict)
		}

		now := time.Now()
		err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":      string(status),
			"approved_by": adminID,
			"approved_at": now,
		}).Error
		if err != nil {
			return err
		}

		var order Order
		if err := tx.First(&order, "id = ?", payment.OrderID).Error; err != nil {
			return notFound(err, "order")
		}
		fields := map[string]interface{}{"status": string(ds.OrderStatusFailed)}
		if status == ds.PaymentStatusApproved {
			fields["status"] = string(ds.OrderStatusPaid)
			if order.LicenseID == nil {
				fields["license_id"] = *newLicenseID()
				fields["license_redeemed"] = false
			}
		}
		return tx.Model(&order).Updates(fields).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetPayment(id)
}
