package repository

import (
	"fmt"
	"strings"
	"time"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/format"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func withOrderRefs(tx *gorm.DB) *gorm.DB {
	return tx.Preload("User").Preload("Product")
}

// ListOrders pages over orders, newest first. An empty status lists all.
func (r *Repository) ListOrders(limit, offset int, status ds.OrderStatus) ([]ds.Order, int64, error) {
	limit, offset = pageBounds(limit, offset)

	query := func() *gorm.DB {
		q := r.db.Model(&Order{})
		if status != "" {
			q = q.Where("status = ?", string(status))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []Order
	err := withOrderRefs(query()).Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]ds.Order, len(orders))
	for i := range orders {
		out[i] = orders[i].toDS()
	}
	return out, total, nil
}

func (r *Repository) GetOrder(id string) (*ds.Order, error) {
	var order Order
	if err := withOrderRefs(r.db).First(&order, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "order")
	}
	out := order.toDS()
	return &out, nil
}

// CreateOrder stores an order as the storefront would, without a license.
func (r *Repository) CreateOrder(userID, productID string, status ds.OrderStatus, total float64) (*ds.Order, error) {
	order := Order{
		UserID:          userID,
		ProductID:       productID,
		Status:          string(status),
		Total:           total,
		MerchantOrderID: merchantOrderID(),
	}
	if err := r.db.Create(&order).Error; err != nil {
		return nil, err
	}
	return r.GetOrder(order.ID)
}

// SetLicenseRedeemed toggles the redeemed flag of an issued license.
func (r *Repository) SetLicenseRedeemed(orderID string, redeemed bool) (*ds.Order, error) {
	var order Order
	if err := r.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, notFound(err, "order")
	}
	if order.LicenseID == nil {
		return nil, fmt.Errorf("order has no license: %w", ErrInvalid)
	}
	if err := r.db.Model(&order).Update("license_redeemed", redeemed).Error; err != nil {
		return nil, err
	}
	return r.GetOrder(orderID)
}

// CreateLicense issues a license directly as a paid order. A nil total
// charges the product price after discount; zero makes it complimentary.
func (r *Repository) CreateLicense(productID, userID string, total *float64) (*ds.Order, error) {
	var id string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return notFound(err, "user")
		}
		var product Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			return notFound(err, "product")
		}

		amount := format.DiscountedPrice(product.Price, product.DiscountPercentage)
		if total != nil {
			if *total < 0 {
				return fmt.Errorf("total must not be negative: %w", ErrInvalid)
			}
			amount = *total
		}

		order := Order{
			UserID:          user.ID,
			ProductID:       product.ID,
			Status:          string(ds.OrderStatusPaid),
			Total:           amount,
			MerchantOrderID: merchantOrderID(),
			LicenseID:       newLicenseID(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		id = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(id)
}

func newLicenseID() *string {
	id := strings.ToUpper(uuid.NewString())
	return &id
}

func merchantOrderID() string {
	return fmt.Sprintf("ADM-%d-%s", time.Now().Unix(), uuid.NewString()[:8])
}
