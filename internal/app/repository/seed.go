package repository

import (
	"errors"
	"fmt"

	"marketadmin/internal/app/ds"
)

// Demo accounts created by SeedDemo.
const (
	DemoAdminEmail = "admin@marketadmin.local"
	DemoBuyerEmail = "buyer@marketadmin.local"
)

type DemoData struct {
	Admin    *ds.User
	Buyer    *ds.User
	Category *ds.Category
	Product  *ds.Product
	Order    *ds.Order
	Payment  *ds.Payment
}

// SeedDemo fills an empty database with one admin, one buyer, a product
// and an order whose transfer proof awaits review. It refuses to run when
// the admin account already exists.
func (r *Repository) SeedDemo(passwordHash string) (*DemoData, error) {
	exists, err := r.UserExistsByEmail(DemoAdminEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("demo data already present: %w", ErrConflict)
	}

	d := &DemoData{}
	if d.Admin, err = r.CreateUser(DemoAdminEmail, passwordHash, "Demo Admin", ds.RoleAdmin); err != nil {
		return nil, err
	}
	if d.Buyer, err = r.CreateUser(DemoBuyerEmail, passwordHash, "Demo Buyer", ds.RoleMarketplace); err != nil {
		return nil, err
	}
	if d.Category, err = r.CreateCategory("Productivity"); err != nil && !errors.Is(err, ErrConflict) {
		return nil, err
	}

	in := ProductInput{
		Name:        "Markdown Notes Pro",
		Description: "<p>Offline notes with sync.</p>",
		Price:       150000,
		PlatformIDs: []string{"web", "windows", "macos"},
		IsActive:    true,
	}
	if d.Category != nil {
		in.CategoryIDs = []string{d.Category.ID}
	}
	if d.Product, err = r.CreateProduct(in); err != nil {
		return nil, err
	}
	if d.Order, err = r.CreateOrder(d.Buyer.ID, d.Product.ID, ds.OrderStatusPending, d.Product.Price); err != nil {
		return nil, err
	}
	if d.Payment, err = r.CreatePayment(d.Order.ID, "/uploads/demo_transfer.jpg"); err != nil {
		return nil, err
	}
	return d, nil
}
