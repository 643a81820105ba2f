package repository

import (
	"time"

	"marketadmin/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the string UUID key and timestamps every table shares.
type Base struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	Base
	Email      string `gorm:"uniqueIndex;not null"`
	Password   string `gorm:"not null"`
	Name       string
	Role       string `gorm:"not null;default:marketplace"`
	IsActive   bool   `gorm:"not null"`
	IsVerified bool   `gorm:"not null"`
}

func (u *User) toDS() ds.User {
	return ds.User{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       ds.Role(u.Role),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type Category struct {
	Base
	Name string `gorm:"not null"`
	Slug string `gorm:"uniqueIndex;not null"`
}

func (c *Category) toDS() ds.Category {
	return ds.Category{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

type Platform struct {
	Base
	Name string `gorm:"uniqueIndex;not null"`
}

func (p *Platform) toDS() ds.Platform {
	return ds.Platform{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt}
}

type Product struct {
	Base
	Name                string `gorm:"not null"`
	Description         string `gorm:"type:text"`
	Price               float64
	DiscountPercentage  *float64
	MainImageURL        string
	AdditionalImageURLs []string `gorm:"serializer:json"`
	FileURL             string
	IsActive            bool       `gorm:"not null"`
	Platforms           []Platform `gorm:"many2many:product_platforms"`
	Categories          []Category `gorm:"many2many:product_categories"`
}

func (p *Product) toDS() ds.Product {
	out := ds.Product{
		ID:                  p.ID,
		Name:                p.Name,
		Description:         p.Description,
		Price:               p.Price,
		DiscountPercentage:  p.DiscountPercentage,
		MainImageURL:        p.MainImageURL,
		AdditionalImageURLs: p.AdditionalImageURLs,
		FileURL:             p.FileURL,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for i := range p.Platforms {
		out.Platforms = append(out.Platforms, p.Platforms[i].toDS())
	}
	for i := range p.Categories {
		out.Categories = append(out.Categories, p.Categories[i].toDS())
	}
	return out
}

type Order struct {
	Base
	UserID          string `gorm:"index;not null"`
	User            *User
	ProductID       string `gorm:"index;not null"`
	Product         *Product
	Status          string `gorm:"index;not null"`
	Total           float64
	DuitkuReference string
	MerchantOrderID string
	LicenseID       *string `gorm:"uniqueIndex"`
	LicenseRedeemed bool    `gorm:"not null"`
}

func (o *Order) toDS() ds.Order {
	out := ds.Order{
		ID:              o.ID,
		UserID:          o.UserID,
		ProductID:       o.ProductID,
		Status:          ds.OrderStatus(o.Status),
		Total:           o.Total,
		DuitkuReference: o.DuitkuReference,
		MerchantOrderID: o.MerchantOrderID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.LicenseID != nil {
		redeemed := o.LicenseRedeemed
		out.LicenseID = *o.LicenseID
		out.LicenseRedeemed = &redeemed
	}
	if o.User != nil {
		u := o.User.toDS()
		out.User = &u
	}
	if o.Product != nil {
		p := o.Product.toDS()
		out.Product = &p
	}
	return out
}

type Payment struct {
	Base
	OrderID       string `gorm:"index;not null"`
	Order         *Order
	TransferProof string
	Status        string `gorm:"index;not null;default:pending"`
	ApprovedBy    *string
	ApprovedAt    *time.Time
}

func (p *Payment) toDS() ds.Payment {
	out := ds.Payment{
		ID:            p.ID,
		OrderID:       p.OrderID,
		TransferProof: p.TransferProof,
		Status:        ds.PaymentStatus(p.Status),
		ApprovedAt:    p.ApprovedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.ApprovedBy != nil {
		out.ApprovedBy = *p.ApprovedBy
	}
	if p.Order != nil {
		o := p.Order.toDS()
		out.Order = &o
	}
	return out
}
