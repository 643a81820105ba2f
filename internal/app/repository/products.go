package repository

import (
	"fmt"
	"strings"

	"marketadmin/internal/app/ds"

	"gorm.io/gorm"
)

type ProductFilter struct {
	Limit    int
	Offset   int
	Platform string // platform id or name
	Category string // category id or slug
	Search   string
}

// ProductInput is the product as submitted by the admin form. On update,
// empty file references and a nil discount keep what is stored.
type ProductInput struct {
	Name                string
	Description         string
	Price               float64
	DiscountPercentage  *float64
	PlatformIDs         []string // ids or names
	CategoryIDs         []string // ids or slugs
	IsActive            bool
	MainImageURL        string
	AdditionalImageURLs []string
	FileURL             string
}

func (r *Repository) productQuery(f ProductFilter) *gorm.DB {
	q := r.db.Model(&Product{})
	if f.Platform != "" {
		sub := r.db.Table("product_platforms").
			Select("product_platforms.product_id").
			Joins("JOIN platforms ON platforms.id = product_platforms.platform_id").
			Where("platforms.id = ? OR platforms.name = ?", f.Platform, f.Platform)
		q = q.Where("id IN (?)", sub)
	}
	if f.Category != "" {
		sub := r.db.Table("product_categories").
			Select("product_categories.product_id").
			Joins("JOIN categories ON categories.id = product_categories.category_id").
			Where("categories.id = ? OR categories.slug = ?", f.Category, f.Category)
		q = q.Where("id IN (?)", sub)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	return q
}

func (r *Repository) ListProducts(f ProductFilter) ([]ds.Product, int64, error) {
	limit, offset := pageBounds(f.Limit, f.Offset)

	var total int64
	if err := r.productQuery(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []Product
	err := r.productQuery(f).
		Preload("Platforms").
		Preload("Categories").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]ds.Product, len(products))
	for i := range products {
		out[i] = products[i].toDS()
	}
	return out, total, nil
}

func (r *Repository) findProduct(tx *gorm.DB, id string) (*Product, error) {
	var product Product
	err := tx.Preload("Platforms").Preload("Categories").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "product")
	}
	return &product, nil
}

func (r *Repository) GetProduct(id string) (*ds.Product, error) {
	product, err := r.findProduct(r.db, id)
	if err != nil {
		return nil, err
	}
	out := product.toDS()
	return &out, nil
}

func (r *Repository) CreateProduct(in ProductInput) (*ds.Product, error) {
	var id string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		platforms, err := resolvePlatforms(tx, in.PlatformIDs)
		if err != nil {
			return err
		}
		categories, err := resolveCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}

		product := Product{
			Name:                in.Name,
			Description:         in.Description,
			Price:               in.Price,
			DiscountPercentage:  in.DiscountPercentage,
			MainImageURL:        in.MainImageURL,
			AdditionalImageURLs: in.AdditionalImageURLs,
			FileURL:             in.FileURL,
			IsActive:            in.IsActive,
		}
		if err := tx.Omit("Platforms", "Categories").Create(&product).Error; err != nil {
			return err
		}
		id = product.ID
		return replaceLinks(tx, &product, platforms, categories)
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(id)
}

// UpdateProduct overwrites the product with in and returns the product as
// it was before, so replaced files can be cleaned up.
func (r *Repository) UpdateProduct(id string, in ProductInput) (updated, previous *ds.Product, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		product, err := r.findProduct(tx, id)
		if err != nil {
			return err
		}
		before := product.toDS()
		previous = &before

		platforms, err := resolvePlatforms(tx, in.PlatformIDs)
		if err != nil {
			return err
		}
		categories, err := resolveCategories(tx, in.CategoryIDs)
		if err != nil {
			return err
		}

		product.Name = in.Name
		product.Description = in.Description
		product.Price = in.Price
		if in.DiscountPercentage != nil {
			product.DiscountPercentage = in.DiscountPercentage
		}
		product.IsActive = in.IsActive
		if in.MainImageURL != "" {
			product.MainImageURL = in.MainImageURL
		}
		if len(in.AdditionalImageURLs) > 0 {
			product.AdditionalImageURLs = in.AdditionalImageURLs
		}
		if in.FileURL != "" {
			product.FileURL = in.FileURL
		}
		if err := tx.Omit("Platforms", "Categories").Save(product).Error; err != nil {
			return err
		}
		return replaceLinks(tx, product, platforms, categories)
	})
	if err != nil {
		return nil, nil, err
	}
	updated, err = r.GetProduct(id)
	return updated, previous, err
}

// DeleteProduct removes a product nobody has ordered and returns it.
func (r *Repository) DeleteProduct(id string) (*ds.Product, error) {
	var deleted ds.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		product, err := r.findProduct(tx, id)
		if err != nil {
			return err
		}
		var orders int64
		if err := tx.Model(&Order{}).Where("product_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return fmt.Errorf("product has %d orders: %w", orders, ErrConflict)
		}
		deleted = product.toDS()
		return tx.Select("Platforms", "Categories").Delete(product).Error
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func replaceLinks(tx *gorm.DB, product *Product, platforms []Platform, categories []Category) error {
	if err := tx.Model(product).Association("Platforms").Replace(platforms); err != nil {
		return fmt.Errorf("link platforms: %w", err)
	}
	if err := tx.Model(product).Association("Categories").Replace(categories); err != nil {
		return fmt.Errorf("link categories: %w", err)
	}
	return nil
}

func resolvePlatforms(tx *gorm.DB, refs []string) ([]Platform, error) {
	refs = unique(refs)
	platforms := []Platform{}
	if len(refs) == 0 {
		return platforms, nil
	}
	if err := tx.Where("id IN ? OR name IN ?", refs, refs).Find(&platforms).Error; err != nil {
		return nil, err
	}
	if len(platforms) < len(refs) {
		return nil, fmt.Errorf("unknown platform in %v: %w", refs, ErrInvalid)
	}
	return platforms, nil
}

func resolveCategories(tx *gorm.DB, refs []string) ([]Category, error) {
	refs = unique(refs)
	categories := []Category{}
	if len(refs) == 0 {
		return categories, nil
	}
	if err := tx.Where("id IN ? OR slug IN ?", refs, refs).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) < len(refs) {
		return nil, fmt.Errorf("unknown category in %v: %w", refs, ErrInvalid)
	}
	return categories, nil
}

func unique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
