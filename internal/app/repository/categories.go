package repository

import (
	"fmt"
	"regexp"
	"strings"

	"marketadmin/internal/app/ds"

	"gorm.io/gorm"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases name and joins its alphanumeric runs with dashes.
func Slugify(name string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func (r *Repository) ListCategories() ([]ds.Category, error) {
	var categories []Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	out := make([]ds.Category, len(categories))
	for i := range categories {
		out[i] = categories[i].toDS()
	}
	return out, nil
}

func (r *Repository) GetCategory(id string) (*ds.Category, error) {
	var category Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	out := category.toDS()
	return &out, nil
}

func (r *Repository) CreateCategory(name string) (*ds.Category, error) {
	category := Category{Name: strings.TrimSpace(name)}
	if err := r.fillSlug(&category); err != nil {
		return nil, err
	}
	if err := r.db.Create(&category).Error; err != nil {
		return nil, err
	}
	out := category.toDS()
	return &out, nil
}

func (r *Repository) UpdateCategory(id, name string) (*ds.Category, error) {
	var category Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "category")
	}
	category.Name = strings.TrimSpace(name)
	if err := r.fillSlug(&category); err != nil {
		return nil, err
	}
	if err := r.db.Save(&category).Error; err != nil {
		return nil, err
	}
	out := category.toDS()
	return &out, nil
}

func (r *Repository) DeleteCategory(id string) error {
	var category Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return notFound(err, "category")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

func (r *Repository) fillSlug(c *Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required: %w", ErrInvalid)
	}
	c.Slug = Slugify(c.Name)
	if c.Slug == "" {
		return fmt.Errorf("category name %q has no letters or digits: %w", c.Name, ErrInvalid)
	}

	var n int64
	q := r.db.Model(&Category{}).Where("slug = ?", c.Slug)
	if c.ID != "" {
		q = q.Where("id <> ?", c.ID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category %q already exists: %w", c.Name, ErrConflict)
	}
	return nil
}
