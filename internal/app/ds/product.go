package ds

import "time"

type Product struct {
	ID                  string     `json:"id" validate:"required"`
	Name                string     `json:"name"`
	Description         string     `json:"description"` // HTML from the rich-text editor
	Price               float64    `json:"price"`
	DiscountPercentage  *float64   `json:"discount_percentage,omitempty"`
	Platforms           []Platform `json:"platforms,omitempty" validate:"dive"`
	Categories          []Category `json:"categories,omitempty" validate:"dive"`
	MainImageURL        string     `json:"main_image_url"`
	AdditionalImageURLs []string   `json:"additional_image_urls,omitempty"`
	FileURL             string     `json:"file_url"`
	IsActive            bool       `json:"is_active"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// PlatformNames returns the names of the attached platforms in order.
func (p *Product) PlatformNames() []string {
	names := make([]string, 0, len(p.Platforms))
	for _, pl := range p.Platforms {
		names = append(names, pl.Name)
	}
	return names
}

// CategoryNames returns the names of the attached categories in order.
func (p *Product) CategoryNames() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}
