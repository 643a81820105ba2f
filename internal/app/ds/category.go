package ds

import "time"

type Category struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Platform struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPlatforms is the set the backend ships with. Platforms are still
// modelled as arbitrary named entities.
var DefaultPlatforms = []string{"ios", "android", "web", "windows", "macos"}
