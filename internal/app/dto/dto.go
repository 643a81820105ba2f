package dto

import "marketadmin/internal/app/ds"

// ============ Common ============

// ErrorResponse is the body the backend sends with a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Page is the pagination envelope returned by every list endpoint. The
// server is the source of truth for Total.
type Page[T any] struct {
	Data  []T   `json:"data" validate:"dive"`
	Total int64 `json:"total" validate:"gte=0"`
}

// ============ Auth ============

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  ds.User `json:"user"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type RegisterResponse struct {
	Message string  `json:"message"`
	User    ds.User `json:"user"`
}

// ============ Users ============

// UpdateUserRequest is a partial update: nil fields are not sent.
type UpdateUserRequest struct {
	Email      *string  `json:"email,omitempty" binding:"omitempty,email"`
	Name       *string  `json:"name,omitempty"`
	Role       *ds.Role `json:"role,omitempty" binding:"omitempty,oneof=admin marketplace"`
	IsActive   *bool    `json:"is_active,omitempty"`
	IsVerified *bool    `json:"is_verified,omitempty"`
}

// IsEmpty reports whether the update carries no fields.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Email == nil && r.Name == nil && r.Role == nil && r.IsActive == nil && r.IsVerified == nil
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ============ Categories ============

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ============ Products ============

// ProductQuery carries the list filters. Empty strings are omitted from
// the query string.
type ProductQuery struct {
	Limit    int
	Offset   int
	Platform string
	Category string
	Search   string
}

// ============ Payments ============

type ApprovePaymentRequest struct {
	Status ds.PaymentStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// ============ Orders and licenses ============

type LicenseRedeemedRequest struct {
	Redeemed bool `json:"redeemed"`
}

// CreateLicenseRequest issues a license directly. A nil Total means "use
// the product price"; a zero Total is a complimentary license and is sent.
type CreateLicenseRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	UserID    string   `json:"user_id" binding:"required"`
	Total     *float64 `json:"total,omitempty" binding:"omitempty,gte=0"`
}
