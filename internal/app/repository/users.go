package repository

import (
	"fmt"
	"strings"

	"marketadmin/internal/app/ds"

	"gorm.io/gorm"
)

// UserUpdate holds the fields a partial update may change; nil means keep.
type UserUpdate struct {
	Email      *string
	Name       *string
	Role       *ds.Role
	IsActive   *bool
	IsVerified *bool
}

func (r *Repository) CreateUser(email, passwordHash, name string, role ds.Role) (*ds.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	exists, err := r.UserExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", ErrConflict)
	}

	user := User{
		Email:      email,
		Password:   passwordHash,
		Name:       name,
		Role:       string(role),
		IsActive:   true,
		IsVerified: role == ds.RoleAdmin,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	out := user.toDS()
	return &out, nil
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var n int64
	err := r.db.Model(&User{}).Where("email = ?", strings.ToLower(email)).Count(&n).Error
	return n > 0, err
}

// UserCredentials returns the user together with its password hash.
func (r *Repository) UserCredentials(email string) (*ds.User, string, error) {
	var user User
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		return nil, "", notFound(err, "user")
	}
	out := user.toDS()
	return &out, user.Password, nil
}

func (r *Repository) GetUserByID(id string) (*ds.User, error) {
	var user User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	out := user.toDS()
	return &out, nil
}

func (r *Repository) ListUsers(limit, offset int) ([]ds.User, int64, error) {
	limit, offset = pageBounds(limit, offset)

	var total int64
	if err := r.db.Model(&User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	if err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	out := make([]ds.User, len(users))
	for i := range users {
		out[i] = users[i].toDS()
	}
	return out, total, nil
}

func (r *Repository) UpdateUser(id string, upd UserUpdate) (*ds.User, error) {
	var user User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "user")
	}

	fields := map[string]interface{}{}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if email != user.Email {
			exists, err := r.UserExistsByEmail(email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("email already registered: %w", ErrConflict)
			}
		}
		fields["email"] = email
	}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Role != nil {
		if *upd.Role != ds.RoleAdmin && *upd.Role != ds.RoleMarketplace {
			return nil, fmt.Errorf("role %q: %w", *upd.Role, ErrInvalid)
		}
		fields["role"] = string(*upd.Role)
	}
	if upd.IsActive != nil {
		fields["is_active"] = *upd.IsActive
	}
	if upd.IsVerified != nil {
		fields["is_verified"] = *upd.IsVerified
	}

	if len(fields) > 0 {
		if err := r.db.Model(&user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetUserByID(id)
}

func (r *Repository) UpdateUserPassword(id, passwordHash string) error {
	res := r.db.Model(&User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %w", ErrNotFound)
	}
	return nil
}

// DeleteUser removes a user without orders. Users with order history are
// kept so past licenses stay attributable.
func (r *Repository) DeleteUser(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFound(err, "user")
		}
		var orders int64
		if err := tx.Model(&Order{}).Where("user_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return fmt.Errorf("user has %d orders: %w", orders, ErrConflict)
		}
		return tx.Delete(&user).Error
	})
}
