package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	BaseUUIDModel
	Email        string     `gorm:"type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:text;not null"             json:"-"`
	FullName     string     `gorm:"type:text"                      json:"fullName"`
	Phone        string     `gorm:"type:text"                      json:"phone"`
	IsActive     bool       `gorm:"type:bool;default:true"         json:"isActive"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                 json:"lastLoginAt,omitempty"`

	Roles []UserRole `gorm:"foreignKey:UserID" json:"roles,omitempty"`
}

// UserRole grants a user one role. A user may hold several.
type UserRole struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_role" json:"userId"`
	Role   Role      `gorm:"type:text;not null;uniqueIndex:idx_user_roles_user_role" json:"role"`
}

func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// IsEmployee reports whether the user may act on any booking, which both the
// employee and admin roles permit.
func (u *User) IsEmployee() bool {
	return u.HasRole(RoleEmployee) || u.HasRole(RoleAdmin)
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// UserProfile is the public view of a user returned by the API.
type UserProfile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Phone       string     `json:"phone,omitempty"`
	Roles       []Role     `json:"roles"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	roles := make([]Role, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, r.Role)
	}
	return UserProfile{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Roles:       roles,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
	}
}
