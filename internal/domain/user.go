package domain

import "time"

type User struct {
	ID           string     `gorm:"primaryKey;size:26" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:191;not null" json:"username"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	DisplayName  string     `gorm:"size:128;not null" json:"display_name"`
	Role         Role       `gorm:"size:16;not null;default:user" json:"role"`
	Customer     *string    `gorm:"size:255" json:"customer"`
	IsActive     bool       `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `gorm:"column:last_login" json:"last_login"`
}

func (User) TableName() string { return "users" }

// Identity is the authenticated caller resolved from a token.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, Role: u.Role, IsActive: u.IsActive}
}

// UserCreate is the admin-facing payload for a new account.
type UserCreate struct {
	Username    string  `json:"username"     binding:"required,max=191"`
	Password    string  `json:"password"     binding:"required,max=72"`
	DisplayName string  `json:"display_name" binding:"required,max=128"`
	Role        Role    `json:"role"`
	Customer    *string `json:"customer"     binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

// UserUpdate only touches the fields that are present.
type UserUpdate struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=128"`
	Role        *Role   `json:"role"`
	Customer    *string `json:"customer"     binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
	Password    *string `json:"password"     binding:"omitempty,max=72"`
}
