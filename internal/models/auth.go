package models

import (
	"time"

	"trainhub/internal/rbac"
)

type User struct {
	Base
	Email      string        `gorm:"uniqueIndex;not null" json:"email"`
	Password   string        `gorm:"not null" json:"-"`
	FirstName  string        `json:"firstName"`
	LastName   string        `json:"lastName"`
	Role       rbac.Role     `gorm:"not null;default:'TRAINEE'" json:"role"`
	Department string        `json:"department,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Passcodes  []Passcode    `gorm:"foreignKey:IssuedByID" json:"passcodes,omitempty"`
	Sessions   []AuthSession `gorm:"foreignKey:UserID" json:"sessions,omitempty"`
}

// Passcode is a short-lived, single-use credential issued to a trainee in
// lieu of a password. It is consumed exactly once by a matching trainee
// login and never deleted; the table retains history.
type Passcode struct {
	Base
	TraineeEmail string     `gorm:"index;not null" json:"traineeEmail" validate:"required,email"`
	Code         string     `gorm:"not null" json:"code"`
	IssuedByID   string     `gorm:"type:uuid;default:NULL" json:"issuedById,omitempty"`
	IssuedBy     *User      `json:"issuedBy,omitempty"`
	ExpiresAt    time.Time  `gorm:"not null" json:"expiresAt"`
	IsUsed       bool       `gorm:"default:false" json:"isUsed"`
	UsedAt       *time.Time `json:"usedAt,omitempty"`
}

// AuthSession records an issued token pair for a logged-in user.
type AuthSession struct {
	Base
	UserID    string    `gorm:"type:uuid;default:NULL" json:"userId,omitempty"`
	User      *User     `json:"user,omitempty"`
	Email     string    `gorm:"index;not null" json:"email"`
	Role      rbac.Role `gorm:"not null" json:"role"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `json:"refresh,omitempty"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
