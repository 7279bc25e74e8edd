package models

import (
	"time"
)

// User roles
const (
	RoleAdmin    = "ADMIN"
	RoleResident = "RESIDENT"
)

// User represents the users table
type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Email     string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password;not null"`
	Name      string    `json:"name" gorm:"column:name;not null"`
	Role      string    `json:"role" gorm:"column:role;default:RESIDENT"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Resident *Resident `json:"resident,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the insert table name for User
func (User) TableName() string {
	return "users"
}
