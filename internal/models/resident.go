package models

import (
	"time"
)

// Resident represents the residents table. A resident is never hard-deleted;
// deactivation flips IsActive and blocks new charge creation only.
type Resident struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	HouseNumber string    `json:"house_number" gorm:"column:house_number;uniqueIndex;not null"`
	Phone       string    `json:"phone" gorm:"column:phone"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	UserID      uint      `json:"user_id" gorm:"column:user_id;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
