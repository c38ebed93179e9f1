package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Editor  UserRole = "editor"
	Admin   UserRole = "admin"
)

type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','editor','admin');default:'student'" json:"role"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// Privileged reports whether the user may overwrite any question field,
// bypassing the write-once and stale-version checks of the edit workflow.
func (u *User) Privileged() bool {
	return u.Role == Editor || u.Role == Admin
}
