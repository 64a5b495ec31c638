package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
}

// DemoUsername is the single account the app runs against. Auth is out of
// scope; the request middleware resolves this user for every call.
const DemoUsername = "demo-user"
