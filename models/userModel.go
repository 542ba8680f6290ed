package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name                   string `json:"name"`
	Email                  string `json:"email" gorm:"uniqueIndex;size:255"`
	Phone                  string `json:"phone" gorm:"size:15"`
	Password               string `json:"-"`
	IsAdmin                bool   `json:"isAdmin"`
	IsBanned               bool   `json:"isBanned"`
	AccountActivated       bool   `json:"accountActivated"`
	AccountActivationToken string `json:"-"`
	PasswordResetToken     string `json:"-"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
