package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RolePartner  Role = "partner"
	RoleUser     Role = "user"
)

// User is the auth account. LinkedID points at the Customer, Driver or
// Partner row the account acts for; generic accounts carry no link.
type User struct {
	gorm.Model
	FullName     string `json:"fullName" gorm:"column:full_name;not null"`
	Email        string `json:"email" gorm:"column:email;unique;not null"`
	Password     string `json:"-" gorm:"-"` // Transient, only PasswordHash is persisted
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Mobile       string `json:"mobile" gorm:"column:mobile"`
	Role         Role   `json:"role" gorm:"column:role;not null;default:user"`
	LinkedID     uint   `json:"linkedId" gorm:"column:linked_id"`
	ImageURL     string `json:"imgUrl" gorm:"column:image_url"`
	RefreshToken string `json:"-" gorm:"column:refresh_token"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
