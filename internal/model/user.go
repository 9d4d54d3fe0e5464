package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User represents a registered account (customer or staff)
type User struct {
	BaseModel
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email_id" validate:"required,email"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"`
	PhoneNumber string `gorm:"type:varchar(20);index" json:"phone_number"`
	Image       string `gorm:"type:varchar(500)" json:"image"`
	Role        string `gorm:"type:varchar(20);default:customer" json:"role"`

	// Email verification
	IsConfirmed bool       `gorm:"default:false" json:"is_confirmed"`
	ConfirmOTP  *string    `gorm:"type:varchar(6)" json:"-"`
	OTPTries    int        `gorm:"default:0" json:"-"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// FullName joins first and last name for display
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email_id"`
	PhoneNumber string    `json:"phone_number"`
	Image       string    `json:"image"`
	Role        string    `json:"role"`
	IsConfirmed bool      `json:"is_confirmed"`
	IsActive    bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Image:       u.Image,
		Role:        u.Role,
		IsConfirmed: u.IsConfirmed,
		IsActive:    u.IsActive,
	}
}
