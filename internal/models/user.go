package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Username     string `gorm:"size:100;not null" json:"username"`
	Email        string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
}

// SetPassword replaces the stored hash with a bcrypt hash of password.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword returns false for a wrong password or a malformed hash,
// never an error. Comparison timing is handled by bcrypt itself.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
