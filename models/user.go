package models

import "strings"

// User is the single account type. Staff accounts may manage the tag
// catalog and edit other authors' recipes.
type User struct {
	ID           uint   `json:"id" db:"id" gorm:"primaryKey"`
	Email        string `json:"email" db:"email" gorm:"type:varchar(254);not null;uniqueIndex"`
	Username     string `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	FirstName    string `json:"first_name" db:"first_name" gorm:"type:varchar(150)"`
	LastName     string `json:"last_name" db:"last_name" gorm:"type:varchar(150)"`
	PasswordHash string `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsStaff      bool   `json:"-" db:"is_staff" gorm:"not null;default:false"`

	Recipes []Recipe `json:"-" gorm:"foreignKey:AuthorID"`
}

// FullName returns "First Last", falling back to the username when the
// profile has no name set.
func (u User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}
