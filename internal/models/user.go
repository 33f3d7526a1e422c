package models

// User represents a registered account in the database
type User struct {
	Base
	Username     string        `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email        string        `gorm:"size:255" json:"email"`
	Password     string        `gorm:"not null" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}
