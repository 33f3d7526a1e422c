package models

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	}
	return false
}

// TransactionCategory classifies a transaction. Unknown values are rejected
// at the boundary; an empty category falls back to CategoryOthers.
type TransactionCategory string

const (
	CategoryFood          TransactionCategory = "food"
	CategoryTravel        TransactionCategory = "travel"
	CategoryShopping      TransactionCategory = "shopping"
	CategoryGrocery       TransactionCategory = "grocery"
	CategorySalary        TransactionCategory = "salary"
	CategoryEntertainment TransactionCategory = "entertainment"
	CategoryBills         TransactionCategory = "bills"
	CategoryOthers        TransactionCategory = "others"
)

// Valid reports whether c is one of the known categories.
func (c TransactionCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTravel, CategoryShopping, CategoryGrocery,
		CategorySalary, CategoryEntertainment, CategoryBills, CategoryOthers:
		return true
	}
	return false
}

// Transaction represents a financial transaction owned by a single user.
// The owner is assigned at creation and never serialized or reassigned.
type Transaction struct {
	Base
	UserID      uint                `gorm:"not null;index" json:"-"`
	Description string              `gorm:"size:255" json:"description"`
	Amount      float64             `gorm:"not null" json:"amount"`
	Category    TransactionCategory `gorm:"size:50;not null;default:others" json:"category"`
	Type        TransactionType     `gorm:"size:10;not null" json:"type"`
	Date        Date                `gorm:"not null" json:"date"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
