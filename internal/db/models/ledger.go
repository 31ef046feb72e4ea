package models

import "time"

// UserInvestment is an amount a user placed into an investment plan.
type UserInvestment struct {
	Base
	UserID         string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	PlanID         string     `gorm:"type:varchar(36);index;not null" json:"plan_id"`
	Amount         float64    `gorm:"not null" json:"amount"`
	Status         string     `gorm:"size:50;not null" json:"status"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	LastPayoutDate *time.Time `json:"last_payout_date"`
}

// TableName specifies the database table name for the UserInvestment model.
func (UserInvestment) TableName() string {
	return "user_investments"
}

// UserMining is a mining package bought by a user.
type UserMining struct {
	Base
	UserID         string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	PackageID      string     `gorm:"type:varchar(36);index;not null" json:"package_id"`
	HashRate       float64    `gorm:"not null" json:"hash_rate"`
	Cryptocurrency string     `gorm:"size:20;not null" json:"cryptocurrency"`
	Status         string     `gorm:"size:50;not null" json:"status"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
}

// TableName specifies the database table name for the UserMining model.
func (UserMining) TableName() string {
	return "user_mining"
}

// Transaction is one deposit, withdrawal or payout of a user.
type Transaction struct {
	Base
	UserID          string  `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Type            string  `gorm:"size:50;not null" json:"type"`
	Amount          float64 `gorm:"not null" json:"amount"`
	Currency        string  `gorm:"size:20;not null" json:"currency"`
	Status          string  `gorm:"size:50;not null" json:"status"`
	TransactionHash *string `gorm:"size:255" json:"transaction_hash"`
	ReferenceID     *string `gorm:"size:36" json:"reference_id"`
}

// TableName specifies the database table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
