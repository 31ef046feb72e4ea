package models

// InvestmentPlan is a fixed-term plan with a daily return on investment in percent.
type InvestmentPlan struct {
	Base
	Name          string   `gorm:"size:100;not null" json:"name"`
	Description   *string  `gorm:"size:255" json:"description"`
	DailyROI      float64  `gorm:"column:daily_roi;not null" json:"daily_roi"`
	DurationDays  int      `gorm:"not null" json:"duration_days"`
	MinimumAmount float64  `gorm:"not null" json:"minimum_amount"`
	MaximumAmount *float64 `json:"maximum_amount"`
	IsActive      bool     `gorm:"not null" json:"is_active"`
}

// TableName specifies the database table name for the InvestmentPlan model.
func (InvestmentPlan) TableName() string {
	return "investment_plans"
}

// MiningPackage is a hash rate rental sold for a fixed price and duration.
type MiningPackage struct {
	Base
	Name         string  `gorm:"size:100;not null" json:"name"`
	Description  *string `gorm:"size:255" json:"description"`
	HashRate     float64 `gorm:"not null" json:"hash_rate"` // GH/s
	Price        float64 `gorm:"not null" json:"price"`
	DurationDays int     `gorm:"not null" json:"duration_days"`
	IsActive     bool    `gorm:"not null" json:"is_active"`
}

// TableName specifies the database table name for the MiningPackage model.
func (MiningPackage) TableName() string {
	return "mining_packages"
}
