// Package catalog provides the investment plan and mining package catalog.
package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

func ptr[T any](v T) *T {
	return &v
}

// DefaultPlans returns the investment plans seeded by the setup workflow.
func DefaultPlans() []models.InvestmentPlan {
	return []models.InvestmentPlan{
		{
			Name:          "Starter",
			Description:   ptr("Perfect for beginners with a low minimum investment"),
			DailyROI:      3,
			DurationDays:  30,
			MinimumAmount: 100,
			MaximumAmount: ptr(1000.0),
			IsActive:      true,
		},
		{
			Name:          "Advanced",
			Description:   ptr("Higher returns for experienced investors"),
			DailyROI:      5,
			DurationDays:  45,
			MinimumAmount: 500,
			MaximumAmount: ptr(5000.0),
			IsActive:      true,
		},
		{
			Name:          "Professional",
			Description:   ptr("Maximum returns for serious investors"),
			DailyROI:      8,
			DurationDays:  60,
			MinimumAmount: 1000,
			MaximumAmount: ptr(10000.0),
			IsActive:      true,
		},
	}
}

// DefaultPackages returns the mining packages seeded by the setup workflow.
func DefaultPackages() []models.MiningPackage {
	return []models.MiningPackage{
		{
			Name:         "Basic Mining",
			Description:  ptr("Entry-level mining package"),
			HashRate:     10,
			Price:        100,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Name:         "Standard Mining",
			Description:  ptr("Mid-level mining package with better hash rate"),
			HashRate:     50,
			Price:        450,
			DurationDays: 60,
			IsActive:     true,
		},
		{
			Name:         "Premium Mining",
			Description:  ptr("High-performance mining package"),
			HashRate:     100,
			Price:        800,
			DurationDays: 90,
			IsActive:     true,
		},
	}
}

// Seed inserts the default plans and packages.
func Seed(db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	plans := DefaultPlans()
	if err := db.Create(&plans).Error; err != nil {
		return err
	}

	packages := DefaultPackages()

	return db.Create(&packages).Error
}

// Plans returns all investment plans ordered by minimum amount.
func Plans(db *gorm.DB) ([]models.InvestmentPlan, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var plans []models.InvestmentPlan
	if err := db.Order("minimum_amount").Find(&plans).Error; err != nil {
		return nil, err
	}

	return plans, nil
}

// Packages returns all mining packages ordered by price.
func Packages(db *gorm.DB) ([]models.MiningPackage, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var packages []models.MiningPackage
	if err := db.Order("price").Find(&packages).Error; err != nil {
		return nil, err
	}

	return packages, nil
}
