package models

// All lists every model for auto migration.
func All() []any {
	return []any{
		&Setting{},
		&Account{},
		&User{},
		&InvestmentPlan{},
		&MiningPackage{},
		&UserInvestment{},
		&UserMining{},
		&Transaction{},
	}
}
