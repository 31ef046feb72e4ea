package reset

import (
	"reflect"
	"slices"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
)

// Table names that take part in resets.
const (
	TableUsers           = "users"
	TableInvestmentPlans = "investment_plans"
	TableMiningPackages  = "mining_packages"
	TableUserInvestments = "user_investments"
	TableUserMining      = "user_mining"
	TableTransactions    = "transactions"
)

// table describes a resettable table. rows returns a pointer to an empty slice of its model.
type table struct {
	name  string
	model any
	rows  func() any
}

// tables is ordered parents first; deletes walk it backwards.
var tables = []table{
	{TableUsers, &models.User{}, func() any { return &[]models.User{} }},
	{TableInvestmentPlans, &models.InvestmentPlan{}, func() any { return &[]models.InvestmentPlan{} }},
	{TableMiningPackages, &models.MiningPackage{}, func() any { return &[]models.MiningPackage{} }},
	{TableUserInvestments, &models.UserInvestment{}, func() any { return &[]models.UserInvestment{} }},
	{TableUserMining, &models.UserMining{}, func() any { return &[]models.UserMining{} }},
	{TableTransactions, &models.Transaction{}, func() any { return &[]models.Transaction{} }},
}

// FullBackupTables lists the tables captured by a full reset.
func FullBackupTables() []string {
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.name)
	}

	return out
}

// FullDeleteTables lists the tables emptied by a full reset, children first.
func FullDeleteTables() []string {
	return deleteOrder(FullBackupTables())
}

func lookup(name string) (table, bool) {
	for _, t := range tables {
		if t.name == name {
			return t, true
		}
	}

	return table{}, false
}

func position(name string) int {
	return slices.IndexFunc(tables, func(t table) bool { return t.name == name })
}

// resolve validates names and removes duplicates, keeping the first occurrence.
func resolve(names []string) ([]string, error) {
	out := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := lookup(name); !ok {
			return nil, unknownTable(name)
		}

		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	return out, nil
}

// deleteOrder drops users and sorts children before parents.
func deleteOrder(names []string) []string {
	out := make([]string, 0, len(names))

	for _, name := range names {
		if name != TableUsers {
			out = append(out, name)
		}
	}

	slices.SortFunc(out, func(a, b string) int {
		return position(b) - position(a)
	})

	return out
}

// restoreOrder drops users and sorts parents before children.
func restoreOrder(names []string) []string {
	out := deleteOrder(names)
	slices.Reverse(out)

	return out
}

func sliceLen(rows any) int {
	return reflect.ValueOf(rows).Elem().Len()
}
