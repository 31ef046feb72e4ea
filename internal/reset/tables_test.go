package reset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullTables(t *testing.T) {
	assert.Equal(t, []string{
		"users", "investment_plans", "mining_packages", "user_investments", "user_mining", "transactions",
	}, FullBackupTables())

	assert.Equal(t, []string{
		"transactions", "user_mining", "user_investments", "mining_packages", "investment_plans",
	}, FullDeleteTables())
}

func TestResolve(t *testing.T) {
	got, err := resolve([]string{"transactions", "users", "transactions"})
	require.NoError(t, err)
	assert.Equal(t, []string{"transactions", "users"}, got)

	_, err = resolve([]string{"accounts"})
	require.ErrorIs(t, err, ErrUnknownTable)

	got, err = resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrders(t *testing.T) {
	names := []string{"investment_plans", "users", "transactions", "user_investments"}

	assert.Equal(t, []string{"transactions", "user_investments", "investment_plans"}, deleteOrder(names))
	assert.Equal(t, []string{"investment_plans", "user_investments", "transactions"}, restoreOrder(names))
	assert.Empty(t, deleteOrder([]string{"users"}))
}
