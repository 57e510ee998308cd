package domain_test

import (
	"testing"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := domain.NewMoney(10050)
	require.NoError(t, err)
	assert.Equal(t, int64(10050), m.Cents())
}

func TestNewMoney_NegativeRejected(t *testing.T) {
	_, err := domain.NewMoney(-1)
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidAmount))
}

func TestMoneyFromDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cents int64
	}{
		{"plain decimal", "100.50", 10050},
		{"no fraction", "100", 10000},
		{"thousands separator stripped", "1,234.56", 123456},
		{"currency prefix stripped", "R$ 19.99", 1999},
		{"rounds half away from zero", "100.555", 10056},
		{"single cent", "0.01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := domain.MoneyFromDecimal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestMoneyFromDecimal_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "R$", "-5.00"} {
		_, err := domain.MoneyFromDecimal(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := domain.MoneyFromFloat(19.99)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), m.Cents())
}

func TestMoney_AddSubtract(t *testing.T) {
	a, _ := domain.NewMoney(1000)
	b, _ := domain.NewMoney(250)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(1250), sum.Cents())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, int64(750), diff.Cents())
}

func TestMoney_SubtractBelowZeroRejected(t *testing.T) {
	a, _ := domain.NewMoney(100)
	b, _ := domain.NewMoney(101)

	_, err := a.Subtract(b)
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidAmount))
}

func TestMoney_Comparisons(t *testing.T) {
	a, _ := domain.NewMoney(100)
	b, _ := domain.NewMoney(100)
	c, _ := domain.NewMoney(99)

	assert.True(t, a.IsGreaterOrEqual(b))
	assert.True(t, a.IsGreaterOrEqual(c))
	assert.False(t, c.IsGreaterOrEqual(a))
	assert.True(t, domain.Zero().IsZero())
	assert.False(t, a.IsZero())
}

func TestMoney_ToDecimal(t *testing.T) {
	m, _ := domain.NewMoney(10050)
	assert.Equal(t, "100.50", m.ToDecimal())
	assert.Equal(t, "0.00", domain.Zero().ToDecimal())

	cent, _ := domain.NewMoney(5)
	assert.Equal(t, "0.05", cent.ToDecimal())
}
