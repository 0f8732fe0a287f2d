package balancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeMarginDisabled(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 1000, 10, 100), // 100000 в долг
	}

	info := SizeMargin(wallet, MarginConfig{Enabled: false}, wallet.TotalValue())

	assert.Zero(t, info.TotalMarginUsed)
	assert.Empty(t, info.MarginPositions)
	assert.True(t, info.WithinLimits)
}

func TestSizeMarginWithinLimits(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 10000, 10, 6), // 60000
		cash("RUB", 60000),
	}
	cfg := MarginConfig{
		Enabled:    true,
		Multiplier: 2,
		Strategy:   StrategyKeep,
	}

	info := SizeMargin(wallet, cfg, wallet.TotalValue())

	assert.Zero(t, info.TotalMarginUsed)
	assert.True(t, info.WithinLimits)
}

func TestSizeMarginOverage(t *testing.T) {
	// позиция куплена полностью в долг, потолок маржи 5000
	wallet := Wallet{
		security("TRUR", "BBG000000001", 1000, 10, 100), // 100000
	}
	cfg := MarginConfig{
		Enabled:       true,
		Multiplier:    2,
		MaxMarginSize: 5000,
		Strategy:      StrategyRemove,
	}

	info := SizeMargin(wallet, cfg, wallet.TotalValue())

	assert.InDelta(t, 100000, info.TotalMarginUsed, 1e-6)
	assert.InDelta(t, 5000, info.CreditCapacity, 1e-6)
	assert.False(t, info.WithinLimits)
	assert.Equal(t, []string{"TRUR"}, info.MarginPositions)
}

func TestSizeMarginFreeThreshold(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 100, 10, 100), // 10000
		cash("RUB", 8000),
	}
	cfg := MarginConfig{
		Enabled:       true,
		Multiplier:    1,
		FreeThreshold: 5000,
		Strategy:      StrategyKeep,
	}

	info := SizeMargin(wallet, cfg, wallet.TotalValue())

	// 10000 - 8000 - 5000 < 0 — маржа не используется
	assert.Zero(t, info.TotalMarginUsed)
	assert.True(t, info.WithinLimits)
}

func TestMarginConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  MarginConfig
		ok   bool
	}{
		{"disabled is always valid", MarginConfig{Enabled: false}, true},
		{"valid", MarginConfig{Enabled: true, Multiplier: 1.5, Strategy: StrategyKeep}, true},
		{"multiplier below 1", MarginConfig{Enabled: true, Multiplier: 0.5, Strategy: StrategyKeep}, false},
		{"negative threshold", MarginConfig{Enabled: true, Multiplier: 2, FreeThreshold: -1, Strategy: StrategyKeep}, false},
		{"negative max size", MarginConfig{Enabled: true, Multiplier: 2, MaxMarginSize: -1, Strategy: StrategyKeep}, false},
		{"strategy not set", MarginConfig{Enabled: true, Multiplier: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, IsConfigurationError(err))
			}
		})
	}
}

func TestParseBalancingStrategy(t *testing.T) {
	for _, name := range []string{"keep", "keep_if_small", "remove"} {
		s, err := ParseBalancingStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseBalancingStrategy("hodl")
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}
