package balancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceSkewedWallet(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 750, 10, 120), // 90000
		security("TMOS", "BBG000000002", 500, 50, 60),  // 30000
	}
	desired := DesiredWallet{{"TRUR", 50}, {"TMOS", 50}}

	result, err := Balance(wallet, desired, nil, ModeManual, MarginConfig{}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, ModeManual, result.ModeUsed)
	assert.InDelta(t, 120000, result.TotalPortfolioValue, 1e-6)
	assert.InDelta(t, 50, result.TargetWeights["TRUR"], 1e-6)
	require.Len(t, result.Orders, 2)
	assert.Equal(t, Sell, result.Orders[0].Action)
	assert.Equal(t, Buy, result.Orders[1].Action)
}

func TestBalanceEmptyWallet(t *testing.T) {
	result, err := Balance(Wallet{}, DesiredWallet{{"TRUR", 100}}, nil, ModeManual, MarginConfig{}, nil, false)
	require.NoError(t, err)

	assert.Zero(t, result.TotalPortfolioValue)
	assert.Empty(t, result.Orders)
	assert.Empty(t, result.FinalPercents)
}

func TestBalanceEmptyDesiredWallet(t *testing.T) {
	wallet := Wallet{security("TRUR", "BBG000000001", 100, 10, 6)}

	result, err := Balance(wallet, DesiredWallet{}, nil, ModeManual, MarginConfig{}, nil, false)
	require.NoError(t, err)

	assert.Empty(t, result.Orders)
	// доли текущего портфеля при этом отдаются
	assert.InDelta(t, 100, result.FinalPercents["TRUR"], 1e-6)
}

func TestBalanceDeploysCash(t *testing.T) {
	// свежий счёт: только деньги, бумаги покупаются по справочнику
	wallet := Wallet{cash("RUB", 120000)}
	desired := DesiredWallet{{"TRUR", 50}, {"TMOS", 50}}
	catalog := LotCatalog{
		"TRUR": {Figi: "BBG000000001", LotSize: 10, PriceNumber: 120},
		"TMOS": {Figi: "BBG000000002", LotSize: 50, PriceNumber: 60},
	}

	result, err := Balance(wallet, desired, nil, ModeManual, MarginConfig{}, catalog, false)
	require.NoError(t, err)

	require.Len(t, result.Orders, 2)
	for _, o := range result.Orders {
		assert.Equal(t, Buy, o.Action)
	}
	assert.InDelta(t, 50, result.FinalPercents["TRUR"], 1)
	assert.InDelta(t, 50, result.FinalPercents["TMOS"], 1)
}

func TestBalanceMarginGating(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 1000, 10, 100),
	}

	result, err := Balance(wallet, DesiredWallet{{"TRUR", 100}}, nil, ModeManual, MarginConfig{Enabled: false}, nil, false)
	require.NoError(t, err)

	assert.Zero(t, result.MarginInfo.TotalMarginUsed)
	assert.True(t, result.MarginInfo.WithinLimits)
}

func TestBalanceDryRunStillPlans(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 750, 10, 120),
		security("TMOS", "BBG000000002", 500, 50, 60),
	}
	desired := DesiredWallet{{"TRUR", 50}, {"TMOS", 50}}

	result, err := Balance(wallet, desired, nil, ModeManual, MarginConfig{}, nil, true)
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.NotEmpty(t, result.Orders)
}

func TestBalanceRecordsFallbackMode(t *testing.T) {
	wallet := Wallet{security("TRUR", "BBG000000001", 100, 10, 6)}

	result, err := Balance(wallet, DesiredWallet{{"TRUR", 100}}, nil, ModeMarketcapAUM, MarginConfig{}, nil, false)
	require.NoError(t, err)
	assert.Equal(t, ModeDefault, result.ModeUsed)
}

func TestBalanceInvalidMarginConfig(t *testing.T) {
	_, err := Balance(Wallet{}, DesiredWallet{}, nil, ModeManual,
		MarginConfig{Enabled: true, Multiplier: 0.5, Strategy: StrategyKeep}, nil, false)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}
