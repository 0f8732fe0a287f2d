package balancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noMargin() (MarginInfo, MarginConfig) {
	return MarginInfo{WithinLimits: true}, MarginConfig{}
}

func TestPlanOrdersSkewedWallet(t *testing.T) {
	// TRUR 90000 при цене лота 1200, TMOS 30000 при цене лота 3000
	wallet := Wallet{
		security("TRUR", "BBG000000001", 750, 10, 120),
		security("TMOS", "BBG000000002", 500, 50, 60),
	}
	targets := map[string]float64{"TRUR": 50, "TMOS": 50}
	info, cfg := noMargin()

	plan, err := PlanOrders(wallet, targets, 120000, info, cfg, nil)
	require.NoError(t, err)
	require.Len(t, plan.Orders, 2)

	// продажа идёт первой
	sell := plan.Orders[0]
	assert.Equal(t, "TRUR", sell.Ticker)
	assert.Equal(t, Sell, sell.Action)
	assert.EqualValues(t, 25, sell.Lots) // -30000 / 1200

	buy := plan.Orders[1]
	assert.Equal(t, "TMOS", buy.Ticker)
	assert.Equal(t, Buy, buy.Action)
	assert.EqualValues(t, 10, buy.Lots) // +30000 / 3000

	assert.InDelta(t, 50, plan.FinalPercents["TRUR"], 0.1)
	assert.InDelta(t, 50, plan.FinalPercents["TMOS"], 0.1)
}

func TestPlanOrdersIdempotentAtTarget(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 10000, 10, 6), // 60000
		security("TMOS", "BBG000000002", 10000, 10, 6), // 60000
	}
	targets := map[string]float64{"TRUR": 50, "TMOS": 50}
	info, cfg := noMargin()

	plan, err := PlanOrders(wallet, targets, wallet.TotalValue(), info, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Orders)
}

func TestPlanOrdersSubLotResidualDropped(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 750, 10, 120), // 90000, лот 1200
		cash("RUB", 1000),
	}
	// цель 91000, дельта +1000 меньше одного лота
	targets := map[string]float64{"TRUR": 100}
	info, cfg := noMargin()

	plan, err := PlanOrders(wallet, targets, 91000, info, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Orders)
}

func TestPlanOrdersNoOvershoot(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 337, 10, 5.67),
		security("TMOS", "BBG000000002", 12, 50, 6.28),
		cash("RUB", 20000),
	}
	catalog := LotCatalog{
		"TGLD": {Figi: "BBG000000003", LotSize: 100, PriceNumber: 0.0712},
	}
	targets := map[string]float64{"TRUR": 40, "TMOS": 35, "TGLD": 25}
	totalValue := wallet.TotalValue()
	info, cfg := noMargin()

	plan, err := PlanOrders(wallet, targets, totalValue, info, cfg, catalog)
	require.NoError(t, err)

	lots, err := mergeCatalog(wallet, catalog)
	require.NoError(t, err)
	for _, o := range plan.Orders {
		li := lots[o.Ticker]
		signed := float64(o.Lots) * li.LotPriceNumber
		if o.Action == Sell {
			signed = -signed
		}
		var current float64
		if p := wallet.Get(o.Ticker); p != nil {
			current = p.TotalPriceNumber
		}
		target := targets[o.Ticker] / 100 * totalValue
		// план не перескакивает цель больше чем на стоимость одного лота
		assert.LessOrEqual(t, absFloat(current+signed-target), li.LotPriceNumber,
			"ticker %s", o.Ticker)
	}
}

func TestPlanOrdersUnknownInstrumentSkipped(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 750, 10, 120),
	}
	// TMOS нет ни в портфеле, ни в справочнике
	targets := map[string]float64{"TRUR": 50, "TMOS": 50}
	info, cfg := noMargin()

	plan, err := PlanOrders(wallet, targets, 90000, info, cfg, nil)
	require.NoError(t, err)
	require.Len(t, plan.Orders, 1)
	assert.Equal(t, "TRUR", plan.Orders[0].Ticker)
}

func TestPlanOrdersBadLotSize(t *testing.T) {
	wallet := Wallet{}
	catalog := LotCatalog{
		"TRUR": {Figi: "BBG000000001", LotSize: 0, PriceNumber: 6},
	}
	info, cfg := noMargin()

	_, err := PlanOrders(wallet, map[string]float64{"TRUR": 100}, 10000, info, cfg, catalog)
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}

func TestPlanOrdersForcedMarginReduction(t *testing.T) {
	// позиция полностью в долг, сверх потолка маржи, стратегия remove
	wallet := Wallet{
		security("TRUR", "BBG000000001", 1000, 10, 100), // 100000, лот 1000
	}
	cfg := MarginConfig{
		Enabled:       true,
		Multiplier:    2,
		MaxMarginSize: 5000,
		Strategy:      StrategyRemove,
	}
	totalValue := wallet.TotalValue()
	info := SizeMargin(wallet, cfg, totalValue)
	require.False(t, info.WithinLimits)

	plan, err := PlanOrders(wallet, map[string]float64{"TRUR": 100}, totalValue, info, cfg, nil)
	require.NoError(t, err)

	require.NotEmpty(t, plan.Orders)
	forced := plan.Orders[0]
	assert.True(t, forced.Forced)
	assert.Equal(t, Sell, forced.Action)
	assert.EqualValues(t, 100, forced.Lots) // вся позиция не обеспечена деньгами
	// обратного выкупа проданного в плане нет
	for _, o := range plan.Orders[1:] {
		assert.NotEqual(t, Buy, o.Action)
	}
}

func TestPlanOrdersKeepStrategyDoesNotSell(t *testing.T) {
	wallet := Wallet{
		security("TRUR", "BBG000000001", 1000, 10, 100),
	}
	cfg := MarginConfig{
		Enabled:       true,
		Multiplier:    2,
		MaxMarginSize: 5000,
		Strategy:      StrategyKeep,
	}
	totalValue := wallet.TotalValue()
	info := SizeMargin(wallet, cfg, totalValue)
	require.False(t, info.WithinLimits)

	plan, err := PlanOrders(wallet, map[string]float64{"TRUR": 100}, totalValue, info, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Orders)
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
