package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-invest/balancer"
)

const sampleConfig = `
aum_snapshot: /var/lib/balancer/aum.yaml
accounts:
  - name: main
    account_id: "2000012345"
    desired_mode: manual
    desired_wallet:
      - ticker: TRUR
        weight: 50
      - ticker: TMOS
        weight: 30
      - ticker: TGLD
        weight: 20
    balancing_interval: 4h
    sleep_between_orders: 3s
    exchange_closure_behavior: dry_run
  - name: sandbox
    account_id: ${BALANCER_TEST_ACCOUNT}
    sandbox: true
    desired_mode: marketcap
    desired_wallet:
      - ticker: TRUR
        weight: 1
      - ticker: TMOS
        weight: 1
    dry_run: true
    margin_trading:
      enabled: true
      multiplier: 1.5
      free_threshold: 5000
      max_margin_size: 10000
      balancing_strategy: keep_if_small
`

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "balancer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("BALANCER_TEST_ACCOUNT", "9000054321")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, "/var/lib/balancer/aum.yaml", cfg.AUMSnapshot)

	main := cfg.Accounts[0]
	assert.Equal(t, "2000012345", main.AccountID)
	assert.Equal(t, "MOEX", main.Exchange)
	assert.Equal(t, balancer.ModeManual, main.Mode())
	assert.Equal(t, 4*time.Hour, main.Interval())
	assert.Equal(t, 3*time.Second, main.OrderPause())
	assert.Equal(t, ClosureDryRun, main.ClosureBehavior())
	assert.False(t, main.MarginConfig().Enabled)

	desired := main.ToDesiredWallet()
	require.Len(t, desired, 3)
	assert.Equal(t, "TRUR", desired[0].Ticker)
	assert.EqualValues(t, 50, desired[0].Weight)

	sandbox := cfg.Accounts[1]
	assert.Equal(t, "9000054321", sandbox.AccountID, "переменная окружения подставляется")
	assert.True(t, sandbox.Sandbox)
	assert.Equal(t, balancer.ModeMarketcap, sandbox.Mode())
	assert.Equal(t, time.Hour, sandbox.Interval(), "интервал по умолчанию")
	assert.Equal(t, ClosureSkip, sandbox.ClosureBehavior(), "поведение по умолчанию")

	margin := sandbox.MarginConfig()
	assert.True(t, margin.Enabled)
	assert.EqualValues(t, 1.5, margin.Multiplier)
	assert.Equal(t, balancer.StrategyKeepIfSmall, margin.Strategy)
}

func TestLoadValidation(t *testing.T) {
	base := func(wallet, extra string) string {
		return "accounts:\n  - name: acc\n    account_id: \"123\"\n" + wallet + extra
	}
	wallet := "    desired_wallet:\n      - ticker: TRUR\n        weight: 100\n"

	testCases := []struct {
		name string
		body string
	}{
		{"no accounts", "accounts: []\n"},
		{"no account id", "accounts:\n  - name: acc\n" + wallet},
		{"empty wallet", base("", "")},
		{"zero weight", base("    desired_wallet:\n      - ticker: TRUR\n        weight: 0\n", "")},
		{"ticker missing", base("    desired_wallet:\n      - weight: 100\n", "")},
		{"unknown mode", base(wallet, "    desired_mode: magic\n")},
		{"bad interval", base(wallet, "    balancing_interval: soon\n")},
		{"unknown closure behavior", base(wallet, "    exchange_closure_behavior: panic\n")},
		{"unknown margin strategy", base(wallet, "    margin_trading:\n      enabled: true\n      multiplier: 1.5\n      balancing_strategy: hope\n")},
		{"bad multiplier", base(wallet, "    margin_trading:\n      enabled: true\n      multiplier: 0.5\n      balancing_strategy: keep\n")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/balancer.yaml")
	require.Error(t, err)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("BALANCER_TOKEN", "t.secret")
	assert.Equal(t, "token: t.secret", expandEnvVars("token: ${BALANCER_TOKEN}"))
	assert.Equal(t, "token: ", expandEnvVars("token: ${BALANCER_UNSET_VAR}"))
	assert.Equal(t, "plain", expandEnvVars("plain"))
}
