package moex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issFixture = `{
	"securities": {
		"columns": ["SECID", "SHORTNAME", "LOTSIZE", "ISSUESIZE"],
		"data": [
			["TRUR", "Тинькофф Вечный портфель", 100, 5000000000],
			["TMOS", "Тинькофф iMOEX", 100, "3000000000"],
			["TGLD", "Тинькофф Золото", 100, null]
		]
	},
	"marketdata": {
		"columns": ["SECID", "LAST"],
		"data": [
			["TRUR", 6.0],
			["TMOS", 7.5],
			["TGLD", 0.0712]
		]
	}
}`

func issServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/iss/engines/stock/markets/shares/boards/TQTF/securities.json")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(issFixture))
	}))
}

func TestISSSecurities(t *testing.T) {
	server := issServer(t)
	defer server.Close()

	securities, err := NewISSClient(server.URL).Securities(context.Background())
	require.NoError(t, err)
	require.Len(t, securities, 3)

	trur := securities["TRUR"]
	assert.EqualValues(t, 100, trur.LotSize)
	assert.InDelta(t, 30e9, trur.MarketCap(), 1)

	// объём выпуска строкой тоже разбирается
	assert.InDelta(t, 22.5e9, securities["TMOS"].MarketCap(), 1)

	// null в объёме выпуска даёт нулевую капитализацию, а не ошибку
	assert.Zero(t, securities["TGLD"].MarketCap())
}

func TestISSBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewISSClient(server.URL).Securities(context.Background())
	require.Error(t, err)
}

func TestProviderSnapshot(t *testing.T) {
	server := issServer(t)
	defer server.Close()

	aumPath := filepath.Join(t.TempDir(), "aum.yaml")
	require.NoError(t, os.WriteFile(aumPath, []byte("funds:\n  TRUR: 25000000000\n"), 0644))

	provider := NewProvider(NewISSClient(server.URL), aumPath)
	snapshot, err := provider.Snapshot(context.Background(), []string{"TRUR", "TMOS", "TDIV"})
	require.NoError(t, err)

	trur := snapshot["TRUR"]
	assert.InDelta(t, 30e9, trur.MarketCap, 1)
	assert.InDelta(t, 25e9, trur.AUM, 1)
	assert.InDelta(t, 20, trur.DecorrelationPct, 0.01)

	// СЧА по TMOS нет — декорреляция не считается
	assert.Zero(t, snapshot["TMOS"].DecorrelationPct)

	// неизвестный площадке тикер присутствует в снимке с нулями
	assert.Zero(t, snapshot["TDIV"].MarketCap)
}

func TestProviderSnapshotWithoutAUMFile(t *testing.T) {
	server := issServer(t)
	defer server.Close()

	provider := NewProvider(NewISSClient(server.URL), "")
	snapshot, err := provider.Snapshot(context.Background(), []string{"TRUR"})
	require.NoError(t, err)
	assert.Zero(t, snapshot["TRUR"].AUM)
}

func TestLoadAUMSnapshotMissingFile(t *testing.T) {
	_, err := LoadAUMSnapshot("/nonexistent/aum.yaml")
	require.Error(t, err)
}
