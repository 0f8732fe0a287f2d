package moex

// Клиент ISS API Московской биржи. Это обычный JSON API, через него
// собирается капитализация фондов: объём выпуска * последняя цена

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultEndpoint = "https://iss.moex.com"

// Фонды обращаются на площадке TQTF
const defaultBoard = "TQTF"

type ISSClient struct {
	endpoint string
	board    string
	http     *http.Client
}

func NewISSClient(endpoint string) *ISSClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &ISSClient{
		endpoint: endpoint,
		board:    defaultBoard,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Таблица ISS: список колонок и строки значений
type issTable struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

type securitiesResponse struct {
	Securities issTable `json:"securities"`
	Marketdata issTable `json:"marketdata"`
}

// Сводка по одному инструменту с площадки
type SecurityInfo struct {
	Ticker    string
	LotSize   int64
	IssueSize decimal.Decimal // объём выпуска в штуках
	LastPrice decimal.Decimal
}

// Капитализация: объём выпуска * последняя цена. Ноль, если данных нет
func (s SecurityInfo) MarketCap() float64 {
	cap, _ := s.IssueSize.Mul(s.LastPrice).Float64()
	return cap
}

// Загружает сводку по всем инструментам площадки
func (c *ISSClient) Securities(ctx context.Context) (map[string]SecurityInfo, error) {
	url := fmt.Sprintf("%s/iss/engines/stock/markets/shares/boards/%s/securities.json?iss.meta=off", c.endpoint, c.board)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "iss request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "iss call")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("iss status %s", resp.Status)
	}

	var payload securitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "iss decode")
	}

	result := make(map[string]SecurityInfo)
	for _, row := range payload.Securities.rows() {
		ticker := row.str("SECID")
		if ticker == "" {
			continue
		}
		result[ticker] = SecurityInfo{
			Ticker:    ticker,
			LotSize:   row.dec("LOTSIZE").IntPart(),
			IssueSize: row.dec("ISSUESIZE"),
		}
	}
	for _, row := range payload.Marketdata.rows() {
		ticker := row.str("SECID")
		info, ok := result[ticker]
		if !ok {
			continue
		}
		info.LastPrice = row.dec("LAST")
		result[ticker] = info
	}

	l.Debug("сводка с площадки загружена",
		zap.String("board", c.board),
		zap.Int("securities", len(result)))
	return result, nil
}

// Строка таблицы ISS с доступом к значениям по имени колонки
type issRow struct {
	columns map[string]int
	values  []any
}

func (t issTable) rows() []issRow {
	columns := make(map[string]int, len(t.Columns))
	for i, name := range t.Columns {
		columns[name] = i
	}
	result := make([]issRow, 0, len(t.Data))
	for _, values := range t.Data {
		result = append(result, issRow{columns: columns, values: values})
	}
	return result
}

func (r issRow) str(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.values) {
		return ""
	}
	s, _ := r.values[i].(string)
	return s
}

// Числа ISS приходят как float64 или строка, иногда null
func (r issRow) dec(column string) decimal.Decimal {
	i, ok := r.columns[column]
	if !ok || i >= len(r.values) {
		return decimal.Zero
	}
	switch v := r.values[i].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
