package moex

import (
	"context"

	"github.com/go-invest/balancer"
	"go.uber.org/zap"
)

var _ balancer.MetricsProvider = (*Provider)(nil)

// Сборщик метрик фондов: капитализация с биржи, СЧА из файла-снимка.
// Частично отсутствующие данные не ошибка — балансировщик сам решает,
// чем их заменить
type Provider struct {
	iss     *ISSClient
	aumPath string
}

func NewProvider(iss *ISSClient, aumPath string) *Provider {
	return &Provider{
		iss:     iss,
		aumPath: aumPath,
	}
}

func (p *Provider) Snapshot(ctx context.Context, tickers []string) (balancer.MetricsSnapshot, error) {
	securities, err := p.iss.Securities(ctx)
	if err != nil {
		return nil, err
	}

	aum, err := LoadAUMSnapshot(p.aumPath)
	if err != nil {
		l.Warn("снимок СЧА не загружен, продолжаю без него", zap.Error(err))
		aum = &AUMSnapshot{}
	}

	snapshot := make(balancer.MetricsSnapshot, len(tickers))
	for _, ticker := range tickers {
		metric := balancer.FundMetric{
			AUM: aum.Funds[ticker],
		}
		if info, ok := securities[ticker]; ok {
			metric.MarketCap = info.MarketCap()
		} else {
			l.Warn("инструмент не найден на площадке", zap.String("ticker", ticker))
		}
		if metric.MarketCap > 0 && metric.AUM > 0 {
			metric.DecorrelationPct = balancer.Decorrelation(metric.MarketCap, metric.AUM)
		}
		snapshot[ticker] = metric
	}
	return snapshot, nil
}
