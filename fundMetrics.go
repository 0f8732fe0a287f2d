package balancer

// Метрики одного фонда, собранные внешним сборщиком (пакет moex).
// Любое из значений может отсутствовать (нулевое) — балансировщик в этом
// случае откатывается к равным весам для этого тикера
type FundMetric struct {
	MarketCap        float64 // капитализация: объём выпуска * последняя цена
	AUM              float64 // стоимость чистых активов фонда
	DecorrelationPct float64 // (MarketCap - AUM) / AUM * 100
}

// Снимок метрик по тикерам на момент цикла балансировки. Только для чтения
type MetricsSnapshot map[string]FundMetric

// Считает процент декорреляции — расхождение капитализации и СЧА.
// Положительное значение означает, что фонд торгуется дороже своих активов
func Decorrelation(marketCap float64, aum float64) float64 {
	if aum == 0 {
		return 0
	}
	return (marketCap - aum) / aum * 100
}
