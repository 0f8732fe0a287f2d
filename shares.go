package balancer

// Считает текущую долю каждой бумаги в процентах от суммарной стоимости бумаг.
// Валютные позиции в расчёте не участвуют и в результат не попадают.
// Пустой или полностью валютный портфель даёт пустой результат — деления на ноль нет
func CalculatePortfolioShares(wallet Wallet) map[string]float64 {
	securitiesTotal := wallet.SecuritiesTotal()
	if securitiesTotal == 0 {
		return map[string]float64{}
	}

	shares := make(map[string]float64)
	for _, p := range wallet {
		if p.IsCurrency() {
			continue
		}
		shares[p.Base] = p.TotalPriceNumber / securitiesTotal * 100
	}
	return shares
}

// Та же логика долей, но по произвольной карте стоимостей.
// Используется планировщиком заявок для прогноза долей после сделок
func calculateValueShares(values map[string]float64) map[string]float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return map[string]float64{}
	}

	shares := make(map[string]float64, len(values))
	for ticker, v := range values {
		shares[ticker] = v / total * 100
	}
	return shares
}
