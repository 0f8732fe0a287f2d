package balancer

// Желаемая доля одного инструмента.
// Веса относительные: перед расчётом нормализуются к 100 ровно один раз (см. ResolveTargetWeights)
type DesiredPosition struct {
	Ticker string
	Weight float64
}

// Желаемый портфель — упорядоченный список (тикер, вес).
// Представлен списком, а не map, чтобы сохранить порядок из конфигурации
// и исключить посторонние ключи
type DesiredWallet []DesiredPosition

func (dw DesiredWallet) Sum() float64 {
	var sum float64
	for _, d := range dw {
		sum += d.Weight
	}
	return sum
}

func (dw DesiredWallet) Weight(ticker string) (float64, bool) {
	for _, d := range dw {
		if d.Ticker == ticker {
			return d.Weight, true
		}
	}
	return 0, false
}

func (dw DesiredWallet) Tickers() []string {
	result := make([]string, 0, len(dw))
	for _, d := range dw {
		result = append(result, d.Ticker)
	}
	return result
}
