package balancer

// Расчёт целевых весов портфеля по выбранному режиму взвешивания

// Режим взвешивания. Закрытое перечисление: неизвестная строка отклоняется
// на этапе конфигурации и до расчётов не доходит
type Mode int

const (
	ModeUnspecified Mode = iota
	ModeManual           // веса берутся из конфигурации как есть
	ModeDefault          // синоним manual
	ModeMarketcap        // пропорционально капитализации фондов
	ModeAUM              // пропорционально стоимости чистых активов
	ModeMarketcapAUM     // среднее между marketcap и aum
	ModeDecorrelation    // marketcap_aum со сдвигом весов от переоценённых фондов
)

var mode2string = map[Mode]string{
	ModeManual:        "manual",
	ModeDefault:       "default",
	ModeMarketcap:     "marketcap",
	ModeAUM:           "aum",
	ModeMarketcapAUM:  "marketcap_aum",
	ModeDecorrelation: "decorrelation",
}

func (m Mode) String() string {
	s, ok := mode2string[m]
	if !ok {
		return "unspecified"
	}
	return s
}

func ParseMode(s string) (Mode, error) {
	for m, name := range mode2string {
		if name == s {
			return m, nil
		}
	}
	return ModeUnspecified, configErrorf("unknown desired mode %q", s)
}

// Требует ли режим снимка метрик фондов
func (m Mode) NeedsMetrics() bool {
	switch m {
	case ModeMarketcap, ModeAUM, ModeMarketcapAUM, ModeDecorrelation:
		return true
	default:
		return false
	}
}

// Порог материальности декорреляции в процентах. Фонды, торгующиеся дороже
// своих активов более чем на порог, считаются переоценёнными
const decorrelationThreshold = 5.0

// Рассчитывает целевые проценты для каждого тикера желаемого портфеля,
// нормализованные к сумме 100. Вторым значением возвращается фактически
// применённый режим: при полностью отсутствующем снимке метрик
// метрико-зависимые режимы откатываются к default (это не ошибка).
// Нормализация исходных весов выполняется ровно один раз
func ResolveTargetWeights(desired DesiredWallet, mode Mode, metrics MetricsSnapshot) (map[string]float64, Mode) {
	if len(desired) == 0 {
		return map[string]float64{}, mode
	}
	if mode.NeedsMetrics() && len(metrics) == 0 {
		l.Warn("снимок метрик отсутствует, откатываюсь к режиму default")
		mode = ModeDefault
	}

	var weights map[string]float64
	switch mode {
	case ModeManual, ModeDefault:
		weights = resolveManual(desired)
	case ModeMarketcap:
		weights = resolveByMetric(desired, metrics, func(m FundMetric) float64 { return m.MarketCap })
	case ModeAUM:
		weights = resolveByMetric(desired, metrics, func(m FundMetric) float64 { return m.AUM })
	case ModeMarketcapAUM:
		weights = resolveMarketcapAUM(desired, metrics)
	case ModeDecorrelation:
		weights = resolveDecorrelation(desired, metrics)
	default:
		// ParseMode не пропускает неизвестные режимы, сюда попадать не должны
		weights = resolveManual(desired)
		mode = ModeDefault
	}
	return weights, mode
}

// Ручной режим: веса конфигурации трактуются как относительные и
// приводятся к сумме 100
func resolveManual(desired DesiredWallet) map[string]float64 {
	sum := desired.Sum()
	if sum <= 0 {
		return map[string]float64{}
	}
	weights := make(map[string]float64, len(desired))
	for _, d := range desired {
		weights[d.Ticker] = d.Weight / sum * 100
	}
	return weights
}

// Взвешивание по одной метрике (капитализация или СЧА).
// Тикеры без метрики получают равную долю 100/N — свой "слот" из желаемого
// портфеля, остальные делят оставшийся бюджет пропорционально метрике
func resolveByMetric(desired DesiredWallet, metrics MetricsSnapshot, value func(FundMetric) float64) map[string]float64 {
	equalShare := 100.0 / float64(len(desired))

	var metricSum float64
	missing := make(map[string]bool)
	for _, d := range desired {
		v := value(metrics[d.Ticker])
		if v <= 0 {
			missing[d.Ticker] = true
			continue
		}
		metricSum += v
	}
	if metricSum == 0 {
		// метрик нет ни по одному тикеру — все получают равные доли
		return resolveEqual(desired)
	}

	budget := 100.0 - equalShare*float64(len(missing))
	weights := make(map[string]float64, len(desired))
	for _, d := range desired {
		if missing[d.Ticker] {
			weights[d.Ticker] = equalShare
			continue
		}
		weights[d.Ticker] = value(metrics[d.Ticker]) / metricSum * budget
	}
	return weights
}

func resolveEqual(desired DesiredWallet) map[string]float64 {
	weights := make(map[string]float64, len(desired))
	for _, d := range desired {
		weights[d.Ticker] = 100.0 / float64(len(desired))
	}
	return weights
}

// Среднее арифметическое весов по капитализации и по СЧА,
// с повторной нормализацией к 100
func resolveMarketcapAUM(desired DesiredWallet, metrics MetricsSnapshot) map[string]float64 {
	byCap := resolveByMetric(desired, metrics, func(m FundMetric) float64 { return m.MarketCap })
	byAUM := resolveByMetric(desired, metrics, func(m FundMetric) float64 { return m.AUM })

	mean := make(map[string]float64, len(desired))
	var sum float64
	for _, d := range desired {
		w := (byCap[d.Ticker] + byAUM[d.Ticker]) / 2
		mean[d.Ticker] = w
		sum += w
	}
	if sum == 0 {
		return resolveEqual(desired)
	}
	for ticker, w := range mean {
		mean[ticker] = w / sum * 100
	}
	return mean
}

// Декорреляция: от весов marketcap_aum часть веса переоценённых фондов
// (декорреляция выше порога) передаётся недооценённым, пропорционально их
// весу. Итоговая сумма остаётся равной 100
func resolveDecorrelation(desired DesiredWallet, metrics MetricsSnapshot) map[string]float64 {
	weights := resolveMarketcapAUM(desired, metrics)

	cuts := make(map[string]float64)
	var shifted float64
	var underSum float64
	for _, d := range desired {
		m := metrics[d.Ticker]
		if m.DecorrelationPct > decorrelationThreshold {
			// снимаю часть веса, пропорциональную превышению порога, но не больше половины
			cut := weights[d.Ticker] * (m.DecorrelationPct - decorrelationThreshold) / 100
			if cut > weights[d.Ticker]/2 {
				cut = weights[d.Ticker] / 2
			}
			cuts[d.Ticker] = cut
			shifted += cut
		} else {
			underSum += weights[d.Ticker]
		}
	}
	// переносить вес некуда (всё переоценено или снимать нечего) —
	// веса остаются как в marketcap_aum, сумма 100 не нарушается
	if shifted == 0 || underSum == 0 {
		return weights
	}

	for _, d := range desired {
		m := metrics[d.Ticker]
		if m.DecorrelationPct <= decorrelationThreshold {
			weights[d.Ticker] += shifted * weights[d.Ticker] / underSum
		} else {
			weights[d.Ticker] -= cuts[d.Ticker]
		}
	}
	return weights
}
