package balancer

// Расчёт маржинальной ёмкости счёта и классификация позиций,
// купленных сверх свободных денег

// Стратегия обращения с маржинальными позициями при выходе за лимит
type BalancingStrategy int

const (
	StrategyUnspecified BalancingStrategy = iota
	StrategyKeep                          // ничего не продавать принудительно, только пометить в результате
	StrategyKeepIfSmall                   // мелкие позиции оставить, крупные сократить пропорционально
	StrategyRemove                        // сократить всё маржинальное до размера, обеспеченного деньгами
)

var strategy2string = map[BalancingStrategy]string{
	StrategyKeep:        "keep",
	StrategyKeepIfSmall: "keep_if_small",
	StrategyRemove:      "remove",
}

func (s BalancingStrategy) String() string {
	name, ok := strategy2string[s]
	if !ok {
		return "unspecified"
	}
	return name
}

func ParseBalancingStrategy(s string) (BalancingStrategy, error) {
	for strategy, name := range strategy2string {
		if name == s {
			return strategy, nil
		}
	}
	return StrategyUnspecified, configErrorf("unknown balancing strategy %q", s)
}

// Позиция дешевле этого значения (в валюте счёта) считается мелкой
// для стратегии keep_if_small
const smallPositionValue = 3000.0

// Настройки маржинальной торговли счёта
type MarginConfig struct {
	Enabled       bool
	Multiplier    float64 // множитель капитала, >= 1. 1 означает торговлю только на свои
	FreeThreshold float64 // размер маржи, который допускается не замечать
	MaxMarginSize float64 // жёсткий потолок маржи в валюте счёта, 0 — без потолка
	Strategy      BalancingStrategy
}

func (c MarginConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Multiplier < 1 {
		return configErrorf("margin multiplier %.2f is less than 1", c.Multiplier)
	}
	if c.FreeThreshold < 0 {
		return configErrorf("margin free threshold %.2f is negative", c.FreeThreshold)
	}
	if c.MaxMarginSize < 0 {
		return configErrorf("margin max size %.2f is negative", c.MaxMarginSize)
	}
	if c.Strategy == StrategyUnspecified {
		return configErrorf("margin balancing strategy is not set")
	}
	return nil
}

// Состояние маржи счёта на момент расчёта
type MarginInfo struct {
	TotalMarginUsed float64  // стоимость бумаг, не обеспеченная деньгами и порогом
	CreditCapacity  float64  // доступное кредитное плечо сверх собственных средств
	MarginPositions []string // тикеры, купленные частично или полностью в долг
	WithinLimits    bool
}

// Оценивает использование маржи по снимку портфеля.
// Принудительные продажи здесь не планируются — это работа планировщика заявок
func SizeMargin(wallet Wallet, cfg MarginConfig, totalValue float64) MarginInfo {
	if !cfg.Enabled {
		return MarginInfo{WithinLimits: true}
	}

	creditCapacity := totalValue * (cfg.Multiplier - 1)
	if cfg.MaxMarginSize > 0 && creditCapacity > cfg.MaxMarginSize {
		creditCapacity = cfg.MaxMarginSize
	}

	cashAvailable := wallet.CashTotal()
	securitiesTotal := wallet.SecuritiesTotal()

	marginUsed := securitiesTotal - cashAvailable - cfg.FreeThreshold
	if marginUsed < 0 {
		marginUsed = 0
	}

	info := MarginInfo{
		TotalMarginUsed: marginUsed,
		CreditCapacity:  creditCapacity,
		WithinLimits:    marginUsed <= creditCapacity,
	}
	if marginUsed == 0 {
		return info
	}

	// маржинальными считаю позиции, чья стоимость превышает приходящуюся
	// на них равную долю свободных денег
	var securities int
	for _, p := range wallet {
		if !p.IsCurrency() {
			securities++
		}
	}
	proRata := cashAvailable / float64(securities)
	for _, p := range wallet {
		if p.IsCurrency() {
			continue
		}
		if p.TotalPriceNumber > proRata {
			info.MarginPositions = append(info.MarginPositions, p.Base)
		}
	}
	return info
}
