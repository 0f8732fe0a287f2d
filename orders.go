package balancer

import (
	"math"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// Планировщик заявок: превращает целевые проценты в целое число лотов
// на покупку или продажу по каждому тикеру

// Направление заявки
type OrderAction int

const (
	Buy OrderAction = iota + 1
	Sell
)

func (a OrderAction) String() string {
	switch a {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unspecified"
	}
}

// Запланированная заявка. Forced выставлен у принудительных продаж,
// сокращающих маржинальные позиции до лимита
type PlannedOrder struct {
	Ticker string
	Figi   string
	Action OrderAction
	Lots   int64
	Forced bool
}

// Котировочные данные, необходимые для пересчёта процентов в лоты.
// Для тикеров, которых ещё нет в портфеле, берутся из справочника инструментов
type LotInfo struct {
	Figi           string
	LotSize        int64
	PriceNumber    float64
	LotPriceNumber float64
}

type LotCatalog map[string]LotInfo

// Результат планирования
type OrderPlan struct {
	FinalPercents map[string]float64 // прогноз долей после исполнения заявок
	Orders        []PlannedOrder
}

// Составляет план заявок. Дробный остаток меньше одного лота отбрасывается
// (задокументированная потеря округления, в рамках цикла не добирается).
// Тикер без котировочных данных пропускается с диагностикой, остальной план
// при этом строится. Ошибкой завершается только некорректный справочник
// (неположительный размер лота)
func PlanOrders(wallet Wallet, targets map[string]float64, totalValue float64, marginInfo MarginInfo, cfg MarginConfig, catalog LotCatalog) (*OrderPlan, error) {
	lots, err := mergeCatalog(wallet, catalog)
	if err != nil {
		return nil, err
	}

	// прогнозные стоимости позиций: начинаю с текущих и применяю заявки по мере планирования
	projected := make(map[string]float64)
	for _, p := range wallet {
		if !p.IsCurrency() {
			projected[p.Base] = p.TotalPriceNumber
		}
	}

	var orders []PlannedOrder

	// сначала принудительные продажи по маржинальной политике,
	// целевые заявки ниже считаются уже от сокращённых позиций
	forced := planForcedReductions(wallet, marginInfo, cfg, lots)
	forcedTickers := make(map[string]bool, len(forced))
	for _, o := range forced {
		orders = append(orders, o)
		projected[o.Ticker] -= float64(o.Lots) * lots[o.Ticker].LotPriceNumber
		forcedTickers[o.Ticker] = true
	}

	for ticker, targetPct := range targets {
		li, ok := lots[ticker]
		if !ok {
			l.Warn("нет котировочных данных по инструменту, пропускаю",
				zap.String("ticker", ticker))
			continue
		}
		if li.LotPriceNumber <= 0 {
			l.Warn("нулевая цена лота, пропускаю инструмент",
				zap.String("ticker", ticker))
			continue
		}

		targetValue := targetPct / 100 * totalValue
		currentValue := projected[ticker]
		// усечение к нулю: план никогда не перескакивает цель больше чем на лот
		deltaLots := int64(math.Trunc((targetValue - currentValue) / li.LotPriceNumber))
		if deltaLots == 0 {
			continue
		}

		action := Buy
		if deltaLots < 0 {
			action = Sell
		}
		// докупать только что принудительно проданное — значит снова занять у брокера
		if action == Buy && forcedTickers[ticker] {
			l.Debug("пропускаю покупку принудительно сокращённой позиции",
				zap.String("ticker", ticker))
			continue
		}
		orders = append(orders, PlannedOrder{
			Ticker: ticker,
			Figi:   li.Figi,
			Action: action,
			Lots:   abs64(deltaLots),
		})
		projected[ticker] = currentValue + float64(deltaLots)*li.LotPriceNumber
	}

	// продажи вперёд: они освобождают деньги для покупок.
	// принудительные продажи идут раньше целевых заявок того же тикера
	slices.SortStableFunc(orders, func(a, b PlannedOrder) bool {
		if a.Action != b.Action {
			return a.Action == Sell
		}
		if a.Forced != b.Forced {
			return a.Forced
		}
		return a.Ticker < b.Ticker
	})

	return &OrderPlan{
		FinalPercents: calculateValueShares(projected),
		Orders:        orders,
	}, nil
}

// Сводит котировочные данные: позиции портфеля дополняются справочником
// инструментов для тикеров, которых в портфеле ещё нет
func mergeCatalog(wallet Wallet, catalog LotCatalog) (LotCatalog, error) {
	lots := make(LotCatalog, len(catalog)+len(wallet))
	for ticker, li := range catalog {
		if li.LotSize <= 0 {
			return nil, configErrorf("instrument %s has non-positive lot size %d", ticker, li.LotSize)
		}
		if li.LotPriceNumber == 0 {
			li.LotPriceNumber = li.PriceNumber * float64(li.LotSize)
		}
		lots[ticker] = li
	}
	for _, p := range wallet {
		if p.IsCurrency() {
			continue
		}
		if _, ok := lots[p.Base]; ok {
			continue
		}
		if p.LotSize <= 0 {
			return nil, configErrorf("position %s has non-positive lot size %d", p.Base, p.LotSize)
		}
		lots[p.Base] = LotInfo{
			Figi:           p.Figi,
			LotSize:        p.LotSize,
			PriceNumber:    p.PriceNumber,
			LotPriceNumber: p.LotPriceNumber,
		}
	}
	return lots, nil
}

// Принудительные продажи при выходе маржи за лимит.
// keep — ничего не продаём; remove — снимаем всю использованную маржу;
// keep_if_small — крупные позиции снимают только превышение лимита
func planForcedReductions(wallet Wallet, marginInfo MarginInfo, cfg MarginConfig, lots LotCatalog) []PlannedOrder {
	if !cfg.Enabled || marginInfo.WithinLimits || cfg.Strategy == StrategyKeep {
		return nil
	}

	reduceTotal := marginInfo.TotalMarginUsed
	if cfg.Strategy == StrategyKeepIfSmall {
		reduceTotal = marginInfo.TotalMarginUsed - marginInfo.CreditCapacity
	}
	if reduceTotal <= 0 {
		return nil
	}

	var candidates []*Position
	var candidatesValue float64
	for _, ticker := range marginInfo.MarginPositions {
		p := wallet.Get(ticker)
		if p == nil {
			continue
		}
		if cfg.Strategy == StrategyKeepIfSmall && p.TotalPriceNumber < smallPositionValue {
			continue
		}
		candidates = append(candidates, p)
		candidatesValue += p.TotalPriceNumber
	}
	if candidatesValue == 0 {
		return nil
	}

	var orders []PlannedOrder
	for _, p := range candidates {
		li := lots[p.Base]
		if li.LotPriceNumber <= 0 {
			continue
		}
		reduceValue := reduceTotal * p.TotalPriceNumber / candidatesValue
		// округление вверх, чтобы гарантированно вернуться в лимит
		reduceLots := int64(math.Ceil(reduceValue / li.LotPriceNumber))
		maxLots := p.Amount / p.LotSize
		if reduceLots > maxLots {
			reduceLots = maxLots
		}
		if reduceLots < 1 {
			continue
		}
		orders = append(orders, PlannedOrder{
			Ticker: p.Base,
			Figi:   li.Figi,
			Action: Sell,
			Lots:   reduceLots,
			Forced: true,
		})
	}
	return orders
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
