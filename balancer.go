package balancer

// Оркестратор цикла балансировки: веса -> маржа -> заявки

// Итог одного цикла балансировки
type BalancerResult struct {
	FinalPercents       map[string]float64 // прогноз долей после исполнения плана
	TargetWeights       map[string]float64 // целевые проценты по применённому режиму
	ModeUsed            Mode               // фактически применённый режим (после откатов)
	TotalPortfolioValue float64
	MarginInfo          MarginInfo
	Orders              []PlannedOrder
	DryRun              bool // план построен, но отправлять его брокеру не предполагается
}

// Balance выполняет один цикл балансировки: по снимку портфеля, желаемым
// весам и метрикам строит план заявок. Функция чистая: не делает I/O и не
// изменяет аргументы, её можно звать параллельно для разных счетов.
//
// Пробелы в данных (пустой портфель, отсутствующие метрики) разрешаются
// откатами и цикл не прерывают; ошибкой завершается только некорректная
// конфигурация
func Balance(wallet Wallet, desired DesiredWallet, metrics MetricsSnapshot, mode Mode, marginCfg MarginConfig, catalog LotCatalog, dryRun bool) (*BalancerResult, error) {
	if err := marginCfg.Validate(); err != nil {
		return nil, err
	}

	totalValue := wallet.TotalValue()

	targets, modeUsed := ResolveTargetWeights(desired, mode, metrics)
	marginInfo := SizeMargin(wallet, marginCfg, totalValue)

	// нулевая стоимость портфеля или пустые цели — план пустой, а не NaN
	if totalValue == 0 || len(targets) == 0 {
		return &BalancerResult{
			FinalPercents:       CalculatePortfolioShares(wallet),
			TargetWeights:       targets,
			ModeUsed:            modeUsed,
			TotalPortfolioValue: totalValue,
			MarginInfo:          marginInfo,
			DryRun:              dryRun,
		}, nil
	}

	plan, err := PlanOrders(wallet, targets, totalValue, marginInfo, marginCfg, catalog)
	if err != nil {
		return nil, err
	}

	return &BalancerResult{
		FinalPercents:       plan.FinalPercents,
		TargetWeights:       targets,
		ModeUsed:            modeUsed,
		TotalPortfolioValue: totalValue,
		MarginInfo:          marginInfo,
		Orders:              plan.Orders,
		DryRun:              dryRun,
	}, nil
}
