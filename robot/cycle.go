package main

// Один цикл балансировки счёта: снимок портфеля и котировок, расчёт
// плана, вывод и отправка заявок. Вся арифметика в пакете balancer,
// здесь только сбор данных и исполнение

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/go-invest/balancer"
	"github.com/go-invest/balancer/config"
)

func balanceAccount(ctx context.Context, broker balancer.Broker, provider balancer.MetricsProvider, acc *config.AccountConfig, dryRun bool) error {
	open, err := broker.IsExchangeOpen(ctx, acc.Exchange)
	if err != nil {
		return err
	}
	if !open {
		switch acc.ClosureBehavior() {
		case config.ClosureSkip:
			l.Info("биржа закрыта, цикл пропущен",
				zap.String("account", acc.Name),
				zap.String("exchange", acc.Exchange))
			return nil
		case config.ClosureDryRun:
			l.Info("биржа закрыта, план будет построен без отправки заявок",
				zap.String("account", acc.Name))
			dryRun = true
		case config.ClosureForce:
			l.Warn("биржа закрыта, заявки всё равно будут отправлены",
				zap.String("account", acc.Name))
		}
	}

	wallet, err := broker.GetWallet(ctx, acc.AccountID)
	if err != nil {
		return err
	}

	desired := acc.ToDesiredWallet()

	var metrics balancer.MetricsSnapshot
	if acc.Mode().NeedsMetrics() {
		metrics, err = provider.Snapshot(ctx, desired.Tickers())
		if err != nil {
			// без метрик балансировщик откатится к равным весам
			l.Warn("метрики фондов недоступны", zap.String("account", acc.Name), zap.Error(err))
			metrics = nil
		}
	}

	catalog, err := broker.GetLotCatalog(ctx, desired.Tickers())
	if err != nil {
		return err
	}

	result, err := balancer.Balance(wallet, desired, metrics, acc.Mode(), acc.MarginConfig(), catalog, dryRun)
	if err != nil {
		return err
	}
	marginUsedMetric.WithLabelValues(acc.Name).Set(result.MarginInfo.TotalMarginUsed)

	printResult(acc.Name, wallet, result)

	if result.DryRun || len(result.Orders) == 0 {
		return nil
	}
	return broker.SubmitOrders(ctx, acc.AccountID, result.Orders)
}

func printResult(name string, wallet balancer.Wallet, result *balancer.BalancerResult) {
	fmt.Printf("Счёт %s: портфель %.2f, режим %s", name, result.TotalPortfolioValue, result.ModeUsed)
	if result.DryRun {
		fmt.Print(" (dry-run)")
	}
	fmt.Println()

	current := balancer.CalculatePortfolioShares(wallet)

	tbl := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tbl, "Ticker\tCurrent%\tTarget%\tAfter%\t")
	for _, ticker := range sortedTickers(result.TargetWeights, current) {
		fmt.Fprintf(tbl, "%s\t%.2f\t%.2f\t%.2f\t\n",
			ticker, current[ticker], result.TargetWeights[ticker], result.FinalPercents[ticker])
	}
	tbl.Flush()

	if result.MarginInfo.TotalMarginUsed > 0 {
		fmt.Printf("Маржа: использовано %.2f из %.2f, маржинальные позиции %v\n",
			result.MarginInfo.TotalMarginUsed,
			result.MarginInfo.CreditCapacity,
			result.MarginInfo.MarginPositions)
	}

	if len(result.Orders) == 0 {
		fmt.Println("Портфель сбалансирован, заявок нет")
		return
	}
	for _, o := range result.Orders {
		forced := ""
		if o.Forced {
			forced = " (принудительно)"
		}
		fmt.Printf("%s %s %d лот(ов)%s\n", o.Action, o.Ticker, o.Lots, forced)
	}
}

func sortedTickers(targets map[string]float64, current map[string]float64) []string {
	seen := make(map[string]bool, len(targets)+len(current))
	var result []string
	for ticker := range targets {
		if !seen[ticker] {
			seen[ticker] = true
			result = append(result, ticker)
		}
	}
	for ticker := range current {
		if !seen[ticker] {
			seen[ticker] = true
			result = append(result, ticker)
		}
	}
	sort.Strings(result)
	return result
}
