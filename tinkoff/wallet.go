package tinkoff

import (
	"context"

	"github.com/go-invest/balancer"
	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"go.uber.org/zap"
)

// Снимок портфеля счёта для балансировщика: бумажные позиции из портфеля,
// денежные остатки из списка позиций. Снимок строится заново каждый цикл,
// глобального состояния нет
func (c *Client) GetWallet(ctx context.Context, accountId string) (balancer.Wallet, error) {
	portfolio, err := c.GetOperationsServiceClient().GetPortfolio(ctx, &investapi.PortfolioRequest{
		AccountId: accountId,
	})
	if err != nil {
		l.Error("GetPortfolio", zap.String("accountId", accountId), zap.Error(err))
		return nil, err
	}

	var wallet balancer.Wallet
	for _, p := range portfolio.Positions {
		if p.InstrumentType == "currency" {
			// валютные инструменты портфеля учитываю как денежные остатки ниже
			continue
		}
		desc := c.Instruments.GetByFigi(p.Figi)
		if desc == nil {
			l.Warn("позиция по неизвестному инструменту, пропускаю",
				zap.String("figi", p.Figi))
			continue
		}
		price := balancer.NewMoney(p.CurrentPrice)
		position := balancer.NewPosition(
			desc.GetTicker(),
			price.Currency,
			p.Figi,
			int64(balancer.NewDecimal(p.Quantity).Float()),
			int64(desc.GetLot()),
			price.Value,
		)
		walletValueMetric.WithLabelValues(accountId, desc.GetTicker()).Set(position.TotalPriceNumber)
		wallet = append(wallet, position)
	}

	positions, err := c.GetOperationsServiceClient().GetPositions(ctx, &investapi.PositionsRequest{
		AccountId: accountId,
	})
	if err != nil {
		l.Error("GetPositions", zap.String("accountId", accountId), zap.Error(err))
		return nil, err
	}
	for _, m := range positions.Money {
		money := balancer.NewMoney(m)
		position := balancer.NewPosition(
			money.Currency,
			money.Currency,
			"",
			int64(money.Value.Float()),
			1,
			balancer.UnitsNano2Decimal(1, 0),
		)
		walletValueMetric.WithLabelValues(accountId, money.Currency).Set(position.TotalPriceNumber)
		wallet = append(wallet, position)
	}

	return wallet, nil
}
