package tinkoff

import (
	"context"
	"time"

	"github.com/go-invest/balancer"
	"github.com/google/uuid"
	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Выставляет заявки плана рыночными поручениями в порядке списка
// (продажи планировщик уже поставил вперёд). Ошибка одной заявки не
// останавливает остальные: ошибки копятся и возвращаются вместе
func (c *Client) SubmitOrders(ctx context.Context, accountId string, orders []balancer.PlannedOrder) (result error) {
	for i, o := range orders {
		if i > 0 && c.OrderPause > 0 {
			// брокеру нужно время провести сделку и обновить остатки
			select {
			case <-time.After(c.OrderPause):
			case <-ctx.Done():
				return multierr.Append(result, ctx.Err())
			}
		}
		if err := c.postMarketOrder(ctx, accountId, o); err != nil {
			result = multierr.Append(result, err)
		}
	}
	return result
}

func (c *Client) postMarketOrder(ctx context.Context, accountId string, o balancer.PlannedOrder) error {
	direction := investapi.OrderDirection_ORDER_DIRECTION_BUY
	if o.Action == balancer.Sell {
		direction = investapi.OrderDirection_ORDER_DIRECTION_SELL
	}
	request := &investapi.PostOrderRequest{
		Figi:      o.Figi,
		Quantity:  o.Lots,
		Direction: direction,
		AccountId: accountId,
		OrderType: investapi.OrderType_ORDER_TYPE_MARKET,
		OrderId:   uuid.NewString(),
	}

	var response *investapi.PostOrderResponse
	var err error
	if c.Sandbox {
		response, err = c.GetSandboxServiceClient().PostSandboxOrder(ctx, request)
	} else {
		response, err = c.GetOrdersServiceClient().PostOrder(ctx, request)
	}
	if err != nil {
		l.Error("PostOrder",
			zap.String("accountId", accountId),
			zap.String("ticker", o.Ticker),
			zap.String("action", o.Action.String()),
			zap.Int64("lots", o.Lots),
			zap.Error(err),
		)
		return err
	}

	ordersSubmittedMetric.WithLabelValues(accountId, o.Action.String()).Inc()
	l.Info("заявка выставлена",
		zap.String("accountId", accountId),
		zap.String("ticker", o.Ticker),
		zap.String("action", o.Action.String()),
		zap.Int64("lots", o.Lots),
		zap.Bool("forced", o.Forced),
		zap.String("orderId", response.OrderId),
		zap.String("status", response.ExecutionReportStatus.String()),
	)
	return nil
}
