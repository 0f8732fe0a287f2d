package tinkoff

import (
	"context"
	"time"

	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Проверяет по расписанию торгов, открыта ли площадка в данный момент.
// Сам балансировщик расписаний не знает: пропускать ли цикл на закрытой
// бирже, решает исполнитель по своей конфигурации
func (c *Client) IsExchangeOpen(ctx context.Context, exchange string) (bool, error) {
	now := time.Now()
	resp, err := c.GetInstrumentsServiceClient().TradingSchedules(ctx, &investapi.TradingSchedulesRequest{
		Exchange: exchange,
		From:     timestamppb.New(now),
		To:       timestamppb.New(now.Add(24 * time.Hour)),
	})
	if err != nil {
		l.Error("TradingSchedules", zap.String("exchange", exchange), zap.Error(err))
		return false, err
	}

	for _, schedule := range resp.Exchanges {
		if schedule.Exchange != exchange {
			continue
		}
		for _, day := range schedule.Days {
			if !sameDay(day.Date.AsTime(), now) {
				continue
			}
			if !day.IsTradingDay {
				return false, nil
			}
			start := day.StartTime.AsTime()
			end := day.EndTime.AsTime()
			return !now.Before(start) && now.Before(end), nil
		}
	}

	l.Warn("расписание площадки не найдено", zap.String("exchange", exchange))
	return false, nil
}

func sameDay(a time.Time, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
