package balancer

import (
	"context"
)

// Интерфейсы внешних участников цикла балансировки.
// Балансировщик потребляет только снимки данных: глобальных кешей
// инструментов и цен в ядре нет, всё передаётся параметрами за цикл

// Брокер: источник снимков портфеля и приёмник заявок
type Broker interface {
	// снимок позиций счёта, включая денежные остатки
	GetWallet(ctx context.Context, accountId string) (Wallet, error)
	// котировочные данные по тикерам желаемого портфеля
	GetLotCatalog(ctx context.Context, tickers []string) (LotCatalog, error)
	// выставить заявки плана (продажи уже отсортированы вперёд)
	SubmitOrders(ctx context.Context, accountId string, orders []PlannedOrder) error
	// торгуется ли площадка сейчас
	IsExchangeOpen(ctx context.Context, exchange string) (bool, error)
}

// Сборщик метрик фондов (капитализация, СЧА, декорреляция)
type MetricsProvider interface {
	Snapshot(ctx context.Context, tickers []string) (MetricsSnapshot, error)
}
