package tinkoff

import (
	"context"
	"sync"

	"github.com/go-invest/balancer"
	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"go.uber.org/zap"
)

// Общее описание инструмента, одинаковое у Etf и Share из API
type InstrumentDescription interface {
	GetFigi() string
	GetExchange() string
	GetClassCode() string
	GetIsin() string
	GetTicker() string
	GetCurrency() string
	GetName() string
	GetLot() int32
	GetMinPriceIncrement() *investapi.Quotation
}

// Справочник инструментов. Загружается один раз при открытии соединения,
// балансировщику передаётся срезом (LotCatalog), а не ссылкой на справочник
type Instruments struct {
	client   *Client
	locker   sync.RWMutex
	byFigi   map[string]InstrumentDescription
	byTicker map[string]InstrumentDescription
}

func NewInstruments(client *Client) *Instruments {
	return &Instruments{
		client:   client,
		byFigi:   make(map[string]InstrumentDescription),
		byTicker: make(map[string]InstrumentDescription),
	}
}

func (ii *Instruments) LoadNew(ctx context.Context) error {
	ii.locker.Lock()
	defer ii.locker.Unlock()

	etfs, err := ii.client.Etfs(ctx, investapi.InstrumentStatus_INSTRUMENT_STATUS_ALL)
	if err != nil {
		l.DPanic("Etfs", zap.Error(err))
		return err
	}
	for _, etf := range etfs {
		ii.add(etf)
	}

	shares, err := ii.client.Shares(ctx, investapi.InstrumentStatus_INSTRUMENT_STATUS_ALL)
	if err != nil {
		l.DPanic("Shares", zap.Error(err))
		return err
	}
	for _, s := range shares {
		ii.add(s)
	}
	return nil
}

func (ii *Instruments) add(desc InstrumentDescription) {
	if _, ok := ii.byFigi[desc.GetFigi()]; !ok {
		ii.byFigi[desc.GetFigi()] = desc
	}
	if _, ok := ii.byTicker[desc.GetTicker()]; !ok {
		ii.byTicker[desc.GetTicker()] = desc
	}
}

func (ii *Instruments) GetByFigi(figi string) InstrumentDescription {
	ii.locker.RLock()
	defer ii.locker.RUnlock()
	i, ok := ii.byFigi[figi]
	if !ok {
		l.Warn("Не найден запрошенный инструмент", zap.String("figi", figi))
	}
	return i
}

func (ii *Instruments) GetByTicker(ticker string) InstrumentDescription {
	ii.locker.RLock()
	defer ii.locker.RUnlock()
	i, ok := ii.byTicker[ticker]
	if !ok {
		l.Warn("Не найден запрошенный инструмент", zap.String("ticker", ticker))
	}
	return i
}

func (ii *Instruments) All() []InstrumentDescription {
	ii.locker.RLock()
	defer ii.locker.RUnlock()
	result := make([]InstrumentDescription, 0, len(ii.byFigi))
	for _, desc := range ii.byFigi {
		result = append(result, desc)
	}
	return result
}

// Котировочные данные для планировщика: размер лота из справочника,
// цена — последняя цена с рынка. Тикеры без инструмента или цены
// в справочник не попадают, балансировщик пропустит их с диагностикой
func (c *Client) GetLotCatalog(ctx context.Context, tickers []string) (balancer.LotCatalog, error) {
	var figis []string
	figi2desc := make(map[string]InstrumentDescription, len(tickers))
	for _, ticker := range tickers {
		desc := c.Instruments.GetByTicker(ticker)
		if desc == nil {
			continue
		}
		figis = append(figis, desc.GetFigi())
		figi2desc[desc.GetFigi()] = desc
	}
	if len(figis) == 0 {
		return balancer.LotCatalog{}, nil
	}

	resp, err := c.GetMarketDataServiceClient().GetLastPrices(ctx, &investapi.GetLastPricesRequest{
		Figi: figis,
	})
	if err != nil {
		return nil, err
	}

	catalog := make(balancer.LotCatalog, len(figis))
	for _, lp := range resp.LastPrices {
		desc, ok := figi2desc[lp.Figi]
		if ok {
			price := balancer.NewDecimal(lp.Price)
			lastPriceMetric.WithLabelValues(lp.Figi).Set(price.Float())
			catalog[desc.GetTicker()] = balancer.LotInfo{
				Figi:        lp.Figi,
				LotSize:     int64(desc.GetLot()),
				PriceNumber: price.Float(),
			}
		}
	}
	return catalog, nil
}
