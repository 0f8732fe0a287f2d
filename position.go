package balancer

import (
	"github.com/sdcoffey/big"
)

// Позиция портфеля: одна бумага или валютный остаток.
// Для валютной позиции Base == Quote (например "RUB/RUB"), Figi пустой.
type Position struct {
	Pair  string // пара вида "TRUR/RUB"
	Base  string // тикер инструмента
	Quote string // валюта расчётов
	Figi  string // figi-идентификатор инструмента

	Amount  int64 // количество в штуках
	LotSize int64 // количество штук в одном лоте

	Price       big.Decimal // цена за 1 штуку
	PriceNumber float64     // она же как float, для арифметики балансировщика

	LotPrice       big.Decimal // цена одного лота: Price * LotSize
	LotPriceNumber float64

	TotalPrice       big.Decimal // стоимость позиции: Price * Amount
	TotalPriceNumber float64
}

// Конструктор позиции, рассчитывает производные поля (стоимость лота и всей позиции)
func NewPosition(base string, quote string, figi string, amount int64, lotSize int64, price big.Decimal) *Position {
	lotPrice := price.Mul(big.NewFromInt(int(lotSize)))
	totalPrice := price.Mul(big.NewFromInt(int(amount)))
	return &Position{
		Pair:             base + "/" + quote,
		Base:             base,
		Quote:            quote,
		Figi:             figi,
		Amount:           amount,
		LotSize:          lotSize,
		Price:            price,
		PriceNumber:      price.Float(),
		LotPrice:         lotPrice,
		LotPriceNumber:   lotPrice.Float(),
		TotalPrice:       totalPrice,
		TotalPriceNumber: totalPrice.Float(),
	}
}

// Валютная позиция (рубли, доллары...) учитывается в общей стоимости портфеля,
// но не участвует в расчёте долей бумаг
func (p *Position) IsCurrency() bool {
	return p.Base == p.Quote
}

// Кошелёк — снимок позиций счёта на момент начала цикла балансировки.
// Не более одной позиции на тикер. После построения не изменяется.
type Wallet []*Position

func (w Wallet) Get(base string) *Position {
	for _, p := range w {
		if p.Base == base {
			return p
		}
	}
	return nil
}

// Общая стоимость портфеля, включая валютные остатки
func (w Wallet) TotalValue() float64 {
	var total float64
	for _, p := range w {
		total += p.TotalPriceNumber
	}
	return total
}

// Суммарная стоимость бумаг (без валютных остатков)
func (w Wallet) SecuritiesTotal() float64 {
	var total float64
	for _, p := range w {
		if !p.IsCurrency() {
			total += p.TotalPriceNumber
		}
	}
	return total
}

// Суммарный валютный остаток
func (w Wallet) CashTotal() float64 {
	var total float64
	for _, p := range w {
		if p.IsCurrency() {
			total += p.TotalPriceNumber
		}
	}
	return total
}
