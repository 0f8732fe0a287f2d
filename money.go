package balancer

import (
	mathbig "math/big"

	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/sdcoffey/big"
)

type Money struct {
	Currency string      // строковый ISO-код валюты
	Value    big.Decimal // сумма
}

func NewMoney(mv *investapi.MoneyValue) *Money {
	if mv == nil {
		return nil
	}
	return &Money{
		Currency: mv.Currency,
		Value:    UnitsNano2Decimal(mv.Units, mv.Nano),
	}
}

func NewDecimal(q *investapi.Quotation) big.Decimal {
	if q == nil {
		return big.NaN
	}
	return UnitsNano2Decimal(q.Units, q.Nano)
}

var big10_9 = big.NewFromInt(1000000000)
var int10_9 = mathbig.NewInt(1000000000)

func NewQuotation(d big.Decimal) *investapi.Quotation {
	units, _ := new(mathbig.Float).SetFloat64(d.Float()).Int(nil)
	mul10_9, _ := new(mathbig.Float).SetFloat64(d.Mul(big10_9).Float()).Int(nil)

	return &investapi.Quotation{
		Units: units.Int64(),
		Nano:  int32(mul10_9.Sub(mul10_9, units.Mul(units, int10_9)).Int64()),
	}
}

func UnitsNano2Decimal(units int64, nano int32) big.Decimal {
	return big.NewFromInt(int(units)).
		Add(
			big.NewFromInt(int(nano)).Div(big10_9),
		)
}

func NewMoneyValue(m *Money) *investapi.MoneyValue {
	quotation := NewQuotation(m.Value)
	return &investapi.MoneyValue{
		Currency: m.Currency,
		Units:    quotation.Units,
		Nano:     quotation.Nano,
	}
}
