package balancer

import (
	"testing"

	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"
)

func TestUnitsNano2Decimal(t *testing.T) {
	assert.InDelta(t, 114.25, UnitsNano2Decimal(114, 250000000).Float(), 1e-9)
	assert.InDelta(t, -200.2, UnitsNano2Decimal(-200, -200000000).Float(), 1e-9)
	assert.InDelta(t, 0.0712, UnitsNano2Decimal(0, 71200000).Float(), 1e-9)
}

func TestQuotationRoundTrip(t *testing.T) {
	q := NewQuotation(UnitsNano2Decimal(6, 280000000))
	assert.EqualValues(t, 6, q.Units)
	assert.EqualValues(t, 280000000, q.Nano)
}

func TestNewMoney(t *testing.T) {
	m := NewMoney(&investapi.MoneyValue{Currency: "rub", Units: 114, Nano: 250000000})
	assert.Equal(t, "rub", m.Currency)
	assert.InDelta(t, 114.25, m.Value.Float(), 1e-9)

	assert.Nil(t, NewMoney(nil))
}
