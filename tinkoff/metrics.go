package tinkoff

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletValueMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tinkoff_wallet_value",
		Help: "Стоимость позиции в снимке портфеля",
	},
		[]string{"account", "ticker"},
	)
	lastPriceMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tinkoff_last_price",
	},
		[]string{"figi"},
	)
	ordersSubmittedMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinkoff_orders_submitted_total",
		Help: "Количество заявок, выставленных брокеру",
	},
		[]string{"account", "action"},
	)
)
