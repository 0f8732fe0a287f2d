package main

// Метрики исполнителя. Длительность цикла включает запросы к брокеру
// и бирже, но не паузы между заявками

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cycleDurationMetric = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "balancer_cycle_time_seconds",
		Help: "Длительность одного цикла балансировки счёта",
	},
		[]string{"name"},
	)
	cycleErrorsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "balancer_cycle_errors_total",
		Help: "Количество циклов, завершившихся ошибкой",
	},
		[]string{"name"},
	)
	marginUsedMetric = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "balancer_margin_used",
		Help: "Использованная маржа счёта на момент цикла",
	},
		[]string{"name"},
	)
)
