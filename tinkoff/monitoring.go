package tinkoff

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HTTP-эндпоинт /metrics для наблюдения за балансировщиком: стоимость
// портфелей, выставленные заявки, длительность циклов. Включается флагом
// --monitoring и живёт всё время работы команды
type PrometheusService struct {
	server   *http.Server
	listener net.Listener
}

// Занимает адрес сразу: занятый порт или опечатка в адресе видны при
// запуске, а не в логах спустя цикл
func (s *PrometheusService) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		MaxRequestsInFlight: 5,
		Timeout:             30 * time.Second,
	}))
	s.server = &http.Server{Handler: mux}

	go func() {
		l.Debug("запускаю сервис метрик", zap.String("address", s.Addr()))
		err := s.server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			l.Error("сервис метрик остановился с ошибкой",
				zap.String("address", s.Addr()), zap.Error(err))
		}
	}()
	return nil
}

// Фактический адрес сервиса (полезен при порте 0)
func (s *PrometheusService) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Останавливает сервис, давая открытым запросам время завершиться
func (s *PrometheusService) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
