package balancer

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Интерфейс исполнителя балансировки одного счёта
type Runner interface {
	Start() error             // запускает цикл балансировки по расписанию
	Stop() error              // останавливает расписание и дожидается текущего цикла
	Context() context.Context // контекст исполнителя
	Name() string             // читаемое имя счёта, используется в метках метрик
}

// Тип для работы с группой исполнителей
type Runners []Runner

func (rs Runners) StartAll() error {
	for _, r := range rs {
		if err := r.Start(); err != nil {
			rs.StopAll() //nolint:golint,errcheck
			l.DPanic("не смог стартовать исполнителя", zap.String("name", r.Name()), zap.Error(err))
		}
	}
	return nil
}

func (rs Runners) StopAll() (result error) {
	for _, r := range rs {
		if err := r.Stop(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}
