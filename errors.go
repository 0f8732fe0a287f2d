package balancer

import (
	"errors"
	"fmt"
)

// Ошибка конфигурации — единственный класс ошибок, который прерывает цикл
// балансировки. Пробелы в данных (нет метрик, пустой портфель) ошибками
// не являются и разрешаются документированными откатами
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func configErrorf(format string, args ...any) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
