package main

import (
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/go-invest/balancer/config"
	"github.com/go-invest/balancer/moex"
	"github.com/go-invest/balancer/tinkoff"
)

func balance(c *cli.Context) (result error) {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return err
	}

	t := tinkoff.NewClient(c.String("api"), c.String("token"))
	if err := t.Open(c.Context); err != nil {
		l.Fatal("не смог открыть соединение", zap.Error(err))
	}
	defer t.Close()

	provider := moex.NewProvider(moex.NewISSClient(c.String("iss")), cfg.AUMSnapshot)

	matched := false
	for _, acc := range cfg.Accounts {
		if c.IsSet("name") && acc.Name != c.String("name") {
			continue
		}
		matched = true

		// счета обрабатываются последовательно, клиент можно
		// переключать между песочницей и боевым контуром
		t.Sandbox = acc.Sandbox
		t.OrderPause = acc.OrderPause()

		started := time.Now()
		err := balanceAccount(c.Context, t, provider, acc, acc.DryRun || c.Bool("dry-run"))
		cycleDurationMetric.WithLabelValues(acc.Name).Observe(time.Since(started).Seconds())
		if err != nil {
			cycleErrorsMetric.WithLabelValues(acc.Name).Inc()
			l.Error("цикл балансировки завершился ошибкой",
				zap.String("account", acc.Name), zap.Error(err))
			result = multierr.Append(result, err)
		}
	}
	if !matched {
		l.Warn("счёт с таким именем в конфигурации не найден", zap.String("name", c.String("name")))
	}

	return result
}
