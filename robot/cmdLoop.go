package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/go-invest/balancer"
	"github.com/go-invest/balancer/config"
	"github.com/go-invest/balancer/moex"
	"github.com/go-invest/balancer/tinkoff"
)

func loop(c *cli.Context) error {
	cfg, err := config.Load(c.Path("config"))
	if err != nil {
		return err
	}

	provider := moex.NewProvider(moex.NewISSClient(c.String("iss")), cfg.AUMSnapshot)

	var runners balancer.Runners
	for _, acc := range cfg.Accounts {
		runners = append(runners, newAccountRunner(c.Context, c.String("api"), c.String("token"), provider, acc))
	}

	if err := runners.StartAll(); err != nil {
		return err
	}

	// весь код ниже нужен чтобы дождаться ctrl-c, и корректно остановить исполнителей
	runnersStopSignal := make(chan struct{})

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigc)
		<-sigc
		l.Info("Got interrupt, shutting down...")
		go func() {
			err := runners.StopAll()
			if err != nil {
				l.DPanic("Не смог корректно остановить исполнителей", zap.Error(err))
			}
			close(runnersStopSignal)
		}()
		for i := 10; i > 0; i-- {
			<-sigc
			if i > 1 {
				l.Info("Already shutting down, interrupt more to panic", zap.Int("times", i-1))
			}
		}
		panic("Недождался остановки исполнителей")
	}()
	// Ожидаю, когда исполнители будут остановлены
	<-runnersStopSignal

	return nil
}

var _ balancer.Runner = (*accountRunner)(nil)

// Исполнитель балансировки одного счёта по расписанию. У каждого счёта
// своё соединение с брокером: песочница и боевой контур не смешиваются,
// пауза между заявками тоже своя
type accountRunner struct {
	ctx      context.Context
	cancel   context.CancelFunc
	client   *tinkoff.Client
	provider balancer.MetricsProvider
	acc      *config.AccountConfig
	cron     *cron.Cron
}

func newAccountRunner(ctx context.Context, api string, token string, provider balancer.MetricsProvider, acc *config.AccountConfig) *accountRunner {
	runnerCtx, cancel := context.WithCancel(ctx)
	client := tinkoff.NewClient(api, token)
	client.Sandbox = acc.Sandbox
	client.OrderPause = acc.OrderPause()
	return &accountRunner{
		ctx:      runnerCtx,
		cancel:   cancel,
		client:   client,
		provider: provider,
		acc:      acc,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (r *accountRunner) Start() error {
	if err := r.client.Open(r.ctx); err != nil {
		return err
	}
	r.cron.Schedule(cron.Every(r.acc.Interval()), cron.FuncJob(r.step))
	r.cron.Start()
	l.Info("исполнитель запущен",
		zap.String("name", r.acc.Name),
		zap.Duration("interval", r.acc.Interval()))
	// первый цикл сразу, не дожидаясь конца интервала
	go r.step()
	return nil
}

func (r *accountRunner) step() {
	if r.ctx.Err() != nil {
		return
	}
	started := time.Now()
	err := balanceAccount(r.ctx, r.client, r.provider, r.acc, r.acc.DryRun)
	cycleDurationMetric.WithLabelValues(r.acc.Name).Observe(time.Since(started).Seconds())
	if err != nil {
		cycleErrorsMetric.WithLabelValues(r.acc.Name).Inc()
		l.Error("цикл балансировки завершился ошибкой",
			zap.String("account", r.acc.Name), zap.Error(err))
	}
}

func (r *accountRunner) Stop() error {
	r.cancel()
	// дожидаюсь завершения текущего цикла
	<-r.cron.Stop().Done()
	return r.client.Close()
}

func (r *accountRunner) Context() context.Context {
	return r.ctx
}

func (r *accountRunner) Name() string {
	return r.acc.Name
}
