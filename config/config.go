// Конфигурация балансировщика: счета, желаемые портфели, маржинальные
// настройки. Ошибки конфигурации фатальны и отлавливаются при загрузке,
// до первого обращения к брокеру
package config

import (
	"math"
	"os"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/go-invest/balancer"
)

// Поведение при закрытой бирже
type ClosureBehavior int

const (
	ClosureUnspecified ClosureBehavior = iota
	ClosureSkip                        // пропустить цикл
	ClosureDryRun                      // построить план, но не отправлять заявки
	ClosureForce                       // отправить заявки несмотря на закрытую биржу
)

var closure2string = map[ClosureBehavior]string{
	ClosureSkip:   "skip",
	ClosureDryRun: "dry_run",
	ClosureForce:  "force",
}

func (b ClosureBehavior) String() string {
	name, ok := closure2string[b]
	if !ok {
		return "unspecified"
	}
	return name
}

func parseClosureBehavior(s string) (ClosureBehavior, error) {
	if s == "" {
		return ClosureSkip, nil
	}
	for behavior, name := range closure2string {
		if name == s {
			return behavior, nil
		}
	}
	return ClosureUnspecified, errors.Errorf("unknown exchange closure behavior %q", s)
}

type Config struct {
	Accounts    []*AccountConfig `yaml:"accounts"`
	AUMSnapshot string           `yaml:"aum_snapshot"` // путь к файлу со СЧА фондов
}

type AccountConfig struct {
	Name      string `yaml:"name"`
	AccountID string `yaml:"account_id"`
	Sandbox   bool   `yaml:"sandbox"`
	Exchange  string `yaml:"exchange"`

	DesiredMode   string              `yaml:"desired_mode"`
	DesiredWallet []DesiredPosition   `yaml:"desired_wallet"`
	MarginTrading MarginTradingConfig `yaml:"margin_trading"`

	// длительности в формате time.ParseDuration: "4h", "30s"
	BalancingInterval  string `yaml:"balancing_interval"`
	SleepBetweenOrders string `yaml:"sleep_between_orders"`
	DryRun             bool   `yaml:"dry_run"`

	ExchangeClosureBehavior string `yaml:"exchange_closure_behavior"`

	// разобранные значения, заполняются в Validate
	mode       balancer.Mode
	margin     balancer.MarginConfig
	closure    ClosureBehavior
	interval   time.Duration
	orderPause time.Duration
}

type DesiredPosition struct {
	Ticker string  `yaml:"ticker"`
	Weight float64 `yaml:"weight"`
}

type MarginTradingConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Multiplier        float64 `yaml:"multiplier"`
	FreeThreshold     float64 `yaml:"free_threshold"`
	MaxMarginSize     float64 `yaml:"max_margin_size"`
	BalancingStrategy string  `yaml:"balancing_strategy"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config read")
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, errors.Wrap(err, "config parse")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if len(c.Accounts) == 0 {
		return errors.New("config has no accounts")
	}
	for _, a := range c.Accounts {
		if err := a.validate(); err != nil {
			return errors.Wrapf(err, "account %q", a.Name)
		}
	}
	return nil
}

func (a *AccountConfig) validate() error {
	if a.AccountID == "" {
		return errors.New("account_id is required")
	}
	if a.Exchange == "" {
		a.Exchange = "MOEX"
	}

	interval, err := parseDuration(a.BalancingInterval, time.Hour)
	if err != nil {
		return errors.Wrap(err, "balancing_interval")
	}
	a.interval = interval
	orderPause, err := parseDuration(a.SleepBetweenOrders, 0)
	if err != nil {
		return errors.Wrap(err, "sleep_between_orders")
	}
	a.orderPause = orderPause

	mode, err := balancer.ParseMode(a.DesiredMode)
	if err != nil {
		return err
	}
	a.mode = mode

	if len(a.DesiredWallet) == 0 {
		return errors.New("desired_wallet is empty")
	}
	var sum float64
	for _, d := range a.DesiredWallet {
		if d.Ticker == "" {
			return errors.New("desired_wallet entry without ticker")
		}
		if d.Weight <= 0 {
			return errors.Errorf("desired_wallet weight for %s must be positive", d.Ticker)
		}
		sum += d.Weight
	}
	// веса относительные и будут нормализованы, но сильное отклонение от 100
	// обычно означает опечатку в конфигурации
	if math.Abs(sum-100) > 1 {
		l.Warn("сумма весов желаемого портфеля далека от 100, веса будут нормализованы",
			zap.String("account", a.Name),
			zap.Float64("sum", sum))
	}

	margin := balancer.MarginConfig{
		Enabled:       a.MarginTrading.Enabled,
		Multiplier:    a.MarginTrading.Multiplier,
		FreeThreshold: a.MarginTrading.FreeThreshold,
		MaxMarginSize: a.MarginTrading.MaxMarginSize,
	}
	if a.MarginTrading.Enabled {
		strategy, err := balancer.ParseBalancingStrategy(a.MarginTrading.BalancingStrategy)
		if err != nil {
			return err
		}
		margin.Strategy = strategy
	}
	if err := margin.Validate(); err != nil {
		return err
	}
	a.margin = margin

	closure, err := parseClosureBehavior(a.ExchangeClosureBehavior)
	if err != nil {
		return err
	}
	a.closure = closure

	return nil
}

// Желаемый портфель в типах балансировщика
func (a *AccountConfig) ToDesiredWallet() balancer.DesiredWallet {
	result := make(balancer.DesiredWallet, 0, len(a.DesiredWallet))
	for _, d := range a.DesiredWallet {
		result = append(result, balancer.DesiredPosition{Ticker: d.Ticker, Weight: d.Weight})
	}
	return result
}

func (a *AccountConfig) Mode() balancer.Mode                 { return a.mode }
func (a *AccountConfig) MarginConfig() balancer.MarginConfig { return a.margin }
func (a *AccountConfig) ClosureBehavior() ClosureBehavior    { return a.closure }
func (a *AccountConfig) Interval() time.Duration             { return a.interval }
func (a *AccountConfig) OrderPause() time.Duration           { return a.orderPause }

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Подстановка ${ENV} в тексте конфигурации, до разбора yaml
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}
