package main

// описание аргументов командной строки

import (
	"github.com/urfave/cli/v2"

	"github.com/go-invest/balancer/moex"
)

var (
	configFlag = &cli.PathFlag{
		Name:    "config",
		Value:   "./balancer.yaml",
		Usage:   "Файл конфигурации со счетами и желаемыми портфелями",
		Aliases: []string{"c"},
		EnvVars: []string{"BALANCER_CONFIG"},
	}
	accountFlag = &cli.StringFlag{
		Name:     "account",
		Usage:    "Номер счёта",
		Required: true,
		EnvVars:  []string{"BALANCER_ACCOUNT"},
	}
	accountNameFlag = &cli.StringFlag{
		Name:    "name",
		Usage:   "Имя счёта из конфигурации. Если не указано, обрабатываются все счета",
		EnvVars: []string{"BALANCER_ACCOUNT_NAME"},
	}
	rubFlag = &cli.Float64Flag{
		Name:  "rub",
		Usage: "Cумма в рублях",
		Value: 200000,
	}
	issFlag = &cli.StringFlag{
		Name:    "iss",
		Value:   moex.DefaultEndpoint,
		Usage:   "Адрес ISS API Московской биржи, источник капитализации фондов",
		EnvVars: []string{"BALANCER_MOEX_ISS"},
	}

	connectionFlags = []cli.Flag{
		&cli.StringFlag{
			Name:    "api",
			Value:   "invest-public-api.tinkoff.ru:443",
			Usage:   "host:port api tinkoff к которому требуется подключиться",
			Aliases: []string{"a"},
			EnvVars: []string{"BALANCER_TINKOFF_API"},
		},
		&cli.StringFlag{
			Name:     "token",
			Usage:    "Токен, для доступа к api Tinkoff",
			Required: true,
			Aliases:  []string{"t"},
			EnvVars:  []string{"BALANCER_TINKOFF_TOKEN"},
		},
	}
	globalFlags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Value:   false,
			Usage:   "Устанавливает уровень логирования в debug уровень",
			Aliases: []string{"d"},
			EnvVars: []string{"BALANCER_DEBUG"},
		},
		&cli.StringFlag{
			Name:    "monitoring",
			Usage:   "Адрес, по которому включить метрики prometeus. Например :8080",
			Aliases: []string{"m"},
			EnvVars: []string{"BALANCER_MONITORING"},
		},
	}
)
