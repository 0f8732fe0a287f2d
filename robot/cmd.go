package main

// В файле описаны все команды, доступные в командной строке

import (
	"github.com/urfave/cli/v2"
)

var commands = []*cli.Command{
	{
		Name:   "accounts",
		Usage:  "Вывести список счетов (боевых и песочницы)",
		Action: accounts,
		Flags:  connectionFlags,
	}, {
		Name:   "instruments",
		Usage:  "Вывести список инструментов и их коды",
		Action: instruments,
		Flags:  append(connectionFlags, instrumentsFlags...),
	}, {
		Name:   "balance",
		Usage:  "Выполнить один цикл балансировки по каждому счёту из конфигурации",
		Action: balance,
		Flags:  append(connectionFlags, configFlag, accountNameFlag, issFlag, dryRunFlag),
	}, {
		Name:   "loop",
		Usage:  "Запустить балансировку по расписанию из конфигурации (до ctrl-c)",
		Action: loop,
		Flags:  append(connectionFlags, configFlag, issFlag),
	}, {
		Name:  "sandbox",
		Usage: "Группа команд по работа со счетами песочницы",
		Subcommands: []*cli.Command{{
			Name:   "open",
			Usage:  "Регистрации счёта в песочнице",
			Action: sandboxOpenAccount,
			Flags:  connectionFlags,
		}, {
			Name:   "close",
			Usage:  "Закрытие счёта в песочнице",
			Action: sandboxCloseAccount,
			Flags:  append(connectionFlags, accountFlag),
		}, {
			Name:   "pay-in",
			Usage:  "Пополнить счёт",
			Action: sandboxPayIn,
			Flags:  append(connectionFlags, accountFlag, rubFlag),
		}},
	},
}

var dryRunFlag = &cli.BoolFlag{
	Name:    "dry-run",
	Usage:   "Построить и напечатать план заявок, но не отправлять его брокеру",
	EnvVars: []string{"BALANCER_DRY_RUN"},
}

var instrumentsFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "status",
		Usage: "Выводить инструменты только в заданном статусе. Ожидается числовое значение статуса. см. SecurityTradingStatus на https://russianinvestments.github.io/investAPI/",
	},
	&cli.BoolFlag{
		Name:  "all",
		Usage: "Выводить список всех инструментов. По умолчанию выводятся только инструменты доступные для торговли через INVEST API.",
	},
}
