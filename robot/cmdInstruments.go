package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	investapi "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/urfave/cli/v2"

	"github.com/go-invest/balancer/tinkoff"
)

func instruments(c *cli.Context) error {
	t := tinkoff.NewClient(c.String("api"), c.String("token"))

	if err := t.Open(c.Context); err != nil {
		log.Fatalf("не смог открыть соединение  %s", err)
	}
	defer t.Close()

	tbl := tabwriter.NewWriter(os.Stdout, 1, 1, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tbl, "Type\tExchange\tClassCode\tFigi\tIsin\tTicker\tCurrency\tLot\tName\t")

	list := investapi.InstrumentStatus_INSTRUMENT_STATUS_BASE
	if c.Bool("all") {
		list = investapi.InstrumentStatus_INSTRUMENT_STATUS_ALL
	}

	etfs, err := t.Etfs(c.Context, list)
	if err != nil {
		log.Fatalf("не смог получить список ETF  %s", err)
	}
	for _, e := range etfs {
		if !c.IsSet("status") || c.Int("status") == int(e.TradingStatus) {
			fmt.Fprintf(tbl, "etf\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t\n", e.Exchange, e.ClassCode, e.Figi, e.Isin, e.Ticker, e.Currency, e.Lot, e.Name)
		}
	}

	shares, err := t.Shares(c.Context, list)
	if err != nil {
		log.Fatalf("не смог получить список акций  %s", err)
	}
	for _, s := range shares {
		if !c.IsSet("status") || c.Int("status") == int(s.TradingStatus) {
			fmt.Fprintf(tbl, "share\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\t\n", s.Exchange, s.ClassCode, s.Figi, s.Isin, s.Ticker, s.Currency, s.Lot, s.Name)
		}
	}
	tbl.Flush()

	return nil
}
