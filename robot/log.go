package main

// Инициация уровня логирования в текущем

import (
	"go.uber.org/zap"

	"github.com/go-invest/balancer"
	"github.com/go-invest/balancer/config"
	"github.com/go-invest/balancer/moex"
	"github.com/go-invest/balancer/tinkoff"
)

var l *zap.Logger

func init() {
	logger, _ := zap.NewProduction()
	l = logger
}

func initDebugLogger() {
	logger, _ := zap.NewDevelopment()
	l = logger
	balancer.SetLogger(l)
	tinkoff.SetLogger(l)
	moex.SetLogger(l)
	config.SetLogger(l)
}
