package main

import (
	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/bot"
	"github.com/ivanoskov/spending_bot/internal/config"
	"github.com/ivanoskov/spending_bot/internal/exchange"
	"github.com/ivanoskov/spending_bot/internal/flow"
	"github.com/ivanoskov/spending_bot/internal/repository"
	"github.com/ivanoskov/spending_bot/internal/service"
	"github.com/ivanoskov/spending_bot/internal/session"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	rates := exchange.NewRateCache(exchange.NewClient(cfg.ExchangeAPIKey))
	tracker := service.NewExpenseTracker(repo, rates)
	flows := flow.NewEngine(session.NewMemoryStore(), tracker)

	b, err := bot.NewBot(cfg.TelegramToken, tracker, flows)
	if err != nil {
		log.Fatal(err)
	}

	log.Infof("starting bot with %s backend", cfg.Backend)
	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
