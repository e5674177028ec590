package main

import (
	"io"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/bot"
	"github.com/ivanoskov/spending_bot/internal/config"
	"github.com/ivanoskov/spending_bot/internal/exchange"
	"github.com/ivanoskov/spending_bot/internal/flow"
	"github.com/ivanoskov/spending_bot/internal/repository"
	"github.com/ivanoskov/spending_bot/internal/service"
	"github.com/ivanoskov/spending_bot/internal/session"
)

// Webhook deployment: Telegram pushes updates to POST /telegram/webhook
// instead of the bot long-polling for them.
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

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Post("/telegram/webhook", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}
		if err := b.HandleWebhook(body); err != nil {
			log.Errorf("webhook: handling update: %v", err)
			http.Error(w, "failed to handle update", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Infof("listening on %s with %s backend", addr, cfg.Backend)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal(err)
	}
}
