package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/gommon/log"

	"github.com/ivanoskov/spending_bot/internal/charts"
	"github.com/ivanoskov/spending_bot/internal/flow"
	"github.com/ivanoskov/spending_bot/internal/repository"
	"github.com/ivanoskov/spending_bot/internal/service"
)

const welcomeText = "👋 Welcome to Spending Tracker Bot!\n" +
	"Set your default currency with /setcurrency (e.g. /setcurrency USD).\n" +
	"Add expenses with /add, remove them with /remove.\n" +
	"Get statistics with /stats and a CSV dump with /export."

type Bot struct {
	api     *tgbotapi.BotAPI
	tracker *service.ExpenseTracker
	flows   *flow.Engine
}

func NewBot(token string, tracker *service.ExpenseTracker, flows *flow.Engine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		tracker: tracker,
		flows:   flows,
	}, nil
}

// Start runs the bot in long-polling mode. Updates arrive on one channel and
// are handled sequentially, which gives every user in-order processing of
// their own messages.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			log.Errorf("bot: handling update: %v", err)
		}
	}

	return nil
}

// HandleWebhook is the entry point for webhook deployments.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	if update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	return b.handleMessage(update.Message)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	ctx := context.Background()
	userID := message.From.ID
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		if err := b.tracker.RegisterUser(ctx, userID); err != nil {
			log.Errorf("bot: register user %d: %v", userID, err)
			b.sendErrorMessage(chatID, "Could not register you. Please try /start again.")
			return nil
		}
		b.sendText(chatID, welcomeText)
	case "setcurrency":
		b.handleSetCurrency(ctx, message)
	case "add":
		b.sendReply(chatID, b.flows.StartAdd(userID))
	case "remove":
		b.sendReply(chatID, b.flows.StartRemove(ctx, userID))
	case "stats":
		msg := tgbotapi.NewMessage(chatID, "Choose a period:")
		msg.ReplyMarkup = b.getPeriodsKeyboard()
		b.send(msg)
	case "export":
		b.handleExport(ctx, userID, chatID)
	case "cancel":
		b.sendReply(chatID, b.flows.Cancel(userID))
	default:
		b.sendText(chatID, welcomeText)
	}

	return nil
}

func (b *Bot) handleSetCurrency(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	currency := strings.ToUpper(strings.TrimSpace(message.CommandArguments()))
	if !validCurrency(currency) {
		b.sendText(chatID, "Please provide a valid 3-letter currency code (e.g. /setcurrency USD).")
		return
	}

	err := b.tracker.SetCurrency(ctx, message.From.ID, currency)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		b.sendErrorMessage(chatID, "You are not registered yet. Send /start first.")
	case err != nil:
		log.Errorf("bot: set currency for user %d: %v", message.From.ID, err)
		b.sendErrorMessage(chatID, "Could not save your currency. Please try again.")
	default:
		b.sendText(chatID, fmt.Sprintf("✅ Default currency set to %s.", currency))
	}
}

func (b *Bot) handleExport(ctx context.Context, userID, chatID int64) {
	data, err := b.tracker.ExportCSV(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		b.sendErrorMessage(chatID, "You are not registered yet. Send /start first.")
		return
	case errors.Is(err, repository.ErrNoCurrency):
		b.sendErrorMessage(chatID, "Set your currency first with /setcurrency.")
		return
	case err != nil:
		log.Errorf("bot: export for user %d: %v", userID, err)
		b.sendErrorMessage(chatID, "Could not export your expenses. Please try again.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "expenses.csv",
		Bytes: data,
	})
	doc.Caption = "Your expense history"
	b.send(doc)
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if callback.Message != nil && strings.HasPrefix(callback.Data, "stats_") {
		period := service.Period(strings.TrimPrefix(callback.Data, "stats_"))
		b.handleStats(context.Background(), callback.From.ID, callback.Message.Chat.ID, period)
	}

	// Answer the callback to clear the loading indicator.
	callbackResponse := tgbotapi.NewCallback(callback.ID, "")
	if _, err := b.api.Request(callbackResponse); err != nil {
		return fmt.Errorf("error answering callback: %w", err)
	}
	return nil
}

func (b *Bot) handleStats(ctx context.Context, userID, chatID int64, period service.Period) {
	stats, err := b.tracker.Stats(ctx, userID, period)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		b.sendErrorMessage(chatID, "You are not registered yet. Send /start first.")
		return
	case errors.Is(err, repository.ErrNoCurrency):
		b.sendErrorMessage(chatID, "Set your currency first with /setcurrency.")
		return
	case err != nil:
		log.Errorf("bot: stats for user %d: %v", userID, err)
		b.sendErrorMessage(chatID, "Could not build your statistics. Please try again.")
		return
	}

	b.sendText(chatID, formatStats(stats))

	chartPNG, err := charts.CategoryPieChart(stats.Totals, stats.Currency)
	if err != nil {
		log.Warnf("bot: rendering chart for user %d: %v", userID, err)
		return
	}
	if chartPNG == nil {
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "stats.png",
		Bytes: chartPNG,
	})
	b.send(photo)
}

func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	if !b.flows.Active(message.From.ID) {
		b.sendText(message.Chat.ID, "Send /add to record an expense, /remove to delete one, or /stats for statistics.")
		return nil
	}

	reply := b.flows.Handle(context.Background(), message.From.ID, message.Text)
	b.sendReply(message.Chat.ID, reply)
	return nil
}

func formatStats(stats *service.Stats) string {
	lines := []string{fmt.Sprintf("📊 Stats for %s", stats.Period.Title()), ""}
	if len(stats.Totals) == 0 {
		lines = append(lines, "No expenses found for this period.")
		return strings.Join(lines, "\n")
	}

	categories := make([]string, 0, len(stats.Totals))
	for name := range stats.Totals {
		categories = append(categories, name)
	}
	sort.Slice(categories, func(i, j int) bool {
		return stats.Totals[categories[i]] > stats.Totals[categories[j]]
	})

	lines = append(lines, fmt.Sprintf("By category (%s):", stats.Currency))
	for _, name := range categories {
		lines = append(lines, fmt.Sprintf("• %s: %.2f", name, stats.Totals[name]))
	}
	lines = append(lines, "", fmt.Sprintf("Total: %.2f %s", stats.Total, stats.Currency))
	return strings.Join(lines, "\n")
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Errorf("bot: sending message: %v", err)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}
