package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/nguyenviet02/tele-bot/internal/config"
	"github.com/nguyenviet02/tele-bot/internal/policy"
	"github.com/nguyenviet02/tele-bot/internal/repo"
)

const genericFailureText = "An error occurred while processing your request."

const commandListText = "Commands:\n" +
	"/food - Get a random food suggestion\n" +
	"/newfood - Force a new food suggestion\n" +
	"/clearfood - Clear current food suggestion\n" +
	"/addfood - Add a new food to the list\n" +
	"/removefood - Remove a food from the list\n" +
	"/foodlist - Show all foods in the list\n" +
	"/debt username - Check debt for a user\n" +
	"/done username - Clear debt for a user\n" +
	"/help - Show all available commands\n\n" +
	"You can also tag a user with an amount (e.g. @username 100) to add to their debt."

type Handler struct {
	api *tgbotapi.BotAPI
	cfg config.Config
	log zerolog.Logger

	foods      *repo.Foods
	debts      *repo.Debts
	restricted *policy.Set
}

func NewHandler(api *tgbotapi.BotAPI, cfg config.Config, f *repo.Foods, d *repo.Debts, restricted *policy.Set, log zerolog.Logger) *Handler {
	return &Handler{api: api, cfg: cfg, log: log, foods: f, debts: d, restricted: restricted}
}

func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}

	msg := upd.Message
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	req := newTGRequest(h.api, msg)

	switch {
	case strings.HasPrefix(text, "/start"):
		h.handleStart(req, firstName(msg))
	case strings.HasPrefix(text, "/help"):
		h.handleHelp(req)
	case strings.HasPrefix(text, "/foodlist"):
		h.handleFoodList(req)
	case strings.HasPrefix(text, "/food"):
		h.handleFood(req, false)
	case strings.HasPrefix(text, "/newfood"):
		h.handleFood(req, true)
	case strings.HasPrefix(text, "/clearfood"):
		h.handleClearFood(req)
	case strings.HasPrefix(text, "/addfood"):
		h.handleAddFood(req)
	case strings.HasPrefix(text, "/removefood"):
		h.handleRemoveFood(req)
	case strings.HasPrefix(text, "/debt"):
		h.handleDebt(req)
	case strings.HasPrefix(text, "/done"):
		h.handleDone(req)
	default:
		h.handleMessage(req)
	}
}

// denied applies the restricted-user gate. Accounts without a username
// cannot be checked and pass through.
func (h *Handler) denied(req Request) bool {
	author := req.Author()
	if author == "" || !h.restricted.IsRestricted(author) {
		return false
	}
	h.log.Info().Str("username", author).Msg("restricted user blocked")
	h.send(req, h.cfg.DenialMessage)
	return true
}

func (h *Handler) send(req Request, text string) {
	if err := req.Reply(text); err != nil {
		h.log.Error().Err(err).Msg("reply failed")
	}
}

func (h *Handler) handleStart(req Request, name string) {
	if h.denied(req) {
		return
	}
	h.send(req, "Hi "+name+"! I am your Food and Debt Tracker Bot.\n\n"+commandListText)
}

func (h *Handler) handleHelp(req Request) {
	if h.denied(req) {
		return
	}
	h.send(req, commandListText)
}

func firstName(msg *tgbotapi.Message) string {
	if msg.From == nil || msg.From.FirstName == "" {
		return "there"
	}
	return msg.From.FirstName
}
