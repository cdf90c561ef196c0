package bot

import (
	"context"
	"errors"
	"strings"

	"menux/lang"
	"menux/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

var ErrNoRelayChat = errors.New("restaurant has no relay chat")

// Relay copies composed orders into the restaurant's Telegram chat. The
// customer-facing deep link stays the primary channel.
type Relay struct {
	api *tgbotapi.BotAPI
}

func NewRelay(token string) (*Relay, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Relay{api: api}, nil
}

// NotifyOrder sends the order text as plain text; the message uses WhatsApp
// bold markers that Telegram Markdown would reject.
func (r *Relay) NotifyOrder(ctx context.Context, rc models.RestaurantConfig, text string) error {
	if rc.TelegramChatID == 0 {
		return ErrNoRelayChat
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.api.Send(orderMessage(rc.TelegramChatID, text))
	return err
}

func orderMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	return msg
}

func (r *Relay) setCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Chat id for order relay"},
		},
	}
	_, err := r.api.Request(cfg)
	return err
}

// Start answers /start with the chat id so staff can register the chat.
// It blocks until the updates channel closes.
func (r *Relay) Start() {
	if err := r.setCommands(); err != nil {
		log.Warn().Err(err).Msg("telegram: set commands")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		reply, ok := replyFor(update.Message.Text, update.Message.Chat.ID)
		if !ok {
			continue
		}
		if _, err := r.api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, reply)); err != nil {
			log.Error().Err(err).Int64("chat", update.Message.Chat.ID).Msg("telegram: send")
		}
	}
}

func (r *Relay) Stop() {
	r.api.StopReceivingUpdates()
}

// replyFor returns the bilingual chat id notice for /start (with or without
// a bot mention suffix).
func replyFor(text string, chatID int64) (string, bool) {
	cmd := strings.TrimSpace(text)
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	if cmd != "/start" {
		return "", false
	}
	return lang.T(lang.Primary, "relay_chat_id", chatID) + "\n\n" + lang.T(lang.Secondary, "relay_chat_id", chatID), true
}
