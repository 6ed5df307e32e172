package bot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/weather"
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Identity interface {
	Sync(ctx context.Context, profile store.TelegramProfile) (models.User, error)
}

type Ledger interface {
	CreateRecord(ctx context.Context, req ledger.CreateRecordRequest) (models.Record, error)
	CreatePayment(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error)
	DeleteRecord(ctx context.Context, recordID string) (bool, error)
	DeletePayment(ctx context.Context, paymentID string) (bool, error)
	GetRecord(ctx context.Context, userID, recordID string) (models.Record, error)
	GetPayment(ctx context.Context, userID, paymentID string) (models.Payment, error)
	ListRecords(ctx context.Context, userID string, kind models.RecordKind, limit int) ([]models.Record, error)
	ListPayments(ctx context.Context, userID string, limit int) ([]models.Payment, error)
}

type RateSource interface {
	List(ctx context.Context) ([]models.RateSnapshot, error)
}

type WeatherSource interface {
	Search(ctx context.Context, city string) ([]weather.GeoResult, error)
	Current(ctx context.Context, lat, lon float64) (weather.CurrentWeather, error)
}

type Handler struct {
	api      Sender
	identity Identity
	ledger   Ledger
	rates    RateSource
	weather  WeatherSource
	logger   *zap.Logger
	commands map[string]commandFunc
}

func NewHandler(api Sender, identity Identity, ledgerService Ledger, rates RateSource, weatherClient WeatherSource, logger *zap.Logger) *Handler {
	h := &Handler{
		api:      api,
		identity: identity,
		ledger:   ledgerService,
		rates:    rates,
		weather:  weatherClient,
		logger:   logger,
	}
	h.commands = h.commandTable()
	return h
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.handleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.EditedMessage != nil {
		h.reply(upd.EditedMessage.Chat.ID, "Please do not edit messages")
		return
	}
	if upd.Message == nil || upd.Message.From == nil {
		return
	}
	msg := upd.Message
	if !msg.Chat.IsPrivate() {
		return
	}

	user, err := h.identity.Sync(ctx, profileFromUser(msg.From))
	if err != nil {
		h.logger.Error("identity sync failed", zap.Int64("telegram_id", msg.From.ID), zap.Error(err))
		return
	}
	h.dispatch(ctx, msg, user)
}

func profileFromUser(from *tgbotapi.User) store.TelegramProfile {
	return store.TelegramProfile{
		TelegramID:   strconv.FormatInt(from.ID, 10),
		Username:     from.UserName,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		LanguageCode: from.LanguageCode,
		IsBot:        from.IsBot,
	}
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := h.api.Send(msg); err != nil {
		h.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) replyWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = markup
	if _, err := h.api.Send(msg); err != nil {
		h.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
