package bot

import (
	"context"
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Callback type tags. Telegram caps callback data at 64 bytes, so the tags
// are kept to one or two characters; the long names would push an id-carrying
// payload over the cap.
const (
	cbWeather       = "w"
	cbRecordDetail  = "rd"
	cbRecordDelete  = "rx"
	cbPaymentDetail = "pd"
	cbPaymentDelete = "px"
)

// callbackPayload rides inside inline keyboard buttons.
type callbackPayload struct {
	Type string  `json:"type"`
	ID   string  `json:"id,omitempty"`
	Lat  float64 `json:"lat,omitempty"`
	Lon  float64 `json:"lon,omitempty"`
}

func (h *Handler) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))
	if q.Message == nil || q.From == nil {
		return
	}
	chatID := q.Message.Chat.ID

	var payload callbackPayload
	if err := json.Unmarshal([]byte(q.Data), &payload); err != nil {
		h.reply(chatID, "Unknown callback")
		return
	}
	user, err := h.identity.Sync(ctx, profileFromUser(q.From))
	if err != nil {
		h.logger.Error("identity sync failed", zap.Int64("telegram_id", q.From.ID), zap.Error(err))
		return
	}

	switch payload.Type {
	case cbWeather:
		h.sendWeather(ctx, chatID, payload.Lat, payload.Lon)
	case cbRecordDetail:
		h.handleRecordDetail(ctx, chatID, user, payload.ID)
	case cbRecordDelete:
		deleted, err := h.ledger.DeleteRecord(ctx, payload.ID)
		if err != nil {
			h.reply(chatID, err.Error())
			return
		}
		if !deleted {
			h.reply(chatID, "Record not found")
			return
		}
		h.reply(chatID, fmt.Sprintf("Record <b>#%s</b> has been deleted", payload.ID))
	case cbPaymentDetail:
		h.handlePaymentDetail(ctx, chatID, user, payload.ID)
	case cbPaymentDelete:
		deleted, err := h.ledger.DeletePayment(ctx, payload.ID)
		if err != nil {
			h.reply(chatID, err.Error())
			return
		}
		if !deleted {
			h.reply(chatID, "Payment not found")
			return
		}
		h.reply(chatID, fmt.Sprintf("Payment <b>#%s</b> has been deleted", payload.ID))
	default:
		h.reply(chatID, "Unknown callback")
	}
}

func (h *Handler) sendWeather(ctx context.Context, chatID int64, lat, lon float64) {
	current, err := h.weather.Current(ctx, lat, lon)
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	h.reply(chatID, renderWeather(current))
}
