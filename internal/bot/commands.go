package bot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"fintrack/internal/ledger"
	"fintrack/internal/models"
)

const helpText = `<b>Commands</b>
/rates - stored exchange rates
/weather &lt;city&gt; - current weather
/lends - your lend list
/borrows - your borrow list
/payments - your payment list
/lend &lt;name&gt;, &lt;amount&gt;, &lt;months&gt;, &lt;payment_amount&gt;, &lt;payment_day&gt;, &lt;last_date&gt;
/borrow &lt;name&gt;, &lt;amount&gt;, &lt;months&gt;, &lt;payment_amount&gt;, &lt;payment_day&gt;, &lt;last_date&gt;
/pay &lt;record_id&gt;, &lt;amount&gt;, &lt;payment_date&gt;
/record &lt;id&gt; - record detail
/payment &lt;id&gt; - payment detail

Dates use the YYYY/MM/DD format, e.g. 2026/08/25.`

type commandFunc func(ctx context.Context, chatID int64, user models.User, args string)

// keyboardCommands maps the reply-keyboard labels, which arrive as plain
// message text, onto their slash commands.
var keyboardCommands = map[string]string{
	"💵 Rates":    "/rates",
	"🌤 Weather":  "/weather",
	"💸 Lends":    "/lends",
	"💰 Borrows":  "/borrows",
	"✅ Payments": "/payments",
}

func (h *Handler) commandTable() map[string]commandFunc {
	return map[string]commandFunc{
		"/start": h.handleStart,
		"/help": func(ctx context.Context, chatID int64, user models.User, args string) {
			h.reply(chatID, helpText)
		},
		"/rates":   h.handleRates,
		"/weather": h.handleWeather,
		"/lend": func(ctx context.Context, chatID int64, user models.User, args string) {
			h.handleCreateRecord(ctx, chatID, user, models.KindLend, "Lend", args)
		},
		"/borrow": func(ctx context.Context, chatID int64, user models.User, args string) {
			h.handleCreateRecord(ctx, chatID, user, models.KindBorrow, "Borrow", args)
		},
		"/lends": func(ctx context.Context, chatID int64, user models.User, args string) {
			h.handleListRecords(ctx, chatID, user, models.KindLend, "Lend")
		},
		"/borrows": func(ctx context.Context, chatID int64, user models.User, args string) {
			h.handleListRecords(ctx, chatID, user, models.KindBorrow, "Borrow")
		},
		"/payments": h.handleListPayments,
		"/pay":      h.handleCreatePayment,
		"/record":   h.handleRecordDetail,
		"/payment":  h.handlePaymentDetail,
	}
}

func (h *Handler) dispatch(ctx context.Context, msg *tgbotapi.Message, user models.User) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	command, args := splitCommand(text)
	if mapped, ok := keyboardCommands[text]; ok {
		command, args = mapped, ""
	}
	run, ok := h.commands[command]
	if !ok {
		h.reply(msg.Chat.ID, "Unknown command")
		return
	}
	run(ctx, msg.Chat.ID, user, args)
}

func (h *Handler) handleStart(ctx context.Context, chatID int64, user models.User, args string) {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💵 Rates"),
			tgbotapi.NewKeyboardButton("🌤 Weather"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("💸 Lends"),
			tgbotapi.NewKeyboardButton("💰 Borrows"),
			tgbotapi.NewKeyboardButton("✅ Payments"),
		),
	)
	kb.ResizeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, "Hi "+user.FirstName+"! Select what you want in menu, or see /help")
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := h.api.Send(msg); err != nil {
		h.logger.Warn("send failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *Handler) handleRates(ctx context.Context, chatID int64, user models.User, args string) {
	snapshots, err := h.rates.List(ctx)
	if err != nil {
		h.logger.Error("rates lookup failed", zap.Error(err))
		h.reply(chatID, "Can not get rate data")
		return
	}
	h.reply(chatID, renderRates(snapshots))
}

func (h *Handler) handleWeather(ctx context.Context, chatID int64, user models.User, city string) {
	if city == "" {
		h.reply(chatID, `The parameter "city" - is not specified`)
		return
	}
	results, err := h.weather.Search(ctx, city)
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, result := range results {
		data, _ := json.Marshal(callbackPayload{
			Type: cbWeather,
			Lat:  result.Latitude,
			Lon:  result.Longitude,
		})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(renderGeoOption(result), string(data)),
		))
	}
	h.replyWithMarkup(chatID, "Choose your city:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) handleCreateRecord(ctx context.Context, chatID int64, user models.User, kind models.RecordKind, title, args string) {
	parsed, ok := ParseRecordArgs(args)
	if !ok {
		h.reply(chatID, "You entered wrong params string.")
		return
	}
	record, err := h.ledger.CreateRecord(ctx, ledger.CreateRecordRequest{
		UserID:        user.ID,
		Kind:          kind,
		Name:          parsed.Name,
		Amount:        parsed.Amount,
		Months:        parsed.Months,
		PaymentAmount: parsed.PaymentAmount,
		PaymentDay:    parsed.PaymentDay,
		LastDate:      parsed.LastDate,
	})
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	h.reply(chatID, renderNewRecord(title, record))
}

func (h *Handler) handleCreatePayment(ctx context.Context, chatID int64, user models.User, args string) {
	parsed, ok := ParsePaymentArgs(args)
	if !ok {
		h.reply(chatID, "You entered wrong params string.")
		return
	}
	payment, err := h.ledger.CreatePayment(ctx, ledger.CreatePaymentRequest{
		UserID:      user.ID,
		RecordID:    parsed.RecordID,
		Amount:      parsed.Amount,
		PaymentDate: parsed.PaymentDate,
	})
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	h.reply(chatID, renderNewPayment(payment))
}

func (h *Handler) handleListRecords(ctx context.Context, chatID int64, user models.User, kind models.RecordKind, title string) {
	records, err := h.ledger.ListRecords(ctx, user.ID, kind, 0)
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, record := range records {
		detail, _ := json.Marshal(callbackPayload{Type: cbRecordDetail, ID: record.ID})
		remove, _ := json.Marshal(callbackPayload{Type: cbRecordDelete, ID: record.ID})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📂 "+record.Name, string(detail)),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", string(remove)),
		))
	}
	if len(rows) == 0 {
		h.reply(chatID, renderRecordList(title, records))
		return
	}
	h.replyWithMarkup(chatID, renderRecordList(title, records), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) handleListPayments(ctx context.Context, chatID int64, user models.User, args string) {
	payments, err := h.ledger.ListPayments(ctx, user.ID, 0)
	if err != nil {
		h.reply(chatID, err.Error())
		return
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, payment := range payments {
		detail, _ := json.Marshal(callbackPayload{Type: cbPaymentDetail, ID: payment.ID})
		remove, _ := json.Marshal(callbackPayload{Type: cbPaymentDelete, ID: payment.ID})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📂 "+payment.PaymentDate.Format(displayDateLayout), string(detail)),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", string(remove)),
		))
	}
	if len(rows) == 0 {
		h.reply(chatID, renderPaymentList(payments))
		return
	}
	h.replyWithMarkup(chatID, renderPaymentList(payments), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) handleRecordDetail(ctx context.Context, chatID int64, user models.User, recordID string) {
	if recordID == "" {
		h.reply(chatID, "Enter record id: /record <id>")
		return
	}
	record, err := h.ledger.GetRecord(ctx, user.ID, recordID)
	if err != nil {
		var notFound ledger.NotFoundError
		if errors.As(err, &notFound) {
			h.reply(chatID, "Record not found")
			return
		}
		h.reply(chatID, err.Error())
		return
	}
	h.reply(chatID, renderRecordDetail(record))
}

func (h *Handler) handlePaymentDetail(ctx context.Context, chatID int64, user models.User, paymentID string) {
	if paymentID == "" {
		h.reply(chatID, "Enter payment id: /payment <id>")
		return
	}
	payment, err := h.ledger.GetPayment(ctx, user.ID, paymentID)
	if err != nil {
		var notFound ledger.NotFoundError
		if errors.As(err, &notFound) {
			h.reply(chatID, "Payment not found")
			return
		}
		h.reply(chatID, err.Error())
		return
	}
	h.reply(chatID, renderPaymentDetail(payment))
}
