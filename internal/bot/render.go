package bot

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/weather"
)

const (
	displayDateLayout = "02.01.2006"
	displayTimeLayout = "15:04:05 02.01.2006"
	weatherTimeLayout = "02.01.2006 15:04"
)

func renderRates(snapshots []models.RateSnapshot) string {
	var b strings.Builder
	b.WriteString("<b>Rates</b>")
	for _, snapshot := range snapshots {
		b.WriteString(fmt.Sprintf("\n%s: %s", snapshot.Pair, snapshot.Price))
	}
	return b.String()
}

func renderWeather(current weather.CurrentWeather) string {
	resultTime := current.Time
	if parsed, err := time.Parse("2006-01-02T15:04", current.Time); err == nil {
		resultTime = parsed.Format(weatherTimeLayout)
	}
	isDay := "No"
	if current.IsDay == 1 {
		isDay = "Yes"
	}
	return fmt.Sprintf("<b>Weather in your city:</b>\n"+
		"- Temperature: %v,\n"+
		"- Wind speed: %v,\n"+
		"- Wind direction: %v,\n"+
		"- Weather code: %d,\n"+
		"- Is day: %s,\n"+
		"- Time: %s",
		current.Temperature, current.WindSpeed, current.WindDirection,
		current.WeatherCode, isDay, resultTime)
}

func renderNewRecord(title string, record models.Record) string {
	return fmt.Sprintf("<b>Added new %s</b>\n"+
		"name: %s,\n"+
		"amount: %s,\n"+
		"months: %d,\n"+
		"payment_amount: %s,\n"+
		"payment_day: %d,\n"+
		"last_date: %s",
		title, record.Name, money.Format(record.Amount), record.Months,
		money.Format(record.PaymentAmount), record.PaymentDay,
		record.LastDate.Format(displayDateLayout))
}

func renderNewPayment(payment models.Payment) string {
	return fmt.Sprintf("<b>Added new Payment</b>\n"+
		"record_id: %s,\n"+
		"amount: %s,\n"+
		"payment_date: %s",
		payment.RecordID, money.Format(payment.Amount),
		payment.PaymentDate.Format(displayDateLayout))
}

func renderRecordList(title string, records []models.Record) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<b>Your %s list</b>", title))
	for _, record := range records {
		b.WriteString(fmt.Sprintf("\n%s - amount %s, remains %s, until %s",
			record.Name, money.Format(record.Amount), money.Format(record.Remains),
			record.LastDate.Format(displayDateLayout)))
	}
	return b.String()
}

func renderPaymentList(payments []models.Payment) string {
	var b strings.Builder
	b.WriteString("<b>Your Payment list</b>")
	for _, payment := range payments {
		b.WriteString(fmt.Sprintf("\n%s - remains after %s, paid %s",
			money.Format(payment.Amount), money.Format(payment.Remains),
			payment.PaymentDate.Format(displayDateLayout)))
	}
	return b.String()
}

func renderRecordDetail(record models.Record) string {
	return fmt.Sprintf("<b>Record detail:</b>\n"+
		"id: %s\n"+
		"user_id: %s\n"+
		"type: %s\n"+
		"name: %s\n"+
		"amount: %s\n"+
		"remains: %s\n"+
		"months: %d\n"+
		"payment_amount: %s\n"+
		"payment_day: %d\n"+
		"last_date: %s\n"+
		"created_at: %s\n"+
		"updated_at: %s",
		record.ID, record.UserID, record.Kind, record.Name,
		money.Format(record.Amount), money.Format(record.Remains), record.Months,
		money.Format(record.PaymentAmount), record.PaymentDay,
		record.LastDate.Format(displayDateLayout),
		record.CreatedAt.Format(displayTimeLayout),
		record.UpdatedAt.Format(displayTimeLayout))
}

func renderPaymentDetail(payment models.Payment) string {
	return fmt.Sprintf("<b>Payment detail:</b>\n"+
		"id: %s\n"+
		"user_id: %s\n"+
		"record_id: %s\n"+
		"amount: %s\n"+
		"remains: %s\n"+
		"payment_date: %s\n"+
		"created_at: %s\n"+
		"updated_at: %s",
		payment.ID, payment.UserID, payment.RecordID,
		money.Format(payment.Amount), money.Format(payment.Remains),
		payment.PaymentDate.Format(displayDateLayout),
		payment.CreatedAt.Format(displayTimeLayout),
		payment.UpdatedAt.Format(displayTimeLayout))
}

func renderGeoOption(result weather.GeoResult) string {
	return fmt.Sprintf("%s - %s - %s", result.Name, result.Admin1, result.CountryCode)
}
