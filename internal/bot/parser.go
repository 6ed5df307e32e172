package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/money"
)

const inputDateLayout = "2006/01/02"

// RecordArgs holds the six comma-separated record fields. Fields that fail to
// parse stay at their zero value so the ledger's validation can name them.
type RecordArgs struct {
	Name          string
	Amount        decimal.Decimal
	Months        int
	PaymentAmount decimal.Decimal
	PaymentDay    int
	LastDate      time.Time
}

func ParseRecordArgs(input string) (RecordArgs, bool) {
	parts := strings.Split(input, ",")
	if len(parts) != 6 {
		return RecordArgs{}, false
	}
	args := RecordArgs{Name: strings.TrimSpace(parts[0])}
	args.Amount, _ = money.ParsePositive(parts[1])
	args.Months, _ = strconv.Atoi(strings.TrimSpace(parts[2]))
	args.PaymentAmount, _ = money.ParsePositive(parts[3])
	args.PaymentDay, _ = strconv.Atoi(strings.TrimSpace(parts[4]))
	args.LastDate, _ = time.Parse(inputDateLayout, strings.TrimSpace(parts[5]))
	return args, true
}

type PaymentArgs struct {
	RecordID    string
	Amount      decimal.Decimal
	PaymentDate time.Time
}

func ParsePaymentArgs(input string) (PaymentArgs, bool) {
	parts := strings.Split(input, ",")
	if len(parts) != 3 {
		return PaymentArgs{}, false
	}
	args := PaymentArgs{RecordID: strings.TrimSpace(parts[0])}
	args.Amount, _ = money.ParsePositive(parts[1])
	args.PaymentDate, _ = time.Parse(inputDateLayout, strings.TrimSpace(parts[2]))
	return args, true
}

// splitCommand separates the leading command token from its argument string
// and strips an @botname suffix.
func splitCommand(text string) (string, string) {
	command := text
	args := ""
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		command = text[:idx]
		args = strings.TrimSpace(text[idx+1:])
	}
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	return command, args
}
