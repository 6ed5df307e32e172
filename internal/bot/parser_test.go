package bot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseRecordArgs(t *testing.T) {
	args, ok := ParseRecordArgs("Credit Card, 12000, 12, 1000, 25, 2026/08/25")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if args.Name != "Credit Card" {
		t.Fatalf("unexpected name: %q", args.Name)
	}
	if !args.Amount.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("unexpected amount: %s", args.Amount)
	}
	if args.Months != 12 || args.PaymentDay != 25 {
		t.Fatalf("unexpected numbers: %#v", args)
	}
	want := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	if !args.LastDate.Equal(want) {
		t.Fatalf("unexpected date: %s", args.LastDate)
	}
}

func TestParseRecordArgsWrongCount(t *testing.T) {
	if _, ok := ParseRecordArgs("Credit Card, 12000, 12"); ok {
		t.Fatalf("expected parse to fail")
	}
}

func TestParseRecordArgsBadFieldsStayZero(t *testing.T) {
	args, ok := ParseRecordArgs("Credit Card, lots, twelve, 1000, 25, someday")
	if !ok {
		t.Fatalf("wrong count only fails the parse")
	}
	if !args.Amount.IsZero() || args.Months != 0 || !args.LastDate.IsZero() {
		t.Fatalf("bad fields should stay zero: %#v", args)
	}
}

func TestParsePaymentArgs(t *testing.T) {
	args, ok := ParsePaymentArgs("rec-1, 1000, 2026/08/25")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if args.RecordID != "rec-1" {
		t.Fatalf("unexpected record id: %q", args.RecordID)
	}
	if !args.Amount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected amount: %s", args.Amount)
	}
}

func TestSplitCommand(t *testing.T) {
	command, args := splitCommand("/weather New York")
	if command != "/weather" || args != "New York" {
		t.Fatalf("unexpected split: %q %q", command, args)
	}
	command, args = splitCommand("/rates@fintrack_bot")
	if command != "/rates" || args != "" {
		t.Fatalf("unexpected split: %q %q", command, args)
	}
}
