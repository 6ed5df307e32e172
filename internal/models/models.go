package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordKind string

const (
	KindLend   RecordKind = "lend"
	KindBorrow RecordKind = "borrow"
)

func (k RecordKind) Valid() bool {
	return k == KindLend || k == KindBorrow
}

type User struct {
	ID           string    `db:"id" json:"id"`
	TelegramID   *string   `db:"telegram_id" json:"telegram_id,omitempty"`
	Username     string    `db:"username" json:"username"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Phone        string    `db:"phone" json:"phone"`
	LanguageCode string    `db:"language_code" json:"language_code"`
	IsBot        bool      `db:"is_bot" json:"is_bot"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Record is a lend or borrow obligation. Remains starts equal to Amount and
// is mutated only through the ledger service.
type Record struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"user_id"`
	Kind          RecordKind      `db:"kind" json:"kind"`
	Name          string          `db:"name" json:"name"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Remains       decimal.Decimal `db:"remains" json:"remains"`
	Months        int             `db:"months" json:"months"`
	PaymentAmount decimal.Decimal `db:"payment_amount" json:"payment_amount"`
	PaymentDay    int             `db:"payment_day" json:"payment_day"`
	LastDate      time.Time       `db:"last_date" json:"last_date"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// Payment carries the record's remains as it stood right after this payment
// applied; the snapshot is never recomputed later.
type Payment struct {
	ID          string          `db:"id" json:"id"`
	UserID      string          `db:"user_id" json:"user_id"`
	RecordID    string          `db:"record_id" json:"record_id"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Remains     decimal.Decimal `db:"remains" json:"remains"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// RateSnapshot is the latest stored quote for one currency pair; only the
// newest row per pair is kept.
type RateSnapshot struct {
	Pair      string    `db:"pair" json:"pair"`
	Price     string    `db:"price" json:"price"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
