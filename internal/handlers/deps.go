package handlers

import (
	"context"

	"fintrack/internal/ledger"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, username, passwordHash, firstName, lastName, phone string) error
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context, limit int) ([]models.User, error)
	Delete(ctx context.Context, tx store.Execer, userID string) (int64, error)
}

// RecordStore and PaymentStore cover the unscoped admin reads; everything
// that writes goes through the ledger service.
type RecordStore interface {
	GetByID(ctx context.Context, recordID string) (models.Record, error)
	List(ctx context.Context, limit int) ([]models.Record, error)
}

type PaymentStore interface {
	GetByID(ctx context.Context, paymentID string) (models.Payment, error)
	ListDetailed(ctx context.Context, limit int) ([]store.PaymentDetail, error)
}

type RateStore interface {
	List(ctx context.Context) ([]models.RateSnapshot, error)
}

type LedgerService interface {
	CreateRecord(ctx context.Context, req ledger.CreateRecordRequest) (models.Record, error)
	CreatePayment(ctx context.Context, req ledger.CreatePaymentRequest) (models.Payment, error)
	DeleteRecord(ctx context.Context, recordID string) (bool, error)
	DeletePayment(ctx context.Context, paymentID string) (bool, error)
}
