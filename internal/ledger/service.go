package ledger

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"time"

	"fintrack/internal/db"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/store"
	"fintrack/internal/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Service is the only component that mutates record remains or touches
// payment rows. A payment insert and its record remains update always commit
// in the same transaction.
type Service struct {
	txRunner db.TxRunner
	records  RecordStore
	payments PaymentStore
	hub      RemainsHub
	validate *validator.Validate
}

type RecordStore interface {
	Create(ctx context.Context, tx store.Execer, record models.Record) error
	GetByUser(ctx context.Context, userID, recordID string) (models.Record, error)
	GetForUpdate(ctx context.Context, tx store.Getter, recordID string) (models.Record, error)
	ListByUser(ctx context.Context, userID string, kind models.RecordKind, limit int) ([]models.Record, error)
	UpdateRemains(ctx context.Context, tx store.Execer, recordID string, remains decimal.Decimal) error
	Delete(ctx context.Context, tx store.Execer, recordID string) (int64, error)
}

type PaymentStore interface {
	Create(ctx context.Context, tx store.Execer, payment models.Payment) error
	SumByRecord(ctx context.Context, q store.Getter, recordID string) (decimal.Decimal, error)
	GetByUser(ctx context.Context, userID, paymentID string) (models.Payment, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Payment, error)
	Delete(ctx context.Context, tx store.Execer, paymentID string) (int64, error)
}

type RemainsHub interface {
	BroadcastRemains(userID string, update websocket.RemainsUpdate)
}

func NewService(txRunner db.TxRunner, records RecordStore, payments PaymentStore, hub RemainsHub) *Service {
	return &Service{
		txRunner: txRunner,
		records:  records,
		payments: payments,
		hub:      hub,
		validate: newValidate(),
	}
}

func newValidate() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			converted, _ := value.Float64()
			return converted
		}
		return nil
	}, decimal.Decimal{})
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return validate
}

func (s *Service) checkRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}
	fields := make([]string, 0, len(invalid))
	for _, fieldErr := range invalid {
		fields = append(fields, fieldErr.Field())
	}
	return ValidationError{Fields: fields}
}

// Recalculate derives a record's remaining balance after a new payment: the
// original amount minus the new payment minus everything already paid. The
// result may go negative; overpayment is not rejected.
func Recalculate(amount, alreadyPaid, payment decimal.Decimal) decimal.Decimal {
	return amount.Sub(payment).Sub(alreadyPaid)
}

type CreateRecordRequest struct {
	UserID        string            `json:"user_id" validate:"required"`
	Kind          models.RecordKind `json:"kind" validate:"required,oneof=lend borrow"`
	Name          string            `json:"name" validate:"required"`
	Amount        decimal.Decimal   `json:"amount" validate:"required,gt=0"`
	Months        int               `json:"months" validate:"required,gt=0"`
	PaymentAmount decimal.Decimal   `json:"payment_amount" validate:"required,gt=0"`
	PaymentDay    int               `json:"payment_day" validate:"required,min=1,max=31"`
	LastDate      time.Time         `json:"last_date" validate:"required"`
}

func (s *Service) CreateRecord(ctx context.Context, req CreateRecordRequest) (models.Record, error) {
	if err := s.checkRequest(req); err != nil {
		return models.Record{}, err
	}
	record := models.Record{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		Kind:          req.Kind,
		Name:          req.Name,
		Amount:        req.Amount,
		Remains:       req.Amount,
		Months:        req.Months,
		PaymentAmount: req.PaymentAmount,
		PaymentDay:    req.PaymentDay,
		LastDate:      req.LastDate,
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.records.Create(ctx, tx, record)
	})
	if err != nil {
		return models.Record{}, wrap("Create Record Error", err)
	}
	return record, nil
}

type CreatePaymentRequest struct {
	UserID      string          `json:"user_id" validate:"required"`
	RecordID    string          `json:"record_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	PaymentDate time.Time       `json:"payment_date" validate:"required"`
}

// CreatePayment locks the record row, sums what is already paid against it,
// and commits the payment together with the record's new remains. The payment
// keeps that remains value as its snapshot.
func (s *Service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (models.Payment, error) {
	if err := s.checkRequest(req); err != nil {
		return models.Payment{}, err
	}
	payment := models.Payment{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		RecordID:    req.RecordID,
		Amount:      req.Amount,
		PaymentDate: req.PaymentDate,
	}
	var ownerID string
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		record, err := s.records.GetForUpdate(ctx, tx, req.RecordID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return NotFoundError{Entity: "record", ID: req.RecordID}
			}
			return err
		}
		ownerID = record.UserID
		paid, err := s.payments.SumByRecord(ctx, tx, req.RecordID)
		if err != nil {
			return err
		}
		payment.Remains = Recalculate(record.Amount, paid, req.Amount)
		if err := s.payments.Create(ctx, tx, payment); err != nil {
			return err
		}
		return s.records.UpdateRemains(ctx, tx, record.ID, payment.Remains)
	})
	if err != nil {
		return models.Payment{}, wrap("Create Payment Error", err)
	}
	s.hub.BroadcastRemains(ownerID, websocket.RemainsUpdate{
		RecordID: req.RecordID,
		Remains:  money.Format(payment.Remains),
	})
	return payment, nil
}

// DeleteRecord removes the record row only: payments against it survive with
// their snapshots and show up as orphans in detailed listings. Returns false
// when the record does not exist.
func (s *Service) DeleteRecord(ctx context.Context, recordID string) (bool, error) {
	var deleted bool
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.records.Delete(ctx, tx, recordID)
		if err != nil {
			return err
		}
		deleted = rows > 0
		return nil
	})
	if err != nil {
		return false, wrap("Delete Record Error", err)
	}
	return deleted, nil
}

// DeletePayment removes the payment row without recomputing the parent
// record's remains. Returns false when the payment does not exist.
func (s *Service) DeletePayment(ctx context.Context, paymentID string) (bool, error) {
	var deleted bool
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		rows, err := s.payments.Delete(ctx, tx, paymentID)
		if err != nil {
			return err
		}
		deleted = rows > 0
		return nil
	})
	if err != nil {
		return false, wrap("Delete Payment Error", err)
	}
	return deleted, nil
}

func (s *Service) GetRecord(ctx context.Context, userID, recordID string) (models.Record, error) {
	record, err := s.records.GetByUser(ctx, userID, recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, NotFoundError{Entity: "record", ID: recordID}
	}
	if err != nil {
		return models.Record{}, wrap("Get Record Error", err)
	}
	return record, nil
}

func (s *Service) GetPayment(ctx context.Context, userID, paymentID string) (models.Payment, error) {
	payment, err := s.payments.GetByUser(ctx, userID, paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, NotFoundError{Entity: "payment", ID: paymentID}
	}
	if err != nil {
		return models.Payment{}, wrap("Get Payment Error", err)
	}
	return payment, nil
}

func (s *Service) ListRecords(ctx context.Context, userID string, kind models.RecordKind, limit int) ([]models.Record, error) {
	records, err := s.records.ListByUser(ctx, userID, kind, limit)
	if err != nil {
		return nil, wrap("List Records Error", err)
	}
	return records, nil
}

func (s *Service) ListPayments(ctx context.Context, userID string, limit int) ([]models.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, wrap("List Payments Error", err)
	}
	return payments, nil
}

// wrap keeps already-typed ledger errors intact and labels everything else as
// a persistence failure for the named operation.
func wrap(op string, err error) error {
	var notFound NotFoundError
	if errors.As(err, &notFound) {
		return err
	}
	var invalid ValidationError
	if errors.As(err, &invalid) {
		return err
	}
	return PersistenceError{Op: op, Err: err}
}
