package store

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

type PaymentStore struct {
	db DB
}

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

const paymentColumns = `id, user_id, record_id, amount, remains, payment_date, created_at, updated_at`

// PaymentDetail is a payment joined with its record name and the paying
// user's username, for the admin listing.
type PaymentDetail struct {
	models.Payment
	RecordName string `db:"record_name" json:"record_name"`
	Username   string `db:"username" json:"username"`
}

func (s *PaymentStore) Create(ctx context.Context, tx Execer, payment models.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, record_id, amount, remains, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query,
		payment.ID, payment.UserID, payment.RecordID, payment.Amount, payment.Remains, payment.PaymentDate,
	)
	return err
}

// SumByRecord totals the payments already applied to a record. Run it on the
// same transaction that holds the record lock.
func (s *PaymentStore) SumByRecord(ctx context.Context, q Getter, recordID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE record_id = $1
	`, recordID)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

func (s *PaymentStore) GetByID(ctx context.Context, paymentID string) (models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE id = $1
	`, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *PaymentStore) GetByUser(ctx context.Context, userID, paymentID string) (models.Payment, error) {
	var payment models.Payment
	err := s.db.GetContext(ctx, &payment, `
		SELECT `+paymentColumns+`
		FROM payments
		WHERE user_id = $1 AND id = $2
	`, userID, paymentID)
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (s *PaymentStore) ListByUser(ctx context.Context, userID string, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1
		ORDER BY payment_date DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1)
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListDetailed left-joins records and users so payments whose record was
// deleted still show up, with an empty record name.
func (s *PaymentStore) ListDetailed(ctx context.Context, limit int) ([]PaymentDetail, error) {
	var rows []PaymentDetail
	query := `
		SELECT p.id, p.user_id, p.record_id, p.amount, p.remains, p.payment_date, p.created_at, p.updated_at,
		       COALESCE(r.name, '') AS record_name,
		       COALESCE(u.username, '') AS username
		FROM payments p
		LEFT JOIN records r ON r.id = p.record_id
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.payment_date DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PaymentStore) Delete(ctx context.Context, tx Execer, paymentID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, paymentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
