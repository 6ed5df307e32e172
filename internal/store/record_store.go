package store

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

type RecordStore struct {
	db DB
}

func NewRecordStore(db DB) *RecordStore {
	return &RecordStore{db: db}
}

const recordColumns = `id, user_id, kind, name, amount, remains, months, payment_amount, payment_day, last_date, created_at, updated_at`

func (s *RecordStore) Create(ctx context.Context, tx Execer, record models.Record) error {
	query := `
		INSERT INTO records (id, user_id, kind, name, amount, remains, months, payment_amount, payment_day, last_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := tx.ExecContext(ctx, query,
		record.ID, record.UserID, record.Kind, record.Name, record.Amount, record.Remains,
		record.Months, record.PaymentAmount, record.PaymentDay, record.LastDate,
	)
	return err
}

func (s *RecordStore) GetByID(ctx context.Context, recordID string) (models.Record, error) {
	var record models.Record
	err := s.db.GetContext(ctx, &record, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id = $1
	`, recordID)
	if err != nil {
		return models.Record{}, err
	}
	return record, nil
}

// GetByUser is the owner-scoped read used by the bot and the API detail
// endpoints.
func (s *RecordStore) GetByUser(ctx context.Context, userID, recordID string) (models.Record, error) {
	var record models.Record
	err := s.db.GetContext(ctx, &record, `
		SELECT `+recordColumns+`
		FROM records
		WHERE user_id = $1 AND id = $2
	`, userID, recordID)
	if err != nil {
		return models.Record{}, err
	}
	return record, nil
}

// GetForUpdate locks the record row for the rest of the transaction so
// concurrent payments against it serialize.
func (s *RecordStore) GetForUpdate(ctx context.Context, tx Getter, recordID string) (models.Record, error) {
	var record models.Record
	err := tx.GetContext(ctx, &record, `
		SELECT `+recordColumns+`
		FROM records
		WHERE id = $1
		FOR UPDATE
	`, recordID)
	if err != nil {
		return models.Record{}, err
	}
	return record, nil
}

func (s *RecordStore) ListByUser(ctx context.Context, userID string, kind models.RecordKind, limit int) ([]models.Record, error) {
	var records []models.Record
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE user_id = $1
	`
	args := []any{userID}
	if kind != "" {
		query += " AND kind = $2"
		args = append(args, kind)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1)
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RecordStore) List(ctx context.Context, limit int) ([]models.Record, error) {
	var records []models.Record
	query := `
		SELECT ` + recordColumns + `
		FROM records
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *RecordStore) UpdateRemains(ctx context.Context, tx Execer, recordID string, remains decimal.Decimal) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE records
		SET remains = $1, updated_at = NOW()
		WHERE id = $2
	`, remains, recordID)
	return err
}

func (s *RecordStore) Delete(ctx context.Context, tx Execer, recordID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, recordID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
