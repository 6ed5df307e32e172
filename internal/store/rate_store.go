package store

import (
	"context"

	"fintrack/internal/models"
)

// RateStore keeps the latest quote per currency pair; each poll overwrites
// the previous snapshot.
type RateStore struct {
	db DB
}

func NewRateStore(db DB) *RateStore {
	return &RateStore{db: db}
}

func (s *RateStore) Upsert(ctx context.Context, pair, price string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rate_snapshots (pair, price, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (pair) DO UPDATE
		SET price = EXCLUDED.price, updated_at = NOW()
	`, pair, price)
	return err
}

func (s *RateStore) Get(ctx context.Context, pair string) (models.RateSnapshot, error) {
	var snapshot models.RateSnapshot
	err := s.db.GetContext(ctx, &snapshot, `
		SELECT pair, price, updated_at
		FROM rate_snapshots
		WHERE pair = $1
	`, pair)
	if err != nil {
		return models.RateSnapshot{}, err
	}
	return snapshot, nil
}

func (s *RateStore) List(ctx context.Context) ([]models.RateSnapshot, error) {
	var snapshots []models.RateSnapshot
	err := s.db.SelectContext(ctx, &snapshots, `
		SELECT pair, price, updated_at
		FROM rate_snapshots
		ORDER BY pair
	`)
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
