package store

import (
	"context"

	"fintrack/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

// TelegramProfile is the identity payload that arrives with every bot update.
type TelegramProfile struct {
	TelegramID   string
	Username     string
	FirstName    string
	LastName     string
	LanguageCode string
	IsBot        bool
}

// UpsertTelegram creates the user on first contact and refreshes display
// fields afterwards. The internal id is stable across calls.
func (s *UserStore) UpsertTelegram(ctx context.Context, q Getter, id string, profile TelegramProfile) (models.User, error) {
	var user models.User
	err := q.GetContext(ctx, &user, `
		INSERT INTO users (id, telegram_id, username, first_name, last_name, language_code, is_bot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telegram_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    language_code = EXCLUDED.language_code,
		    is_bot = EXCLUDED.is_bot,
		    updated_at = NOW()
		RETURNING id, telegram_id, username, first_name, last_name, phone, language_code, is_bot, password_hash, created_at, updated_at
	`, id, profile.TelegramID, profile.Username, profile.FirstName, profile.LastName, profile.LanguageCode, profile.IsBot)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, username, passwordHash, firstName, lastName, phone string) error {
	query := `
		INSERT INTO users (id, username, password_hash, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, id, username, passwordHash, firstName, lastName, phone)
	return err
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, telegram_id, username, first_name, last_name, phone, language_code, is_bot, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, telegram_id, username, first_name, last_name, phone, language_code, is_bot, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) List(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	query := `
		SELECT id, telegram_id, username, first_name, last_name, phone, language_code, is_bot, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}
	if err := s.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserStore) Delete(ctx context.Context, tx Execer, userID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
