package identity

import (
	"context"

	"github.com/google/uuid"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

type UserStore interface {
	UpsertTelegram(ctx context.Context, q store.Getter, id string, profile store.TelegramProfile) (models.User, error)
}

// Syncer resolves a Telegram sender to an internal user before any ledger
// call runs on their behalf.
type Syncer struct {
	db    store.Getter
	users UserStore
}

func NewSyncer(db store.Getter, users UserStore) *Syncer {
	return &Syncer{db: db, users: users}
}

// Sync upserts by telegram id. The freshly generated id is only taken on
// first contact; repeat calls keep the stored internal id and refresh the
// display fields.
func (s *Syncer) Sync(ctx context.Context, profile store.TelegramProfile) (models.User, error) {
	return s.users.UpsertTelegram(ctx, s.db, uuid.NewString(), profile)
}
