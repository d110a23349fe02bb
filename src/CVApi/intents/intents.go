package intents

import (
	"context"
	"errors"
	"time"

	"github.com/clipvault/clipvault/src/CVApi/errs"
	"github.com/clipvault/clipvault/src/CVApi/types"
	"gorm.io/gorm"
)

// DefaultTTL bounds how long an install redirect may take to come back.
const DefaultTTL = 10 * time.Minute

// Store persists one-time install correlation tokens. The caller mints the
// state value (128-bit-class random); the store only enforces single use and
// expiry.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, state, userID, guildID string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	intent := types.InstallIntent{
		State:     state,
		UserID:    userID,
		GuildID:   guildID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&intent).Error; err != nil {
		return errs.Store(err)
	}
	return nil
}

// Consume invalidates the token and returns its record. Existence, expiry and
// invalidation happen in one transaction keyed on the unique state column, so
// concurrent callbacks with the same token yield exactly one success. Absent,
// already-consumed and expired tokens are indistinguishable to the caller.
func (s *Store) Consume(ctx context.Context, state string) (*types.InstallIntent, error) {
	var intent types.InstallIntent
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&intent, "state = ?", state).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrIntentInvalid
			}
			return errs.Store(err)
		}
		res := tx.Delete(&types.InstallIntent{}, "state = ?", state)
		if res.Error != nil {
			return errs.Store(res.Error)
		}
		if res.RowsAffected == 0 {
			// another callback consumed it first
			return errs.ErrIntentInvalid
		}
		if time.Now().After(intent.ExpiresAt) {
			// expired rows are deleted here as lazy cleanup, still invalid
			return errs.ErrIntentInvalid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// PurgeExpired removes expired rows in bulk; a periodic caller keeps the table
// from accumulating abandoned flows.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Delete(&types.InstallIntent{}, "expires_at <= ?", time.Now())
	if res.Error != nil {
		return 0, errs.Store(res.Error)
	}
	return res.RowsAffected, nil
}
