package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/repository"
)

type swipeRepository struct {
	db *sqlx.DB
}

func NewSwipeRepository(db *sqlx.DB) repository.SwipeRepository {
	return &swipeRepository{db: db}
}

func (r *swipeRepository) Upsert(ctx context.Context, swipe *domain.Swipe) error {
	query := `
		INSERT INTO swipes (from_uid, to_uid, action)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_uid, to_uid)
		DO UPDATE SET action = EXCLUDED.action, created_at = CURRENT_TIMESTAMP
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, swipe.FromUID, swipe.ToUID, swipe.Action).
		Scan(&swipe.CreatedAt)
}

func (r *swipeRepository) GetByUsers(ctx context.Context, fromUID, toUID string) (*domain.Swipe, error) {
	var swipe domain.Swipe
	query := `SELECT * FROM swipes WHERE from_uid = $1 AND to_uid = $2`
	err := r.db.GetContext(ctx, &swipe, query, fromUID, toUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSwipeNotFound
		}
		return nil, err
	}
	return &swipe, nil
}

func (r *swipeRepository) ListByActor(ctx context.Context, fromUID string) ([]*domain.Swipe, error) {
	var swipes []*domain.Swipe
	query := `SELECT * FROM swipes WHERE from_uid = $1`
	err := r.db.SelectContext(ctx, &swipes, query, fromUID)
	return swipes, err
}
