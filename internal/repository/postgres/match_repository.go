package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// ON CONFLICT DO NOTHING makes the create idempotent under the
	// two-clients-race: both detection attempts target the same pair_key and
	// the second insert is a no-op.
	query := `
		INSERT INTO matches (pair_key, user1_uid, user2_uid, chat_id, icebreakers)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (pair_key) DO NOTHING
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		match.PairKey, match.User1UID, match.User2UID, match.ChatID, match.Icebreakers,
	).Scan(&match.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict path: the record already exists, read its timestamp.
		existing, gerr := r.GetByPairKey(ctx, match.PairKey)
		if gerr != nil {
			return gerr
		}
		match.CreatedAt = existing.CreatedAt
		return nil
	}
	return err
}

func (r *matchRepository) GetByPairKey(ctx context.Context, pairKey string) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE pair_key = $1`
	err := r.db.GetContext(ctx, &match, query, pairKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, uid string, limit, offset int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE user1_uid = $1 OR user2_uid = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &matches, query, uid, limit, offset)
	return matches, err
}

func (r *matchRepository) UpdateIcebreakers(ctx context.Context, pairKey string, icebreakers []string) error {
	query := `UPDATE matches SET icebreakers = $1 WHERE pair_key = $2`
	result, err := r.db.ExecContext(ctx, query, domain.StringList(icebreakers), pairKey)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
