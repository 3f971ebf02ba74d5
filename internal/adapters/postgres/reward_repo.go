package postgres

import (
	"context"

	"github.com/brewradar/brewradar/internal/core/domain"
)

// RewardRepo implements ports.RewardRepository with pgx.
type RewardRepo struct {
	db *DB
}

// NewRewardRepo creates a new RewardRepo.
func NewRewardRepo(db *DB) *RewardRepo {
	return &RewardRepo{db: db}
}

// Create inserts a reward coupon.
func (r *RewardRepo) Create(ctx context.Context, rw *domain.Reward) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO rewards (user_id, branch_id, code, offer_text, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, rw.UserID, rw.BranchID, rw.Code, rw.OfferText, rw.IssuedAt, rw.ExpiresAt).Scan(&rw.ID)
}

// GetByCode returns a reward by its coupon code.
func (r *RewardRepo) GetByCode(ctx context.Context, code string) (*domain.Reward, error) {
	var rw domain.Reward
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, user_id, branch_id, code, offer_text, issued_at, expires_at, redeemed_at
		FROM rewards WHERE code = $1
	`, code).Scan(
		&rw.ID, &rw.UserID, &rw.BranchID, &rw.Code, &rw.OfferText,
		&rw.IssuedAt, &rw.ExpiresAt, &rw.RedeemedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// Redeem stamps the redemption time on an unredeemed coupon.
func (r *RewardRepo) Redeem(ctx context.Context, code string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE rewards SET redeemed_at = NOW()
		WHERE code = $1 AND redeemed_at IS NULL
	`, code)
	return err
}

// Delete removes a coupon. Used by workflow rollback.
func (r *RewardRepo) Delete(ctx context.Context, code string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM rewards WHERE code = $1`, code)
	return err
}
