package usecases

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/brewradar/brewradar/internal/core/domain"
	"github.com/brewradar/brewradar/internal/core/ports"
)

var (
	// ErrRewardRedeemed is returned when a coupon was already used.
	ErrRewardRedeemed = errors.New("reward already redeemed")
	// ErrRewardExpired is returned when a coupon is past its expiry.
	ErrRewardExpired = errors.New("reward expired")
)

// RewardService issues and redeems reward coupons.
type RewardService struct {
	rewards   ports.RewardRepository
	notifier  ports.NotificationService
	publisher ports.EventPublisher
}

// NewRewardService creates a new RewardService.
func NewRewardService(rewards ports.RewardRepository, notifier ports.NotificationService, publisher ports.EventPublisher) *RewardService {
	return &RewardService{rewards: rewards, notifier: notifier, publisher: publisher}
}

// Issue creates a coupon for a completed album page and notifies the user.
func (s *RewardService) Issue(ctx context.Context, userID, branchID, offerText string) (*domain.Reward, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	reward := &domain.Reward{
		UserID:    userID,
		BranchID:  branchID,
		Code:      code,
		OfferText: offerText,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}

	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, fmt.Errorf("create reward: %w", err)
	}

	// Send push notification (best-effort)
	if s.notifier != nil {
		title := "Album page complete — free coffee!"
		body := fmt.Sprintf("Show code %s on your next visit. %s", code, offerText)
		_ = s.notifier.SendPush(ctx, userID, title, body)
	}

	if s.publisher != nil {
		_ = s.publisher.PublishRewardIssued(ctx, reward)
	}

	return reward, nil
}

// Get looks up a coupon by code.
func (s *RewardService) Get(ctx context.Context, code string) (*domain.Reward, error) {
	if code == "" {
		return nil, fmt.Errorf("code must not be empty")
	}
	return s.rewards.GetByCode(ctx, code)
}

// Redeem marks a coupon as redeemed.
func (s *RewardService) Redeem(ctx context.Context, code string) error {
	reward, err := s.rewards.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if reward.RedeemedAt != nil {
		return fmt.Errorf("code %s: %w", code, ErrRewardRedeemed)
	}
	if time.Now().After(reward.ExpiresAt) {
		return fmt.Errorf("code %s: %w", code, ErrRewardExpired)
	}
	return s.rewards.Redeem(ctx, code)
}

// Revoke deletes an issued coupon. Used by workflow rollback when a later
// step of the reward pipeline fails.
func (s *RewardService) Revoke(ctx context.Context, code string) error {
	return s.rewards.Delete(ctx, code)
}

func generateCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "BR-" + hex.EncodeToString(b), nil
}
