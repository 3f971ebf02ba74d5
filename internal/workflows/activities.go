package workflows

import (
	"context"
	"fmt"
	"log"

	"github.com/brewradar/brewradar/internal/core/ports"
	"github.com/brewradar/brewradar/internal/core/usecases"
)

// RewardActivities holds the activity implementations for the reward workflow.
type RewardActivities struct {
	RewardService *usecases.RewardService
	Branches      ports.BranchRepository
	Rewards       ports.RewardRepository
	Notifier      ports.NotificationService
}

// PickOffer chooses the offer text for a completed page. Branches can carry
// a custom offer in their metadata; otherwise the house default applies.
func (a *RewardActivities) PickOffer(ctx context.Context, branchID string, pageID int) (string, error) {
	branch, err := a.Branches.GetByID(ctx, branchID)
	if err != nil {
		return "", fmt.Errorf("get branch %s: %w", branchID, err)
	}
	if offer, ok := branch.Metadata["reward_offer"].(string); ok && offer != "" {
		return offer, nil
	}
	return fmt.Sprintf("Free coffee at %s", branch.Name), nil
}

// IssueRewardCoupon creates the reward record and returns the code.
func (a *RewardActivities) IssueRewardCoupon(ctx context.Context, userID, branchID, offerText string) (string, error) {
	// Delegate to the RewardService which already handles code generation,
	// persistence, and the issued event.
	reward, err := a.RewardService.Issue(ctx, userID, branchID, offerText)
	if err != nil {
		return "", fmt.Errorf("issue reward: %w", err)
	}
	return reward.Code, nil
}

// SendRewardNotification sends a push notification to the user.
func (a *RewardActivities) SendRewardNotification(ctx context.Context, userID, offerText, code string) error {
	if a.Notifier == nil {
		log.Printf("PUSH (no notifier) → user=%s offer=%q code=%s", userID, offerText, code)
		return nil
	}
	title := "Album page complete — reward unlocked!"
	body := fmt.Sprintf("Show code %s on your next visit. %s", code, offerText)
	return a.Notifier.SendPush(ctx, userID, title, body)
}

// RevokeRewardCoupon removes a coupon (saga compensation / rollback).
func (a *RewardActivities) RevokeRewardCoupon(ctx context.Context, code string) error {
	if err := a.Rewards.Delete(ctx, code); err != nil {
		return fmt.Errorf("revoke coupon %s: %w", code, err)
	}
	log.Printf("Coupon %s revoked (saga compensation)", code)
	return nil
}
