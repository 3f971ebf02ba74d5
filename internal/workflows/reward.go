package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// StampRewardInput is the input for the stamp reward workflow.
type StampRewardInput struct {
	UserID   string
	BranchID string
	PageID   int
}

// StampRewardWorkflow orchestrates picking an offer, issuing a coupon, and
// sending a push notification when an album page is completed. If the
// notification fails, the coupon is revoked (saga compensation).
func StampRewardWorkflow(ctx workflow.Context, input StampRewardInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting stamp reward workflow", "user", input.UserID, "page", input.PageID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Pick the offer for the completed page
	var offerText string
	err := workflow.ExecuteActivity(ctx, "PickOffer", input.BranchID, input.PageID).Get(ctx, &offerText)
	if err != nil {
		return err
	}

	// Step 2: Issue the coupon
	var code string
	err = workflow.ExecuteActivity(ctx, "IssueRewardCoupon", input.UserID, input.BranchID, offerText).Get(ctx, &code)
	if err != nil {
		return err
	}

	// Step 3: Send push notification
	err = workflow.ExecuteActivity(ctx, "SendRewardNotification", input.UserID, offerText, code).Get(ctx, nil)
	if err != nil {
		logger.Warn("push notification failed, compensating", "error", err)
		// Compensate: revoke the coupon
		_ = workflow.ExecuteActivity(ctx, "RevokeRewardCoupon", code).Get(ctx, nil)
		return err
	}

	logger.Info("Reward issued successfully", "code", code)
	return nil
}
