// Package temporaladapter wraps the Temporal client behind ports.WorkflowStarter.
package temporaladapter

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"

	"github.com/brewradar/brewradar/internal/workflows"
)

// TaskQueue is the queue the rewarder worker listens on.
const TaskQueue = "reward-queue"

// Starter implements ports.WorkflowStarter with a Temporal client.
type Starter struct {
	client client.Client
}

// NewStarter dials the Temporal server.
func NewStarter(hostPort string) (*Starter, error) {
	c, err := client.Dial(client.Options{HostPort: hostPort})
	if err != nil {
		return nil, fmt.Errorf("temporal client: %w", err)
	}
	return &Starter{client: c}, nil
}

// StartStampReward kicks off the reward workflow for a completed album page.
// The workflow ID is derived from user and page so a retried collect does not
// issue a second reward.
func (s *Starter) StartStampReward(ctx context.Context, userID, branchID string, pageID int) error {
	opts := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("stamp-reward-%s-%d", userID, pageID),
		TaskQueue: TaskQueue,
	}
	_, err := s.client.ExecuteWorkflow(ctx, opts, workflows.StampRewardWorkflow, workflows.StampRewardInput{
		UserID:   userID,
		BranchID: branchID,
		PageID:   pageID,
	})
	if err != nil {
		return fmt.Errorf("start reward workflow: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *Starter) Close() {
	s.client.Close()
}
