package service

import (
	"context"

	"harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	dErrors "harborbank/pkg/domain-errors"
	"harborbank/pkg/requestcontext"
)

// LogActivity appends an entry stamped with the request time.
func (s *Service) LogActivity(ctx context.Context, req models.LogActivityRequest) (*models.ActivityLog, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := &models.ActivityLog{
		ID:           id.NewActivityID(),
		UserID:       req.UserID,
		Action:       req.Action,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		Metadata:     req.Metadata,
		CreatedAt:    requestcontext.Now(ctx),
	}
	err := s.tx.RunInTx(ctx, func(st Store) error {
		if err := st.AppendActivity(ctx, entry); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record activity")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementActivity(entry.Action)
	}
	return entry.Clone(), nil
}

// GetActivityLogs lists one user's activity in insertion order.
func (s *Service) GetActivityLogs(ctx context.Context, userID id.UserID) ([]*models.ActivityLog, error) {
	var logs []*models.ActivityLog
	err := s.tx.RunInTx(ctx, func(st Store) error {
		var err error
		logs, err = st.ListActivityByUser(ctx, userID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activity")
		}
		return nil
	})
	return logs, err
}
