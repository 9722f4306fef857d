package adapters

import (
	"context"

	"harborbank/internal/auth/device"
	bankmodels "harborbank/internal/bank/models"
	id "harborbank/pkg/domain"
	"harborbank/pkg/requestcontext"
)

// activityLogger is the part of the bank service that records activity.
// Defined locally to avoid coupling auth to the bank service package.
type activityLogger interface {
	LogActivity(ctx context.Context, req bankmodels.LogActivityRequest) (*bankmodels.ActivityLog, error)
}

// ActivityRecorder writes auth events to the bank activity log with the
// caller's device label and IP.
type ActivityRecorder struct {
	bank activityLogger
}

func NewActivityRecorder(bank activityLogger) *ActivityRecorder {
	return &ActivityRecorder{bank: bank}
}

func (a *ActivityRecorder) RecordAuthEvent(ctx context.Context, userID id.UserID, action string) error {
	metadata := map[string]any{
		"device": device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		"mobile": device.IsMobile(requestcontext.UserAgent(ctx)),
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		metadata["ip_address"] = ip
	}

	_, err := a.bank.LogActivity(ctx, bankmodels.LogActivityRequest{
		UserID:       userID,
		Action:       action,
		ResourceType: "session",
		Metadata:     metadata,
	})
	return err
}
