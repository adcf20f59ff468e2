package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, lr LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter ListLeaveRequestsFilter) ([]LeaveRequest, int64, error)
	ListAll(ctx context.Context) ([]LeaveRequest, error)
	UpdateFields(ctx context.Context, req UpdateLeaveRequest, totalDays int) error
	UpdateStatus(ctx context.Context, id string, status Status, deciderID *string, notes *string) error
	CountOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID *string) (int64, error)
	SumDaysByStatus(ctx context.Context, userID string, year int, status Status) (int, error)
}

type AllocationRepository interface {
	Upsert(ctx context.Context, a Allocation) (Allocation, error)
	GetByUserYear(ctx context.Context, userID string, year int) (Allocation, error)
}
