package leave

import "context"

type LeaveService interface {
	// Staff operations on own requests
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestEntry, error)
	ListMine(ctx context.Context, userID string, filter ListLeaveRequestsFilter) (ListLeaveRequestsResponse, error)
	UpdateMine(ctx context.Context, req UpdateLeaveRequest) error
	CancelMine(ctx context.Context, userID string, requestID string) error
	ReverseMine(ctx context.Context, userID string, requestID string) error

	// Manager operations across all staff
	Decide(ctx context.Context, req DecideLeaveRequest) error
	List(ctx context.Context, filter ListLeaveRequestsFilter) (ListLeaveRequestsResponse, int64, error)
	ListAllRequests(ctx context.Context) ([]LeaveRequestEntry, error)
	Get(ctx context.Context, requestID string) (LeaveRequestEntry, error)

	// Allocations
	SetAllocation(ctx context.Context, req AllocationRequest) (AllocationResponse, error)
	GetSummary(ctx context.Context, userID string, year int) (SummaryResponse, error)
}
