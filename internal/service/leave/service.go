package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
	"github.com/kantorkita/hr-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveRequestRepository
	leave.AllocationRepository
	user.UserRepository
	hub *sse.Hub
}

func NewLeaveService(
	db *database.DB,
	leaveRequestRepository leave.LeaveRequestRepository,
	allocationRepository leave.AllocationRepository,
	userRepository user.UserRepository,
	hub *sse.Hub,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveRequestRepository: leaveRequestRepository,
		AllocationRepository:   allocationRepository,
		UserRepository:         userRepository,
		hub:                    hub,
	}
}

func parseDates(startDate, endDate string) (time.Time, time.Time, int, error) {
	loc := attendance.Location()
	start, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid end_date: %w", err)
	}
	return start, end, validator.InclusiveDays(start, end), nil
}

// errPastStartDate reports the past-start precondition the same way the DTO
// layer reports field problems, so the client sees a 422 field map.
func errPastStartDate() error {
	return validator.ValidationErrors{{
		Field:   "start_date",
		Message: "start_date must not be in the past",
	}}
}

// checkBalance rejects requests exceeding the remaining yearly allocation.
// Users without an allocation row have no enforced budget.
func (l *LeaveServiceImpl) checkBalance(ctx context.Context, userID string, year int, days int, excludeDays int) error {
	allocation, err := l.AllocationRepository.GetByUserYear(ctx, userID, year)
	if err != nil {
		if errors.Is(err, leave.ErrAllocationNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get allocation: %w", err)
	}

	used, err := l.LeaveRequestRepository.SumDaysByStatus(ctx, userID, year, leave.StatusApproved)
	if err != nil {
		return err
	}
	pending, err := l.LeaveRequestRepository.SumDaysByStatus(ctx, userID, year, leave.StatusPending)
	if err != nil {
		return err
	}

	remaining := allocation.TotalDays - used - pending + excludeDays
	if days > remaining {
		return leave.ErrInsufficientBalance
	}
	return nil
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestEntry, error) {
	start, end, days, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return leave.LeaveRequestEntry{}, err
	}

	today := attendance.DayOf(time.Now())
	if start.Before(today) {
		return leave.LeaveRequestEntry{}, errPastStartDate()
	}

	var created leave.LeaveRequest
	err = postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		overlapping, err := l.LeaveRequestRepository.CountOverlapping(txCtx, req.UserID, start, end, nil)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return leave.ErrOverlappingRequest
		}

		if err := l.checkBalance(txCtx, req.UserID, start.Year(), days, 0); err != nil {
			return err
		}

		created, err = l.LeaveRequestRepository.Create(txCtx, leave.LeaveRequest{
			UserID:    req.UserID,
			StartDate: start,
			EndDate:   end,
			TotalDays: days,
			Reason:    req.Reason,
			Status:    leave.StatusPending,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRequestEntry{}, err
	}

	return leave.ToEntry(created, true), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, userID string, filter leave.ListLeaveRequestsFilter) (leave.ListLeaveRequestsResponse, error) {
	filter.UserID = &userID

	requests, _, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	year := time.Now().In(attendance.Location()).Year()
	if filter.Year != nil {
		year = *filter.Year
	}
	summary, err := l.GetSummary(ctx, userID, year)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	entries := make([]leave.LeaveRequestEntry, 0, len(requests))
	for _, lr := range requests {
		entries = append(entries, leave.ToEntry(lr, true))
	}

	return leave.ListLeaveRequestsResponse{
		Requests: entries,
		Summary:  &summary,
	}, nil
}

// UpdateMine implements leave.LeaveService. Edits a pending request in place
// instead of cancel plus reapply, so the record never briefly disappears.
func (l *LeaveServiceImpl) UpdateMine(ctx context.Context, req leave.UpdateLeaveRequest) error {
	start, end, days, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	today := attendance.DayOf(time.Now())
	if start.Before(today) {
		return errPastStartDate()
	}

	return postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		existing, err := l.LeaveRequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if existing.UserID != req.UserID {
			return leave.ErrNotRequestOwner
		}
		if !leave.Editable(existing.Status) {
			return leave.ErrRequestNotEditable
		}

		overlapping, err := l.LeaveRequestRepository.CountOverlapping(txCtx, req.UserID, start, end, &req.ID)
		if err != nil {
			return err
		}
		if overlapping > 0 {
			return leave.ErrOverlappingRequest
		}

		if err := l.checkBalance(txCtx, req.UserID, start.Year(), days, existing.TotalDays); err != nil {
			return err
		}

		return l.LeaveRequestRepository.UpdateFields(txCtx, req, days)
	})
}

// CancelMine implements leave.LeaveService.
func (l *LeaveServiceImpl) CancelMine(ctx context.Context, userID string, requestID string) error {
	return l.ownerAction(ctx, userID, requestID, leave.ActionCancel)
}

// ReverseMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ReverseMine(ctx context.Context, userID string, requestID string) error {
	return l.ownerAction(ctx, userID, requestID, leave.ActionReverse)
}

func (l *LeaveServiceImpl) ownerAction(ctx context.Context, userID string, requestID string, action leave.Action) error {
	return postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		existing, err := l.LeaveRequestRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}
		if existing.UserID != userID {
			return leave.ErrNotRequestOwner
		}
		if !leave.OwnerCan(existing.Status, action) {
			return leave.ErrActionNotAvailable
		}

		next, err := leave.NextStatus(existing.Status, action)
		if err != nil {
			return err
		}

		return l.LeaveRequestRepository.UpdateStatus(txCtx, requestID, next, nil, nil)
	})
}

// Decide implements leave.LeaveService. Availability is computed from the
// record's current status inside the transaction, so a concurrent change
// cannot apply a stale action.
func (l *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideLeaveRequest) error {
	var ownerID string
	var next leave.Status

	err := postgresql.WithTransaction(ctx, l.db, func(txCtx context.Context) error {
		existing, err := l.LeaveRequestRepository.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if !leave.ManagerCan(existing.Status, req.Action) {
			return leave.ErrActionNotAvailable
		}

		next, err = leave.NextStatus(existing.Status, req.Action)
		if err != nil {
			return err
		}
		ownerID = existing.UserID

		return l.LeaveRequestRepository.UpdateStatus(txCtx, req.ID, next, &req.DeciderID, req.Notes)
	})
	if err != nil {
		return err
	}

	if l.hub != nil {
		l.hub.Publish(ownerID, sse.Event{
			Event: "leave_status_changed",
			Data: map[string]string{
				"request_id": req.ID,
				"status":     string(next),
			},
		})
	}

	return nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.ListLeaveRequestsFilter) (leave.ListLeaveRequestsResponse, int64, error) {
	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, 0, err
	}

	entries := make([]leave.LeaveRequestEntry, 0, len(requests))
	for _, lr := range requests {
		entries = append(entries, leave.ToEntry(lr, false))
	}

	return leave.ListLeaveRequestsResponse{Requests: entries}, total, nil
}

// ListAllRequests implements leave.LeaveService. Secondary unfiltered
// listing kept alongside the paginated one.
func (l *LeaveServiceImpl) ListAllRequests(ctx context.Context) ([]leave.LeaveRequestEntry, error) {
	requests, err := l.LeaveRequestRepository.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]leave.LeaveRequestEntry, 0, len(requests))
	for _, lr := range requests {
		entries = append(entries, leave.ToEntry(lr, false))
	}

	return entries, nil
}

// Get implements leave.LeaveService.
func (l *LeaveServiceImpl) Get(ctx context.Context, requestID string) (leave.LeaveRequestEntry, error) {
	lr, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestEntry{}, err
	}
	return leave.ToEntry(lr, false), nil
}

// SetAllocation implements leave.LeaveService.
func (l *LeaveServiceImpl) SetAllocation(ctx context.Context, req leave.AllocationRequest) (leave.AllocationResponse, error) {
	if _, err := l.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return leave.AllocationResponse{}, err
	}

	allocation, err := l.AllocationRepository.Upsert(ctx, leave.Allocation{
		UserID:    req.UserID,
		Year:      req.Year,
		TotalDays: req.TotalDays,
	})
	if err != nil {
		return leave.AllocationResponse{}, err
	}

	return leave.AllocationResponse{
		ID:        allocation.ID,
		UserID:    allocation.UserID,
		Year:      allocation.Year,
		TotalDays: allocation.TotalDays,
	}, nil
}

// GetSummary implements leave.LeaveService.
func (l *LeaveServiceImpl) GetSummary(ctx context.Context, userID string, year int) (leave.SummaryResponse, error) {
	totalDays := 0
	allocation, err := l.AllocationRepository.GetByUserYear(ctx, userID, year)
	if err != nil && !errors.Is(err, leave.ErrAllocationNotFound) {
		return leave.SummaryResponse{}, err
	}
	if err == nil {
		totalDays = allocation.TotalDays
	}

	used, err := l.LeaveRequestRepository.SumDaysByStatus(ctx, userID, year, leave.StatusApproved)
	if err != nil {
		return leave.SummaryResponse{}, err
	}
	pending, err := l.LeaveRequestRepository.SumDaysByStatus(ctx, userID, year, leave.StatusPending)
	if err != nil {
		return leave.SummaryResponse{}, err
	}

	remaining := totalDays - used - pending
	if remaining < 0 {
		remaining = 0
	}

	return leave.SummaryResponse{
		Year:          year,
		TotalDays:     totalDays,
		UsedDays:      used,
		PendingDays:   pending,
		RemainingDays: remaining,
	}, nil
}
